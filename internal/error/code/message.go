package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "成功",
	ErrUnknown:         "未知错误",
	ErrBind:            "请求参数绑定错误",
	ErrValidation:      "请求参数验证错误",
	ErrTokenInvalid:    "无效的认证令牌",
	ErrTooManyRequests: "请求频率过高",

	// 会员相关错误码
	ErrUserNotFound:          "会员不存在",
	ErrUserAlreadyExist:      "会员已存在",
	ErrUserPasswordIncorrect: "密码错误",
	ErrEmailCodeInvalid:      "邮箱验证码无效或已过期",

	// 通知相关错误码
	ErrAlertNotFound:       "通知不存在",
	ErrAlertNotEditable:    "已发送的通知不能修改",
	ErrAlertDeliveryPast:   "预约发送时间不能早于当前时间",
	ErrAlertRecipientEmpty: "目标等级没有匹配的用户",

	// 运休相关错误码
	ErrMaintenanceNotFound:  "运休记录不存在",
	ErrMaintenanceDateRange: "运休日期范围无效",

	// 预订/票务相关错误码
	ErrOrderNotFound:      "预订记录不存在",
	ErrTicketNotFound:     "票种不存在",
	ErrOrderStatusInvalid: "预订状态无效",

	// 数据库相关错误码
	ErrDatabase:        "数据库错误",
	ErrRecordNotFound:  "记录不存在",
	ErrDuplicateRecord: "重复注册",

	// 公告相关错误码
	ErrNoticeNotFound: "公告不存在",
	ErrFAQNotFound:    "FAQ不存在",

	// POI相关错误码
	ErrPOINotFound:         "地图POI不存在",
	ErrPOICategoryNotFound: "POI分类不存在",

	// 文件上传相关错误码
	ErrUploadFailed:      "文件上传失败",
	ErrUploadTypeInvalid: "文件类型不支持",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	// 会员相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusConflict,
	ErrUserPasswordIncorrect: StatusUnauthorized,
	ErrEmailCodeInvalid:      StatusBadRequest,

	// 通知相关错误码
	ErrAlertNotFound:       StatusNotFound,
	ErrAlertNotEditable:    StatusBadRequest,
	ErrAlertDeliveryPast:   StatusBadRequest,
	ErrAlertRecipientEmpty: StatusBadRequest,

	// 运休相关错误码
	ErrMaintenanceNotFound:  StatusNotFound,
	ErrMaintenanceDateRange: StatusBadRequest,

	// 预订/票务相关错误码
	ErrOrderNotFound:      StatusNotFound,
	ErrTicketNotFound:     StatusNotFound,
	ErrOrderStatusInvalid: StatusBadRequest,

	// 数据库相关错误码
	ErrDatabase:        StatusInternalServerError,
	ErrRecordNotFound:  StatusNotFound,
	ErrDuplicateRecord: StatusConflict,

	// 公告相关错误码
	ErrNoticeNotFound: StatusNotFound,
	ErrFAQNotFound:    StatusNotFound,

	// POI相关错误码
	ErrPOINotFound:         StatusNotFound,
	ErrPOICategoryNotFound: StatusNotFound,

	// 文件上传相关错误码
	ErrUploadFailed:      StatusInternalServerError,
	ErrUploadTypeInvalid: StatusBadRequest,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
