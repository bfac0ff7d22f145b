package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusConflict - 409: 资源冲突.
	StatusConflict = 409
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 会员相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 会员不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 409: 会员已存在.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 密码错误.
	ErrUserPasswordIncorrect
	// ErrEmailCodeInvalid - 400: 邮箱验证码无效或已过期.
	ErrEmailCodeInvalid
)

// 通知相关错误码 (102xxx).
const (
	// ErrAlertNotFound - 404: 通知不存在.
	ErrAlertNotFound int = iota + 102000
	// ErrAlertNotEditable - 400: 已发送的通知不能修改.
	ErrAlertNotEditable
	// ErrAlertDeliveryPast - 400: 预约发送时间早于当前时间.
	ErrAlertDeliveryPast
	// ErrAlertRecipientEmpty - 400: 目标用户解析结果为空.
	ErrAlertRecipientEmpty
)

// 运休相关错误码 (103xxx).
const (
	// ErrMaintenanceNotFound - 404: 运休记录不存在.
	ErrMaintenanceNotFound int = iota + 103000
	// ErrMaintenanceDateRange - 400: 运休日期范围无效.
	ErrMaintenanceDateRange
)

// 预订/票务相关错误码 (104xxx).
const (
	// ErrOrderNotFound - 404: 预订记录不存在.
	ErrOrderNotFound int = iota + 104000
	// ErrTicketNotFound - 404: 票种不存在.
	ErrTicketNotFound
	// ErrOrderStatusInvalid - 400: 预订状态无效.
	ErrOrderStatusInvalid
)

// 数据库相关错误码 (105xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
	// ErrDuplicateRecord - 409: 重复注册.
	ErrDuplicateRecord
)

// 公告相关错误码 (106xxx).
const (
	// ErrNoticeNotFound - 404: 公告不存在.
	ErrNoticeNotFound int = iota + 106000
	// ErrFAQNotFound - 404: FAQ不存在.
	ErrFAQNotFound
)

// POI相关错误码 (107xxx).
const (
	// ErrPOINotFound - 404: 地图POI不存在.
	ErrPOINotFound int = iota + 107000
	// ErrPOICategoryNotFound - 404: POI分类不存在.
	ErrPOICategoryNotFound
)

// 文件上传相关错误码 (108xxx).
const (
	// ErrUploadFailed - 500: 文件上传失败.
	ErrUploadFailed int = iota + 108000
	// ErrUploadTypeInvalid - 400: 文件类型不支持.
	ErrUploadTypeInvalid
)
