package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services/container"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/code"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/response"
)

// InterfaceNotificationController 定义通知控制器接口
type InterfaceNotificationController interface {
	GetNotifications()
	GetNotification()
	CreateNotification()
	UpdateNotification()
	DeleteNotification()
	ResendNotification()
	BulkResendNotifications()
	BulkDeleteNotifications()
	CancelNotification()
	GetNotificationStats()
}

// NotificationController 处理广播通知相关的请求
type NotificationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewNotificationController 创建一个新的通知控制器
func NewNotificationController(ctx *gin.Context, container *container.ServiceContainer) *NotificationController {
	return &NotificationController{
		Ctx:       ctx,
		Container: container,
	}
}

// FlexibleIDList 兼容历史客户端的ID列表，同时接受字符串和数字元素
type FlexibleIDList []string

// UnmarshalJSON 将混合类型的JSON数组统一解析为字符串列表
func (l *FlexibleIDList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ids := make([]string, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			ids = append(ids, s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(item, &n); err == nil {
			ids = append(ids, n.String())
			continue
		}
		return fmt.Errorf("无法解析的ID元素: %s", string(item))
	}

	*l = ids
	return nil
}

// NotificationRequest 表示创建/编辑通知的请求体
type NotificationRequest struct {
	Title           string   `json:"title" binding:"required" example:"아트란티스 운휴 안내"`
	Content         string   `json:"content" binding:"required" example:"금일 아트란티스는 정기 점검으로 운휴합니다."`
	Type            string   `json:"type" example:"ride_closed"`      // 可选值: system, ride_closed, ride_resumed, event, parade
	Recipient       string   `json:"recipient" example:"all_users"`   // 可选值: all_users, specific
	RecipientGrade  string   `json:"recipientGrade" example:"vip"`    // recipient=specific时的目标等级
	DeliveryMethod  string   `json:"deliveryMethod" example:"push"`   // 可选值: push, email
	SendImmediately bool     `json:"sendImmediately" example:"false"` // true时立即发送，忽略预约时间
	DeliveryDate    string   `json:"deliveryDate" example:"2026-09-01"`
	DeliveryClock   string   `json:"deliveryClock" example:"10:30"`
	Priority        string   `json:"priority" example:"high"`
	ImageURL        string   `json:"imageUrl"`
	ActionURL       string   `json:"actionUrl"`
	Tags            []string `json:"tags"`
}

// BulkNotificationRequest 表示批量操作的请求体
type BulkNotificationRequest struct {
	IDs FlexibleIDList `json:"ids" binding:"required"`
}

// toInput 将请求体转换为服务层输入
func (r *NotificationRequest) toInput() *services.AlertInput {
	return &services.AlertInput{
		Title:           r.Title,
		Content:         r.Content,
		Type:            r.Type,
		Recipient:       r.Recipient,
		RecipientGrade:  r.RecipientGrade,
		DeliveryMethod:  r.DeliveryMethod,
		SendImmediately: r.SendImmediately,
		DeliveryDate:    r.DeliveryDate,
		DeliveryClock:   r.DeliveryClock,
		Priority:        r.Priority,
		ImageURL:        r.ImageURL,
		ActionURL:       r.ActionURL,
		Tags:            r.Tags,
	}
}

// GetNotifications 获取通知列表
// @Summary      获取通知列表
// @Description  获取去重后的通知列表，支持搜索和状态/类型/对象/方式过滤，附带状态统计
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1" example:"1"
// @Param        page_size query int false "每页条数，默认为10" example:"10"
// @Param        search query string false "搜索关键词(标题、内容)" example:"운휴"
// @Param        status query string false "状态过滤" example:"scheduled"
// @Param        type query string false "类型过滤" example:"ride_closed"
// @Param        recipient query string false "接收对象过滤" example:"all_users"
// @Param        delivery_method query string false "发送方式过滤" example:"push"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications [get]
// @Security     BearerAuth
func (c *NotificationController) GetNotifications() {
	page, pageSize := parsePagination(c.Ctx)

	filter := services.AlertFilter{
		Search:    c.Ctx.Query("search"),
		Status:    c.Ctx.Query("status"),
		Type:      c.Ctx.Query("type"),
		Recipient: c.Ctx.Query("recipient"),
		Method:    c.Ctx.Query("delivery_method"),
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	alerts, stats, total, err := notificationService.GetAllAlerts(filter, page, pageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询通知列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": models.TotalPages(total, pageSize),
		"stats":       stats,
		"data":        alerts,
	})
}

// GetNotification 获取单条通知详情
// @Summary      获取通知详情
// @Description  根据ID获取特定通知的详细信息
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        id path string true "通知ID" example:"ALT-20260901103000-a1b2c3d4"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications/{id} [get]
// @Security     BearerAuth
func (c *NotificationController) GetNotification() {
	id := c.Ctx.Param("id")

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	alert, err := notificationService.GetAlertByID(id)
	if err != nil {
		if err.Error() == "通知不存在" {
			response.NotFound(c.Ctx, "通知不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询通知失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, alert)
}

// CreateNotification 创建新通知
// @Summary      创建通知
// @Description  创建一条广播通知，立即发送或预约发送
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        request body NotificationRequest true "通知信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications [post]
// @Security     BearerAuth
func (c *NotificationController) CreateNotification() {
	var req NotificationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	alert, err := notificationService.CreateAlert(req.toInput())
	if err != nil {
		switch err.Error() {
		case "预约发送时间不能早于当前时间":
			response.Fail(c.Ctx, code.ErrAlertDeliveryPast, nil)
		case "通知标题和内容不能为空":
			response.ParamError(c.Ctx, err.Error())
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建通知失败: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, alert)
}

// UpdateNotification 编辑通知
// @Summary      编辑通知
// @Description  编辑预约中或失败的通知，已发送的通知不可修改
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        id path string true "通知ID"
// @Param        request body NotificationRequest true "更新的通知信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications/{id} [put]
// @Security     BearerAuth
func (c *NotificationController) UpdateNotification() {
	id := c.Ctx.Param("id")

	var req NotificationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	alert, err := notificationService.UpdateAlert(id, req.toInput())
	if err != nil {
		switch err.Error() {
		case "通知不存在":
			response.NotFound(c.Ctx, "通知不存在")
		case "已发送的通知不能修改":
			response.Fail(c.Ctx, code.ErrAlertNotEditable, nil)
		case "通知标题和内容不能为空":
			response.ParamError(c.Ctx, err.Error())
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "编辑通知失败: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, alert)
}

// DeleteNotification 删除通知
// @Summary      删除通知
// @Description  删除单条通知
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        id path string true "通知ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications/{id} [delete]
// @Security     BearerAuth
func (c *NotificationController) DeleteNotification() {
	id := c.Ctx.Param("id")

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	if err := notificationService.DeleteAlert(id); err != nil {
		if err.Error() == "通知不存在" {
			response.NotFound(c.Ctx, "通知不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除通知失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// ResendNotification 重新发送通知
// @Summary      重新发送通知
// @Description  将通知从任意状态重置为预约状态，等待调度器重新投递
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        id path string true "通知ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications/{id}/resend [post]
// @Security     BearerAuth
func (c *NotificationController) ResendNotification() {
	id := c.Ctx.Param("id")

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	alert, err := notificationService.ResendAlert(id)
	if err != nil {
		if err.Error() == "通知不存在" {
			response.NotFound(c.Ctx, "通知不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "重新发送通知失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, alert)
}

// BulkResendNotifications 批量重新发送通知
// @Summary      批量重新发送
// @Description  批量将通知重置为预约状态，任一ID不存在时整体失败
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        request body BulkNotificationRequest true "通知ID列表"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications/bulk-resend [post]
// @Security     BearerAuth
func (c *NotificationController) BulkResendNotifications() {
	var req BulkNotificationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	if err := notificationService.BulkResend(req.IDs); err != nil {
		switch err.Error() {
		case "未选择任何通知":
			response.ParamError(c.Ctx, err.Error())
		case "部分通知不存在":
			response.NotFound(c.Ctx, err.Error())
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "批量重新发送失败: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, gin.H{"count": len(req.IDs)})
}

// BulkDeleteNotifications 批量删除通知
// @Summary      批量删除
// @Description  批量删除通知，任一ID不存在时整体失败不做局部删除
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        request body BulkNotificationRequest true "通知ID列表"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications/bulk-delete [post]
// @Security     BearerAuth
func (c *NotificationController) BulkDeleteNotifications() {
	var req BulkNotificationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	if err := notificationService.BulkDelete(req.IDs); err != nil {
		switch err.Error() {
		case "未选择任何通知":
			response.ParamError(c.Ctx, err.Error())
		case "部分通知不存在":
			response.NotFound(c.Ctx, err.Error())
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "批量删除失败: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, gin.H{"count": len(req.IDs)})
}

// CancelNotification 取消通知
// @Summary      取消通知
// @Description  取消预约通知，当前版本只记录请求不改变状态
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        id path string true "通知ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id}/cancel [post]
// @Security     BearerAuth
func (c *NotificationController) CancelNotification() {
	id := c.Ctx.Param("id")

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	if err := notificationService.CancelAlert(id); err != nil {
		if err.Error() == "通知不存在" {
			response.NotFound(c.Ctx, "通知不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "取消通知失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// GetNotificationStats 获取通知统计
// @Summary      获取通知统计
// @Description  获取去重后的通知状态统计
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications/stats [get]
// @Security     BearerAuth
func (c *NotificationController) GetNotificationStats() {
	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	stats, err := notificationService.GetStats()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询通知统计失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, stats)
}

// HandleNotificationFunc 返回一个处理通知请求的Gin处理函数
func HandleNotificationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewNotificationController(ctx, container)

		switch method {
		case "getNotifications":
			controller.GetNotifications()
		case "getNotification":
			controller.GetNotification()
		case "createNotification":
			controller.CreateNotification()
		case "updateNotification":
			controller.UpdateNotification()
		case "deleteNotification":
			controller.DeleteNotification()
		case "resendNotification":
			controller.ResendNotification()
		case "bulkResendNotifications":
			controller.BulkResendNotifications()
		case "bulkDeleteNotifications":
			controller.BulkDeleteNotifications()
		case "cancelNotification":
			controller.CancelNotification()
		case "getNotificationStats":
			controller.GetNotificationStats()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
