package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services/container"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/code"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/response"
)

// InterfaceOrderController 定义预订控制器接口
type InterfaceOrderController interface {
	GetOrders()
	GetOrder()
	CreateOrder()
	UpdateOrderStatus()
	DeleteOrder()
	GetOrderStats()
}

// OrderController 处理门票预订相关的请求
type OrderController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewOrderController 创建一个新的预订控制器
func NewOrderController(ctx *gin.Context, container *container.ServiceContainer) *OrderController {
	return &OrderController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateOrderRequest 表示创建预订的请求体
type CreateOrderRequest struct {
	UserID       *uint  `json:"userId"`
	TicketID     *uint  `json:"ticketId"`
	BuyerName    string `json:"buyerName" binding:"required" example:"김철수"`
	BuyerEmail   string `json:"buyerEmail" example:"kim@example.com"`
	BuyerPhone   string `json:"buyerPhone" example:"010-1234-5678"`
	VisitorName  string `json:"visitorName" example:"김영희"`
	VisitorEmail string `json:"visitorEmail"`
	VisitorPhone string `json:"visitorPhone"`
	Quantity     int    `json:"quantity" binding:"required" example:"2"`
	Price        int    `json:"price" example:"124000"`
	PayMethod    string `json:"payMethod" example:"카드"`
	OptionName   string `json:"optionName" example:"종합이용권 1일권"`
	Counts       string `json:"counts" example:"{\"adult\":2,\"teen\":0,\"child\":0}"`
	VisitDate    string `json:"visitDate" example:"2026-09-05"`
}

// UpdateOrderStatusRequest 表示更新预订状态的请求体
type UpdateOrderStatusRequest struct {
	Status       string `json:"status" binding:"required" example:"방문완료"` // 可选值: 예약확정, 방문완료, 취소, 환불완료
	RefundReason string `json:"refundReason" example:"고객 요청"`             // 状态为환불완료时必填
}

// GetOrders 获取预订列表
// @Summary      获取预订列表
// @Description  获取所有预订记录，支持分页、搜索、状态和到访日过滤
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1" example:"1"
// @Param        page_size query int false "每页条数，默认为10" example:"10"
// @Param        search query string false "搜索关键词(预订编号、购票人、电话)" example:"LW-20260905"
// @Param        status query string false "状态过滤" example:"예약확정"
// @Param        visit_date query string false "到访日过滤(YYYY-MM-DD)" example:"2026-09-05"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /orders [get]
// @Security     BearerAuth
func (c *OrderController) GetOrders() {
	page, pageSize := parsePagination(c.Ctx)
	search := c.Ctx.Query("search")
	status := c.Ctx.Query("status")
	visitDate := c.Ctx.Query("visit_date")

	orderService := c.Container.GetService("order").(services.InterfaceOrderService)
	orders, total, err := orderService.GetAllOrders(page, pageSize, search, status, visitDate)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询预订列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": models.TotalPages(total, pageSize),
		"data":        orders,
	})
}

// GetOrder 获取单条预订详情
// @Summary      获取预订详情
// @Description  根据ID或预订编号获取预订详情
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        id path string true "预订ID或预订编号" example:"LW-20260905-123456"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /orders/{id} [get]
// @Security     BearerAuth
func (c *OrderController) GetOrder() {
	idStr := c.Ctx.Param("id")
	orderService := c.Container.GetService("order").(services.InterfaceOrderService)

	var order *models.Order
	var err error
	if strings.HasPrefix(idStr, "LW-") {
		order, err = orderService.GetOrderByBookingNo(idStr)
	} else {
		id, parseErr := strconv.ParseUint(idStr, 10, 32)
		if parseErr != nil {
			response.ParamError(c.Ctx, "无效的ID参数")
			return
		}
		order, err = orderService.GetOrderByID(uint(id))
	}

	if err != nil {
		if err.Error() == "预订记录不存在" {
			response.NotFound(c.Ctx, "预订记录不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询预订失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, order)
}

// CreateOrder 创建新预订
// @Summary      创建预订
// @Description  创建一笔门票预订，预订编号由服务端生成
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        request body CreateOrderRequest true "预订信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /orders [post]
// @Security     BearerAuth
func (c *OrderController) CreateOrder() {
	var req CreateOrderRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	order := &models.Order{
		UserID:       req.UserID,
		TicketID:     req.TicketID,
		BuyerName:    req.BuyerName,
		BuyerEmail:   req.BuyerEmail,
		BuyerPhone:   req.BuyerPhone,
		VisitorName:  req.VisitorName,
		VisitorEmail: req.VisitorEmail,
		VisitorPhone: req.VisitorPhone,
		Quantity:     req.Quantity,
		Price:        req.Price,
		PayMethod:    req.PayMethod,
		OptionName:   req.OptionName,
		Counts:       req.Counts,
		VisitDate:    req.VisitDate,
	}

	orderService := c.Container.GetService("order").(services.InterfaceOrderService)
	if err := orderService.CreateOrder(order); err != nil {
		switch err.Error() {
		case "购票人姓名不能为空", "购票数量必须大于0":
			response.ParamError(c.Ctx, err.Error())
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建预订失败: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, order)
}

// UpdateOrderStatus 更新预订状态
// @Summary      更新预订状态
// @Description  按状态转移规则变更预订状态，退款时必须填写原因
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        id path int true "预订ID" example:"1"
// @Param        request body UpdateOrderStatusRequest true "新状态"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /orders/{id}/status [patch]
// @Security     BearerAuth
func (c *OrderController) UpdateOrderStatus() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	orderService := c.Container.GetService("order").(services.InterfaceOrderService)
	order, err := orderService.UpdateOrderStatus(uint(id), req.Status, req.RefundReason)
	if err != nil {
		switch {
		case err.Error() == "预订记录不存在":
			response.NotFound(c.Ctx, "预订记录不存在")
		case err.Error() == "退款必须填写原因",
			strings.HasPrefix(err.Error(), "预订状态不能从"),
			strings.HasPrefix(err.Error(), "未知的预订状态"):
			response.FailWithMessage(c.Ctx, code.ErrOrderStatusInvalid, err.Error(), nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新预订状态失败: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, order)
}

// DeleteOrder 删除预订记录
// @Summary      删除预订
// @Description  删除指定预订记录
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        id path int true "预订ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /orders/{id} [delete]
// @Security     BearerAuth
func (c *OrderController) DeleteOrder() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	orderService := c.Container.GetService("order").(services.InterfaceOrderService)
	if err := orderService.DeleteOrder(uint(id)); err != nil {
		if err.Error() == "预订记录不存在" {
			response.NotFound(c.Ctx, "预订记录不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除预订失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// GetOrderStats 获取预订统计
// @Summary      获取预订统计
// @Description  获取各状态的预订数量和有效营收
// @Tags         Order
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /orders/stats [get]
// @Security     BearerAuth
func (c *OrderController) GetOrderStats() {
	orderService := c.Container.GetService("order").(services.InterfaceOrderService)
	stats, err := orderService.GetStats()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询预订统计失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, stats)
}

// HandleOrderFunc 返回一个处理预订请求的Gin处理函数
func HandleOrderFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewOrderController(ctx, container)

		switch method {
		case "getOrders":
			controller.GetOrders()
		case "getOrder":
			controller.GetOrder()
		case "createOrder":
			controller.CreateOrder()
		case "updateOrderStatus":
			controller.UpdateOrderStatus()
		case "deleteOrder":
			controller.DeleteOrder()
		case "getOrderStats":
			controller.GetOrderStats()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
