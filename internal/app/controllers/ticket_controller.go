package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services/container"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/code"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/response"
)

// InterfaceTicketController 定义票种控制器接口
type InterfaceTicketController interface {
	GetTickets()
	GetTicket()
	CreateTicket()
	UpdateTicket()
	DeleteTicket()
	GetBenefits()
	CreateBenefit()
	UpdateBenefit()
	DeleteBenefit()
}

// TicketController 处理票种与特典相关的请求
type TicketController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTicketController 创建一个新的票种控制器
func NewTicketController(ctx *gin.Context, container *container.ServiceContainer) *TicketController {
	return &TicketController{
		Ctx:       ctx,
		Container: container,
	}
}

// TicketRequest 表示创建/更新票种的请求体
type TicketRequest struct {
	Name       string `json:"name" binding:"required" example:"종합이용권 1일권"`
	Type       string `json:"type" example:"종합이용권"`
	AdultPrice int    `json:"adultPrice" example:"62000"`
	TeenPrice  int    `json:"teenPrice" example:"54000"`
	ChildPrice int    `json:"childPrice" example:"47000"`
	Status     string `json:"status" example:"active"`
	Remark     string `json:"remark"`
}

// BenefitRequest 表示创建/更新特典的请求体
type BenefitRequest struct {
	TicketID    uint   `json:"ticketId" example:"1"`
	Name        string `json:"name" binding:"required" example:"생일 할인"`
	Description string `json:"description" example:"생일 당일 방문 시 적용"`
	Discount    int    `json:"discount" example:"10000"`
}

// GetTickets 获取票种列表
// @Summary      获取票种列表
// @Description  获取所有票种，支持分页、搜索和状态过滤
// @Tags         Ticket
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1" example:"1"
// @Param        page_size query int false "每页条数，默认为10" example:"10"
// @Param        search query string false "搜索关键词(名称、类型)" example:"종합"
// @Param        status query string false "状态过滤" example:"active"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /tickets [get]
// @Security     BearerAuth
func (c *TicketController) GetTickets() {
	page, pageSize := parsePagination(c.Ctx)
	search := c.Ctx.Query("search")
	status := c.Ctx.Query("status")

	ticketService := c.Container.GetService("ticket").(services.InterfaceTicketService)
	tickets, total, err := ticketService.GetAllTickets(page, pageSize, search, status)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询票种列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": models.TotalPages(total, pageSize),
		"data":        tickets,
	})
}

// GetTicket 获取单个票种详情
// @Summary      获取票种详情
// @Description  根据ID获取票种及其特典
// @Tags         Ticket
// @Accept       json
// @Produce      json
// @Param        id path int true "票种ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /tickets/{id} [get]
// @Security     BearerAuth
func (c *TicketController) GetTicket() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	ticketService := c.Container.GetService("ticket").(services.InterfaceTicketService)
	ticket, err := ticketService.GetTicketByID(uint(id))
	if err != nil {
		if err.Error() == "票种不存在" {
			response.NotFound(c.Ctx, "票种不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询票种失败: "+err.Error(), nil)
		return
	}

	benefits, err := ticketService.GetBenefits(uint(id))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询票种特典失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"ticket":   ticket,
		"benefits": benefits,
	})
}

// CreateTicket 创建新票种
// @Summary      创建票种
// @Description  创建一个新票种
// @Tags         Ticket
// @Accept       json
// @Produce      json
// @Param        request body TicketRequest true "票种信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /tickets [post]
// @Security     BearerAuth
func (c *TicketController) CreateTicket() {
	var req TicketRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	ticket := &models.Ticket{
		Name:       req.Name,
		Type:       req.Type,
		AdultPrice: req.AdultPrice,
		TeenPrice:  req.TeenPrice,
		ChildPrice: req.ChildPrice,
		Status:     req.Status,
		Remark:     req.Remark,
	}

	ticketService := c.Container.GetService("ticket").(services.InterfaceTicketService)
	if err := ticketService.CreateTicket(ticket); err != nil {
		switch err.Error() {
		case "票种名称不能为空":
			response.ParamError(c.Ctx, err.Error())
		case "票种名称已存在":
			response.Fail(c.Ctx, code.ErrDuplicateRecord, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建票种失败: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, ticket)
}

// UpdateTicket 更新票种信息
// @Summary      更新票种
// @Description  更新票种信息
// @Tags         Ticket
// @Accept       json
// @Produce      json
// @Param        id path int true "票种ID" example:"1"
// @Param        request body TicketRequest true "更新的票种信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /tickets/{id} [put]
// @Security     BearerAuth
func (c *TicketController) UpdateTicket() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req TicketRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"type":        req.Type,
		"adult_price": req.AdultPrice,
		"teen_price":  req.TeenPrice,
		"child_price": req.ChildPrice,
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.Remark != "" {
		updates["remark"] = req.Remark
	}

	ticketService := c.Container.GetService("ticket").(services.InterfaceTicketService)
	ticket, err := ticketService.UpdateTicket(uint(id), updates)
	if err != nil {
		switch err.Error() {
		case "票种不存在":
			response.NotFound(c.Ctx, "票种不存在")
		case "票种名称已被其他票种使用":
			response.Fail(c.Ctx, code.ErrDuplicateRecord, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新票种失败: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, ticket)
}

// DeleteTicket 删除票种
// @Summary      删除票种
// @Description  删除票种及其全部特典
// @Tags         Ticket
// @Accept       json
// @Produce      json
// @Param        id path int true "票种ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /tickets/{id} [delete]
// @Security     BearerAuth
func (c *TicketController) DeleteTicket() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	ticketService := c.Container.GetService("ticket").(services.InterfaceTicketService)
	if err := ticketService.DeleteTicket(uint(id)); err != nil {
		if err.Error() == "票种不存在" {
			response.NotFound(c.Ctx, "票种不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除票种失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// GetBenefits 获取特典列表
// @Summary      获取特典列表
// @Description  获取特典列表，可按票种过滤
// @Tags         Benefit
// @Accept       json
// @Produce      json
// @Param        ticket_id query int false "票种ID过滤" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /benefits [get]
// @Security     BearerAuth
func (c *TicketController) GetBenefits() {
	ticketID, _ := strconv.ParseUint(c.Ctx.DefaultQuery("ticket_id", "0"), 10, 32)

	ticketService := c.Container.GetService("ticket").(services.InterfaceTicketService)
	benefits, err := ticketService.GetBenefits(uint(ticketID))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询特典列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, benefits)
}

// CreateBenefit 创建特典
// @Summary      创建特典
// @Description  为票种创建特典选项
// @Tags         Benefit
// @Accept       json
// @Produce      json
// @Param        request body BenefitRequest true "特典信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /benefits [post]
// @Security     BearerAuth
func (c *TicketController) CreateBenefit() {
	var req BenefitRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	benefit := &models.Benefit{
		TicketID:    req.TicketID,
		Name:        req.Name,
		Description: req.Description,
		Discount:    req.Discount,
	}

	ticketService := c.Container.GetService("ticket").(services.InterfaceTicketService)
	if err := ticketService.CreateBenefit(benefit); err != nil {
		switch err.Error() {
		case "特典名称不能为空":
			response.ParamError(c.Ctx, err.Error())
		case "票种不存在":
			response.NotFound(c.Ctx, "票种不存在")
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建特典失败: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, benefit)
}

// UpdateBenefit 更新特典
// @Summary      更新特典
// @Description  更新特典信息
// @Tags         Benefit
// @Accept       json
// @Produce      json
// @Param        id path int true "特典ID" example:"1"
// @Param        request body BenefitRequest true "更新的特典信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /benefits/{id} [put]
// @Security     BearerAuth
func (c *TicketController) UpdateBenefit() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req BenefitRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"discount":    req.Discount,
	}

	ticketService := c.Container.GetService("ticket").(services.InterfaceTicketService)
	benefit, err := ticketService.UpdateBenefit(uint(id), updates)
	if err != nil {
		if err.Error() == "特典不存在" {
			response.NotFound(c.Ctx, "特典不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新特典失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, benefit)
}

// DeleteBenefit 删除特典
// @Summary      删除特典
// @Description  删除特典选项
// @Tags         Benefit
// @Accept       json
// @Produce      json
// @Param        id path int true "特典ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /benefits/{id} [delete]
// @Security     BearerAuth
func (c *TicketController) DeleteBenefit() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	ticketService := c.Container.GetService("ticket").(services.InterfaceTicketService)
	if err := ticketService.DeleteBenefit(uint(id)); err != nil {
		if err.Error() == "特典不存在" {
			response.NotFound(c.Ctx, "特典不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除特典失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// HandleTicketFunc 返回一个处理票种与特典请求的Gin处理函数
func HandleTicketFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTicketController(ctx, container)

		switch method {
		case "getTickets":
			controller.GetTickets()
		case "getTicket":
			controller.GetTicket()
		case "createTicket":
			controller.CreateTicket()
		case "updateTicket":
			controller.UpdateTicket()
		case "deleteTicket":
			controller.DeleteTicket()
		case "getBenefits":
			controller.GetBenefits()
		case "createBenefit":
			controller.CreateBenefit()
		case "updateBenefit":
			controller.UpdateBenefit()
		case "deleteBenefit":
			controller.DeleteBenefit()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
