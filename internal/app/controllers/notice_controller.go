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

// InterfaceNoticeController 定义公告控制器接口
type InterfaceNoticeController interface {
	GetNotices()
	GetNotice()
	CreateNotice()
	UpdateNotice()
	PublishNotice()
	DeleteNotice()
	GetFAQs()
	CreateFAQ()
	UpdateFAQ()
	DeleteFAQ()
}

// NoticeController 处理官网公告与FAQ相关的请求
type NoticeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewNoticeController 创建一个新的公告控制器
func NewNoticeController(ctx *gin.Context, container *container.ServiceContainer) *NoticeController {
	return &NoticeController{
		Ctx:       ctx,
		Container: container,
	}
}

// NoticeRequest 表示创建/更新公告的请求体
type NoticeRequest struct {
	Title    string `json:"title" binding:"required" example:"추석 연휴 운영시간 안내"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" example:"일반"` // 可选值: 일반, 이벤트, 긴급
	Status   string `json:"status" example:"draft"`
}

// FAQRequest 表示创建/更新FAQ的请求体
type FAQRequest struct {
	Question  string `json:"question" binding:"required" example:"재입장이 가능한가요?"`
	Answer    string `json:"answer" binding:"required"`
	Category  string `json:"category" example:"입장"`
	SortOrder int    `json:"sortOrder" example:"1"`
}

// GetNotices 获取公告列表
// @Summary      获取公告列表
// @Description  获取所有公告，支持分页、搜索、分类和状态过滤
// @Tags         Notice
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1" example:"1"
// @Param        page_size query int false "每页条数，默认为10" example:"10"
// @Param        search query string false "搜索关键词(标题、内容)"
// @Param        category query string false "分类过滤" example:"일반"
// @Param        status query string false "状态过滤" example:"published"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /notices [get]
// @Security     BearerAuth
func (c *NoticeController) GetNotices() {
	page, pageSize := parsePagination(c.Ctx)
	search := c.Ctx.Query("search")
	category := c.Ctx.Query("category")
	status := c.Ctx.Query("status")

	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	notices, total, err := noticeService.GetAllNotices(page, pageSize, search, category, status)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询公告列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": models.TotalPages(total, pageSize),
		"data":        notices,
	})
}

// GetNotice 获取单条公告详情
// @Summary      获取公告详情
// @Description  根据ID获取公告详情并累加浏览数
// @Tags         Notice
// @Accept       json
// @Produce      json
// @Param        id path int true "公告ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /notices/{id} [get]
// @Security     BearerAuth
func (c *NoticeController) GetNotice() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	notice, err := noticeService.GetNoticeByID(uint(id), true)
	if err != nil {
		if err.Error() == "公告不存在" {
			response.NotFound(c.Ctx, "公告不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询公告失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, notice)
}

// CreateNotice 创建公告
// @Summary      创建公告
// @Description  创建一条公告，默认保存为草稿
// @Tags         Notice
// @Accept       json
// @Produce      json
// @Param        request body NoticeRequest true "公告信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /notices [post]
// @Security     BearerAuth
func (c *NoticeController) CreateNotice() {
	var req NoticeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	notice := &models.Notice{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Status:   req.Status,
	}

	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	if err := noticeService.CreateNotice(notice); err != nil {
		switch err.Error() {
		case "公告标题不能为空", "公告内容不能为空":
			response.ParamError(c.Ctx, err.Error())
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建公告失败: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, notice)
}

// UpdateNotice 更新公告
// @Summary      更新公告
// @Description  更新公告内容
// @Tags         Notice
// @Accept       json
// @Produce      json
// @Param        id path int true "公告ID" example:"1"
// @Param        request body NoticeRequest true "更新的公告信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /notices/{id} [put]
// @Security     BearerAuth
func (c *NoticeController) UpdateNotice() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req NoticeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"title":   req.Title,
		"content": req.Content,
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	notice, err := noticeService.UpdateNotice(uint(id), updates)
	if err != nil {
		if err.Error() == "公告不存在" {
			response.NotFound(c.Ctx, "公告不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新公告失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, notice)
}

// PublishNotice 发布公告
// @Summary      发布公告
// @Description  将公告置为已发布并记录发布时间
// @Tags         Notice
// @Accept       json
// @Produce      json
// @Param        id path int true "公告ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /notices/{id}/publish [post]
// @Security     BearerAuth
func (c *NoticeController) PublishNotice() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	notice, err := noticeService.PublishNotice(uint(id))
	if err != nil {
		switch err.Error() {
		case "公告不存在":
			response.NotFound(c.Ctx, "公告不存在")
		case "公告已发布":
			response.ParamError(c.Ctx, err.Error())
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "发布公告失败: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, notice)
}

// DeleteNotice 删除公告
// @Summary      删除公告
// @Description  删除指定公告
// @Tags         Notice
// @Accept       json
// @Produce      json
// @Param        id path int true "公告ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /notices/{id} [delete]
// @Security     BearerAuth
func (c *NoticeController) DeleteNotice() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	if err := noticeService.DeleteNotice(uint(id)); err != nil {
		if err.Error() == "公告不存在" {
			response.NotFound(c.Ctx, "公告不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除公告失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// GetFAQs 获取FAQ列表
// @Summary      获取FAQ列表
// @Description  获取FAQ列表，可按分类过滤，按排序权重升序
// @Tags         FAQ
// @Accept       json
// @Produce      json
// @Param        category query string false "分类过滤" example:"입장"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /faqs [get]
// @Security     BearerAuth
func (c *NoticeController) GetFAQs() {
	category := c.Ctx.Query("category")

	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	faqs, err := noticeService.GetAllFAQs(category)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询FAQ列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, faqs)
}

// CreateFAQ 创建FAQ
// @Summary      创建FAQ
// @Description  创建一条FAQ
// @Tags         FAQ
// @Accept       json
// @Produce      json
// @Param        request body FAQRequest true "FAQ信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /faqs [post]
// @Security     BearerAuth
func (c *NoticeController) CreateFAQ() {
	var req FAQRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	faq := &models.FAQ{
		Question:  req.Question,
		Answer:    req.Answer,
		Category:  req.Category,
		SortOrder: req.SortOrder,
	}

	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	if err := noticeService.CreateFAQ(faq); err != nil {
		switch err.Error() {
		case "问题不能为空", "答案不能为空":
			response.ParamError(c.Ctx, err.Error())
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建FAQ失败: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, faq)
}

// UpdateFAQ 更新FAQ
// @Summary      更新FAQ
// @Description  更新FAQ内容
// @Tags         FAQ
// @Accept       json
// @Produce      json
// @Param        id path int true "FAQ ID" example:"1"
// @Param        request body FAQRequest true "更新的FAQ信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /faqs/{id} [put]
// @Security     BearerAuth
func (c *NoticeController) UpdateFAQ() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req FAQRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"question":   req.Question,
		"answer":     req.Answer,
		"category":   req.Category,
		"sort_order": req.SortOrder,
	}

	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	faq, err := noticeService.UpdateFAQ(uint(id), updates)
	if err != nil {
		if err.Error() == "FAQ不存在" {
			response.NotFound(c.Ctx, "FAQ不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新FAQ失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, faq)
}

// DeleteFAQ 删除FAQ
// @Summary      删除FAQ
// @Description  删除指定FAQ
// @Tags         FAQ
// @Accept       json
// @Produce      json
// @Param        id path int true "FAQ ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /faqs/{id} [delete]
// @Security     BearerAuth
func (c *NoticeController) DeleteFAQ() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	if err := noticeService.DeleteFAQ(uint(id)); err != nil {
		if err.Error() == "FAQ不存在" {
			response.NotFound(c.Ctx, "FAQ不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除FAQ失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// HandleNoticeFunc 返回一个处理公告与FAQ请求的Gin处理函数
func HandleNoticeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewNoticeController(ctx, container)

		switch method {
		case "getNotices":
			controller.GetNotices()
		case "getNotice":
			controller.GetNotice()
		case "createNotice":
			controller.CreateNotice()
		case "updateNotice":
			controller.UpdateNotice()
		case "publishNotice":
			controller.PublishNotice()
		case "deleteNotice":
			controller.DeleteNotice()
		case "getFAQs":
			controller.GetFAQs()
		case "createFAQ":
			controller.CreateFAQ()
		case "updateFAQ":
			controller.UpdateFAQ()
		case "deleteFAQ":
			controller.DeleteFAQ()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
