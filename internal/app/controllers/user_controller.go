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

// InterfaceUserController 定义会员控制器接口
type InterfaceUserController interface {
	GetUsers()
	GetUser()
	GetUserCount()
	CreateUser()
	UpdateUser()
	DeleteUser()
}

// UserController 处理乐园会员相关的请求
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController 创建一个新的会员控制器
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateUserRequest 表示创建会员的请求体
type CreateUserRequest struct {
	Name   string `json:"name" binding:"required" example:"김철수"`
	Email  string `json:"email" binding:"required,email" example:"kim@example.com"`
	Phone  string `json:"phone" example:"010-1234-5678"`
	Grade  string `json:"grade" example:"vip"`     // 可选值: Normal, vip, 일반
	Status string `json:"status" example:"active"` // 可选值: active, inactive, banned
}

// UpdateUserRequest 表示更新会员的请求体（局部更新）
type UpdateUserRequest struct {
	Name   string `json:"name" example:"김철수"`
	Email  string `json:"email" example:"kim@example.com"`
	Phone  string `json:"phone" example:"010-1234-5678"`
	Grade  string `json:"grade" example:"vip"`
	Status string `json:"status" example:"inactive"`
}

// GetUsers 获取会员列表
// @Summary      获取会员列表
// @Description  获取所有会员的列表，支持分页、搜索、等级和状态过滤
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1" example:"1"
// @Param        page_size query int false "每页条数，默认为10" example:"10"
// @Param        search query string false "搜索关键词(姓名、邮箱、电话)" example:"kim"
// @Param        grade query string false "等级过滤" example:"vip"
// @Param        status query string false "状态过滤" example:"active"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /users [get]
// @Security     BearerAuth
func (c *UserController) GetUsers() {
	page, pageSize := parsePagination(c.Ctx)
	search := c.Ctx.Query("search")
	grade := c.Ctx.Query("grade")
	status := c.Ctx.Query("status")

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	users, total, err := userService.GetAllUsers(page, pageSize, search, grade, status)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询会员列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": models.TotalPages(total, pageSize),
		"data":        users,
	})
}

// GetUser 获取单个会员详情
// @Summary      获取会员详情
// @Description  根据ID获取特定会员的详细信息
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path int true "会员ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
// @Security     BearerAuth
func (c *UserController) GetUser() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(uint(id))
	if err != nil {
		if err.Error() == "会员不存在" {
			response.NotFound(c.Ctx, "会员不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询会员失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, user)
}

// GetUserCount 获取会员总数
// @Summary      获取会员总数
// @Description  获取注册会员总数，用于仪表盘展示
// @Tags         User
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /users/count [get]
// @Security     BearerAuth
func (c *UserController) GetUserCount() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)
	total, err := userService.CountUsers()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "统计会员数失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"count": total})
}

// CreateUser 创建新会员
// @Summary      创建会员
// @Description  创建一个新会员账号
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "会员信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /users [post]
// @Security     BearerAuth
func (c *UserController) CreateUser() {
	var req CreateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	user := &models.User{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Grade:  req.Grade,
		Status: req.Status,
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.CreateUser(user); err != nil {
		if err.Error() == "邮箱已被使用" {
			response.Fail(c.Ctx, code.ErrUserAlreadyExist, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建会员失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, user)
}

// UpdateUser 更新会员信息
// @Summary      更新会员
// @Description  局部更新会员信息，只覆盖提供的字段
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path int true "会员ID" example:"1"
// @Param        request body UpdateUserRequest true "更新的会员信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [patch]
// @Security     BearerAuth
func (c *UserController) UpdateUser() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req UpdateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Grade != "" {
		updates["grade"] = req.Grade
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if len(updates) == 0 {
		response.ParamError(c.Ctx, "没有需要更新的字段")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.UpdateUser(uint(id), updates)
	if err != nil {
		switch err.Error() {
		case "会员不存在":
			response.NotFound(c.Ctx, "会员不存在")
		case "邮箱已被其他会员使用":
			response.Fail(c.Ctx, code.ErrUserAlreadyExist, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新会员失败: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, user)
}

// DeleteUser 删除会员
// @Summary      删除会员
// @Description  删除指定会员
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path int true "会员ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (c *UserController) DeleteUser() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.DeleteUser(uint(id)); err != nil {
		if err.Error() == "会员不存在" {
			response.NotFound(c.Ctx, "会员不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除会员失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// HandleUserFunc 返回一个处理会员请求的Gin处理函数
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "getUserCount":
			controller.GetUserCount()
		case "createUser":
			controller.CreateUser()
		case "updateUser":
			controller.UpdateUser()
		case "deleteUser":
			controller.DeleteUser()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
