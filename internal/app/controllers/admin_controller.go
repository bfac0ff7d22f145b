package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services/container"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/code"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/response"
)

// InterfaceAdminController 定义管理员控制器接口
type InterfaceAdminController interface {
	GetAdmins()
	GetAdmin()
	Register()
	SendEmailCode()
	VerifyEmailCode()
	UpdateAdmin()
	DeleteAdmin()
}

// AdminController 处理管理员账号相关的请求
type AdminController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAdminController 创建一个新的管理员控制器
func NewAdminController(ctx *gin.Context, container *container.ServiceContainer) *AdminController {
	return &AdminController{
		Ctx:       ctx,
		Container: container,
	}
}

// RegisterRequest 表示注册管理员的请求体
type RegisterRequest struct {
	Username string `json:"username" binding:"required" example:"hyeonggeun"`
	Email    string `json:"email" binding:"required,email" example:"hg@lotteworld.local"`
	Password string `json:"password" binding:"required" example:"Admin@123"`
	Code     string `json:"code" binding:"required" example:"482913"` // 邮箱验证码
}

// EmailCodeRequest 表示发送/校验邮箱验证码的请求体
type EmailCodeRequest struct {
	Email string `json:"email" binding:"required,email" example:"hg@lotteworld.local"`
	Code  string `json:"code" example:"482913"` // 校验时必填
}

// UpdateAdminRequest 表示更新管理员的请求体
type UpdateAdminRequest struct {
	Email    string `json:"email" example:"hg@lotteworld.local"`
	Phone    string `json:"phone" example:"010-9876-5432"`
	Password string `json:"password"`
	Role     string `json:"role" example:"admin"`    // 可选值: system_admin, admin
	Status   string `json:"status" example:"active"` // 可选值: active, inactive, locked
}

// GetAdmins 获取管理员列表
// @Summary      获取管理员列表
// @Description  获取所有管理员账号，支持分页和搜索
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1" example:"1"
// @Param        page_size query int false "每页条数，默认为10" example:"10"
// @Param        search query string false "搜索关键词(用户名、邮箱)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /admin [get]
// @Security     BearerAuth
func (c *AdminController) GetAdmins() {
	page, pageSize := parsePagination(c.Ctx)
	search := c.Ctx.Query("search")

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admins, total, err := adminService.GetAllAdmins(page, pageSize, search)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询管理员列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"data":      admins,
	})
}

// GetAdmin 获取单个管理员详情
// @Summary      获取管理员详情
// @Description  根据ID获取管理员信息
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "管理员ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/{id} [get]
// @Security     BearerAuth
func (c *AdminController) GetAdmin() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.GetAdminByID(uint(id))
	if err != nil {
		if err.Error() == "管理员不存在" {
			response.NotFound(c.Ctx, "管理员不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询管理员失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, admin)
}

// Register 注册管理员账号
// @Summary      注册管理员
// @Description  通过邮箱验证码注册新的管理员账号
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "注册信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/register [post]
func (c *AdminController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.Register(req.Username, req.Email, req.Password, req.Code)
	if err != nil {
		switch err.Error() {
		case "邮箱验证码错误或已过期":
			response.Fail(c.Ctx, code.ErrEmailCodeInvalid, nil)
		case "用户名已存在", "邮箱已被使用":
			response.FailWithMessage(c.Ctx, code.ErrDuplicateRecord, err.Error(), nil)
		case "用户名、邮箱和密码不能为空":
			response.ParamError(c.Ctx, err.Error())
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "注册失败: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, gin.H{
		"id":       admin.ID,
		"username": admin.Username,
		"email":    admin.Email,
		"role":     admin.Role,
	})
}

// SendEmailCode 发送邮箱验证码
// @Summary      发送邮箱验证码
// @Description  为管理员注册生成邮箱验证码，5分钟内有效
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body EmailCodeRequest true "目标邮箱"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/email/send-code [post]
func (c *AdminController) SendEmailCode() {
	var req EmailCodeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	if err := adminService.SendEmailCode(req.Email); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUnknown, "验证码发送失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"email": req.Email})
}

// VerifyEmailCode 校验邮箱验证码
// @Summary      校验邮箱验证码
// @Description  校验验证码是否有效，校验通过后立即失效
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body EmailCodeRequest true "邮箱和验证码"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/email/verify-code [post]
func (c *AdminController) VerifyEmailCode() {
	var req EmailCodeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	ok, err := adminService.VerifyEmailCode(req.Email, req.Code)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUnknown, "验证码校验失败: "+err.Error(), nil)
		return
	}
	if !ok {
		response.Fail(c.Ctx, code.ErrEmailCodeInvalid, nil)
		return
	}

	response.Success(c.Ctx, gin.H{"verified": true})
}

// UpdateAdmin 更新管理员信息
// @Summary      更新管理员
// @Description  更新管理员信息，密码更新时重新加密
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "管理员ID" example:"1"
// @Param        request body UpdateAdminRequest true "更新的管理员信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/{id} [put]
// @Security     BearerAuth
func (c *AdminController) UpdateAdmin() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req UpdateAdminRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Password != "" {
		updates["password"] = req.Password
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if len(updates) == 0 {
		response.ParamError(c.Ctx, "没有需要更新的字段")
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.UpdateAdmin(uint(id), updates)
	if err != nil {
		if err.Error() == "管理员不存在" {
			response.NotFound(c.Ctx, "管理员不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新管理员失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, admin)
}

// DeleteAdmin 删除管理员
// @Summary      删除管理员
// @Description  删除管理员账号，至少保留一个
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path int true "管理员ID" example:"2"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/{id} [delete]
// @Security     BearerAuth
func (c *AdminController) DeleteAdmin() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	if err := adminService.DeleteAdmin(uint(id)); err != nil {
		switch err.Error() {
		case "管理员不存在":
			response.NotFound(c.Ctx, "管理员不存在")
		case "至少保留一个管理员账号":
			response.ParamError(c.Ctx, err.Error())
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除管理员失败: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// HandleAdminFunc 返回一个处理管理员请求的Gin处理函数
func HandleAdminFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAdminController(ctx, container)

		switch method {
		case "getAdmins":
			controller.GetAdmins()
		case "getAdmin":
			controller.GetAdmin()
		case "register":
			controller.Register()
		case "sendEmailCode":
			controller.SendEmailCode()
		case "verifyEmailCode":
			controller.VerifyEmailCode()
		case "updateAdmin":
			controller.UpdateAdmin()
		case "deleteAdmin":
			controller.DeleteAdmin()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
