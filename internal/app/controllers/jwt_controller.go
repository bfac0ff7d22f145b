package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services/container"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/code"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/response"
)

// InterfaceJWTController 定义认证控制器接口
type InterfaceJWTController interface {
	Login()
}

// JWTController 处理身份验证请求
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController 创建一个新的认证控制器
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"admin@lotteworld.local"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// LoginResponse 表示登录响应
type LoginResponse struct {
	Code    int         `json:"code" example:"100000"`
	Message string      `json:"message" example:"成功"`
	Data    interface{} `json:"data"`
}

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"100004"`
	Message string      `json:"message" example:"无效的认证令牌"`
	Data    interface{} `json:"data"`
}

// HandleJWTFunc 返回一个处理JWT认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// Login 处理管理员登录
// @Summary      管理员登录
// @Description  管理员邮箱密码登录，返回JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录参数"
// @Success      200  {object}  LoginResponse  "登录成功，返回令牌"
// @Failure      400  {object}  ErrorResponse  "参数错误"
// @Failure      401  {object}  ErrorResponse  "邮箱或密码错误"
// @Router       /admin/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Login(req.Email, req.Password)
	if err != nil {
		switch err.Error() {
		case "管理员不存在", "密码错误":
			response.Fail(c.Ctx, code.ErrUserPasswordIncorrect, nil)
		case "管理员账号已停用":
			response.FailWithMessage(c.Ctx, code.ErrTokenInvalid, err.Error(), nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "登录失败: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, result)
}
