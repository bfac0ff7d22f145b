package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services/container"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/code"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/response"
)

// InterfaceDashboardController 定义仪表盘控制器接口
type InterfaceDashboardController interface {
	GetOverview()
	GetMembersWeek()
	GetReservationsWeek()
}

// DashboardController 处理管理后台首页的汇总请求
type DashboardController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDashboardController 创建一个新的仪表盘控制器
func NewDashboardController(ctx *gin.Context, container *container.ServiceContainer) *DashboardController {
	return &DashboardController{
		Ctx:       ctx,
		Container: container,
	}
}

// GetOverview 获取仪表盘汇总指标
// @Summary      获取仪表盘汇总
// @Description  获取会员数、今日预订、运休、通知统计等首页指标
// @Tags         Dashboard
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /dashboard/overview [get]
// @Security     BearerAuth
func (c *DashboardController) GetOverview() {
	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	overview, err := dashboardService.GetOverview(time.Now())
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询仪表盘数据失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, overview)
}

// GetMembersWeek 获取最近7天的会员注册序列
// @Summary      获取会员周序列
// @Description  获取最近7天每日新增会员数，用于首页折线图
// @Tags         Dashboard
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /dashboard/members-week [get]
// @Security     BearerAuth
func (c *DashboardController) GetMembersWeek() {
	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	series, err := dashboardService.GetMembersWeek(time.Now())
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询会员序列失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, series)
}

// GetReservationsWeek 获取最近7天的预订序列
// @Summary      获取预订周序列
// @Description  获取最近7天每日新增预订数，用于首页折线图
// @Tags         Dashboard
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /dashboard/reservations-week [get]
// @Security     BearerAuth
func (c *DashboardController) GetReservationsWeek() {
	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	series, err := dashboardService.GetReservationsWeek(time.Now())
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询预订序列失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, series)
}

// HandleDashboardFunc 返回一个处理仪表盘请求的Gin处理函数
func HandleDashboardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDashboardController(ctx, container)

		switch method {
		case "getOverview":
			controller.GetOverview()
		case "getMembersWeek":
			controller.GetMembersWeek()
		case "getReservationsWeek":
			controller.GetReservationsWeek()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
