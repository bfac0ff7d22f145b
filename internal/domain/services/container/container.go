package container

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// 通知投递服务
	dispatcherService services.InterfaceDispatcherService

	// 业务服务
	notificationService services.InterfaceNotificationService
	maintenanceService  services.InterfaceMaintenanceService
	userService         services.InterfaceUserService
	orderService        services.InterfaceOrderService
	ticketService       services.InterfaceTicketService
	noticeService       services.InterfaceNoticeService
	poiService          services.InterfacePOIService
	adminService        services.InterfaceAdminService
	dashboardService    services.InterfaceDashboardService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config, c.db)
	c.redisService = services.NewRedisService(c.config)

	// 初始化通知投递服务
	c.dispatcherService = services.NewDispatcherService(c.db, c.config)

	// 连接MQTT推送通道
	if err := c.dispatcherService.Connect(); err != nil {
		log.Printf("MQTT推送通道连接失败: %v", err)
	}

	// 初始化业务服务
	c.notificationService = services.NewNotificationService(c.db, c.config)
	c.maintenanceService = services.NewMaintenanceService(c.db, c.config)
	c.userService = services.NewUserService(c.db, c.config)
	c.orderService = services.NewOrderService(c.db, c.config)
	c.ticketService = services.NewTicketService(c.db, c.config)
	c.noticeService = services.NewNoticeService(c.db, c.config)
	c.poiService = services.NewPOIService(c.db, c.config)
	c.adminService = services.NewAdminService(c.db, c.config, c.redisService)

	// 仪表盘依赖通知和预订服务的统计
	c.dashboardService = services.NewDashboardService(
		c.db, c.config, c.redisService, c.notificationService, c.orderService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "dispatcher":
		return c.dispatcherService
	case "notification":
		return c.notificationService
	case "maintenance":
		return c.maintenanceService
	case "user":
		return c.userService
	case "order":
		return c.orderService
	case "ticket":
		return c.ticketService
	case "notice":
		return c.noticeService
	case "poi":
		return c.poiService
	case "admin":
		return c.adminService
	case "dashboard":
		return c.dashboardService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
