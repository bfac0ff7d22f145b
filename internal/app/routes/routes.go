package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/limhyeonggeun/lotteworld-admin/docs"
	"github.com/limhyeonggeun/lotteworld-admin/internal/app/controllers"
	"github.com/limhyeonggeun/lotteworld-admin/internal/app/middleware"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services/container"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, *container.ServiceContainer) {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, nil)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, db)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	// 运休图片等上传文件的静态访问
	r.Static("/uploads", cfg.UploadDir)

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r, serviceContainer
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加IP限流中间件 - 每秒允许10个请求，最多突发20个请求
	api.Use(middleware.IPRateLimiter(10, 20))

	// 健康检查路由
	healthController := controllers.NewHealthCheckController()
	api.GET("/ping", healthController.Ping)
	api.GET("/health", healthController.Ping) // 兼容Docker健康检查的路由

	// 管理员认证路由
	api.POST("/admin/login", controllers.HandleJWTFunc(container, "login"))
	api.POST("/admin/register", controllers.HandleAdminFunc(container, "register"))

	// 邮箱验证码路由，单独收紧限流防止验证码轰炸
	emailGroup := api.Group("/admin/email")
	emailGroup.Use(middleware.CombinedRateLimiter(1, 3))
	emailGroup.POST("/send-code", controllers.HandleAdminFunc(container, "sendEmailCode"))
	emailGroup.POST("/verify-code", controllers.HandleAdminFunc(container, "verifyEmailCode"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateAdmin())

	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	auth.Use(middleware.IPRateLimiter(30, 50))

	// 通知管理路由
	notificationGroup := auth.Group("/notifications")
	notificationGroup.GET("", controllers.HandleNotificationFunc(container, "getNotifications"))
	notificationGroup.GET("/stats", controllers.HandleNotificationFunc(container, "getNotificationStats"))
	notificationGroup.GET("/:id", controllers.HandleNotificationFunc(container, "getNotification"))
	notificationGroup.POST("", controllers.HandleNotificationFunc(container, "createNotification"))
	notificationGroup.PUT("/:id", controllers.HandleNotificationFunc(container, "updateNotification"))
	notificationGroup.DELETE("/:id", controllers.HandleNotificationFunc(container, "deleteNotification"))
	notificationGroup.POST("/:id/resend", controllers.HandleNotificationFunc(container, "resendNotification"))
	notificationGroup.POST("/:id/cancel", controllers.HandleNotificationFunc(container, "cancelNotification"))
	notificationGroup.POST("/bulk-resend", controllers.HandleNotificationFunc(container, "bulkResendNotifications"))
	notificationGroup.POST("/bulk-delete", controllers.HandleNotificationFunc(container, "bulkDeleteNotifications"))

	// 运休公告路由
	maintenanceGroup := auth.Group("/maintenance")
	maintenanceGroup.GET("", controllers.HandleMaintenanceFunc(container, "getMaintenances"))
	maintenanceGroup.GET("/:id", controllers.HandleMaintenanceFunc(container, "getMaintenance"))
	maintenanceGroup.POST("", controllers.HandleMaintenanceFunc(container, "createMaintenance"))
	maintenanceGroup.PUT("/:id", controllers.HandleMaintenanceFunc(container, "updateMaintenance"))
	maintenanceGroup.DELETE("/:id", controllers.HandleMaintenanceFunc(container, "deleteMaintenance"))

	// 会员管理路由
	userGroup := auth.Group("/users")
	userGroup.GET("", controllers.HandleUserFunc(container, "getUsers"))
	userGroup.GET("/count", middleware.Cache(time.Minute), controllers.HandleUserFunc(container, "getUserCount"))
	userGroup.GET("/:id", controllers.HandleUserFunc(container, "getUser"))
	userGroup.POST("", controllers.HandleUserFunc(container, "createUser"))
	userGroup.PATCH("/:id", controllers.HandleUserFunc(container, "updateUser"))
	userGroup.DELETE("/:id", controllers.HandleUserFunc(container, "deleteUser"))

	// 预订管理路由
	orderGroup := auth.Group("/orders")
	orderGroup.GET("", controllers.HandleOrderFunc(container, "getOrders"))
	orderGroup.GET("/stats", controllers.HandleOrderFunc(container, "getOrderStats"))
	orderGroup.GET("/:id", controllers.HandleOrderFunc(container, "getOrder"))
	orderGroup.POST("", controllers.HandleOrderFunc(container, "createOrder"))
	orderGroup.PATCH("/:id/status", controllers.HandleOrderFunc(container, "updateOrderStatus"))
	orderGroup.DELETE("/:id", controllers.HandleOrderFunc(container, "deleteOrder"))

	// 票种和特典路由
	ticketGroup := auth.Group("/tickets")
	ticketGroup.GET("", controllers.HandleTicketFunc(container, "getTickets"))
	ticketGroup.GET("/:id", controllers.HandleTicketFunc(container, "getTicket"))
	ticketGroup.POST("", controllers.HandleTicketFunc(container, "createTicket"))
	ticketGroup.PUT("/:id", controllers.HandleTicketFunc(container, "updateTicket"))
	ticketGroup.DELETE("/:id", controllers.HandleTicketFunc(container, "deleteTicket"))

	benefitGroup := auth.Group("/benefits")
	benefitGroup.GET("", controllers.HandleTicketFunc(container, "getBenefits"))
	benefitGroup.POST("", controllers.HandleTicketFunc(container, "createBenefit"))
	benefitGroup.PUT("/:id", controllers.HandleTicketFunc(container, "updateBenefit"))
	benefitGroup.DELETE("/:id", controllers.HandleTicketFunc(container, "deleteBenefit"))

	// 公告路由
	noticeGroup := auth.Group("/notices")
	noticeGroup.GET("", controllers.HandleNoticeFunc(container, "getNotices"))
	noticeGroup.GET("/:id", controllers.HandleNoticeFunc(container, "getNotice"))
	noticeGroup.POST("", controllers.HandleNoticeFunc(container, "createNotice"))
	noticeGroup.PUT("/:id", controllers.HandleNoticeFunc(container, "updateNotice"))
	noticeGroup.POST("/:id/publish", controllers.HandleNoticeFunc(container, "publishNotice"))
	noticeGroup.DELETE("/:id", controllers.HandleNoticeFunc(container, "deleteNotice"))

	// FAQ路由，列表短时缓存
	faqGroup := auth.Group("/faqs")
	faqGroup.GET("", middleware.Cache(time.Minute), controllers.HandleNoticeFunc(container, "getFAQs"))
	faqGroup.POST("", controllers.HandleNoticeFunc(container, "createFAQ"))
	faqGroup.PUT("/:id", controllers.HandleNoticeFunc(container, "updateFAQ"))
	faqGroup.DELETE("/:id", controllers.HandleNoticeFunc(container, "deleteFAQ"))

	// 园区地图POI路由
	poiGroup := auth.Group("/poi")
	poiGroup.GET("/categories", middleware.Cache(time.Minute), controllers.HandlePOIFunc(container, "getCategories"))
	poiGroup.POST("/categories", controllers.HandlePOIFunc(container, "createCategory"))
	poiGroup.PUT("/categories/:id", controllers.HandlePOIFunc(container, "updateCategory"))
	poiGroup.DELETE("/categories/:id", controllers.HandlePOIFunc(container, "deleteCategory"))
	poiGroup.GET("", controllers.HandlePOIFunc(container, "getPOIs"))
	poiGroup.GET("/:id", controllers.HandlePOIFunc(container, "getPOI"))
	poiGroup.POST("", controllers.HandlePOIFunc(container, "createPOI"))
	poiGroup.PUT("/:id", controllers.HandlePOIFunc(container, "updatePOI"))
	poiGroup.PATCH("/:id/position", controllers.HandlePOIFunc(container, "updatePOIPosition"))
	poiGroup.DELETE("/:id", controllers.HandlePOIFunc(container, "deletePOI"))

	// 仪表盘路由
	dashboardGroup := auth.Group("/dashboard")
	dashboardGroup.GET("/overview", controllers.HandleDashboardFunc(container, "getOverview"))
	dashboardGroup.GET("/members-week", controllers.HandleDashboardFunc(container, "getMembersWeek"))
	dashboardGroup.GET("/reservations-week", controllers.HandleDashboardFunc(container, "getReservationsWeek"))

	// 管理员账号管理路由，仅系统管理员可访问
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthenticateSystemAdmin())
	adminGroup.GET("", controllers.HandleAdminFunc(container, "getAdmins"))
	adminGroup.GET("/:id", controllers.HandleAdminFunc(container, "getAdmin"))
	adminGroup.PUT("/:id", controllers.HandleAdminFunc(container, "updateAdmin"))
	adminGroup.DELETE("/:id", controllers.HandleAdminFunc(container, "deleteAdmin"))
}
