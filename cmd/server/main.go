// @title           LotteWorld Admin API
// @version         1.0
// @description     乐天世界游乐园运营后台服务，提供通知投递、运休公告、会员与预订管理等接口
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  admin@lotteworld.local

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:5040
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/app/routes"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/database"
	Logger "github.com/limhyeonggeun/lotteworld-admin/pkg/logger"
)

func main() {
	// 设置最大处理器数量，提高并发性能
	runtime.GOMAXPROCS(runtime.NumCPU())

	// 初始化日志配置
	if err := Logger.SetupLogger(); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}

	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		Logger.Warning("无法加载.env文件: %v", err)
		// 即使加载失败也继续执行，可能环境变量已经通过其他方式设置
	} else {
		Logger.Info("成功加载.env文件")
	}

	// 获取配置
	cfg := config.GetConfig()

	// 创建优化的数据库连接池
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		log.Fatalf("无法创建数据库连接池: %v", err)
	}
	db := pool.GetDB()

	// 根据配置执行不同的数据库操作
	if cfg.DBMigrationMode == "drop" {
		// 删除并重建表
		log.Println("警告: 在drop模式下运行，将删除并重建所有表")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("删除并重建表失败: %v", err)
		}
	} else {
		// 默认AutoMigrate，只会添加新列和新表，不会删除或修改列
		log.Println("在标准模式下运行，将只添加新列和新表")
		if err := autoMigrate(db); err != nil {
			log.Fatalf("自动迁移失败: %v", err)
		}
	}

	// 初始化路由和服务容器
	r, serviceContainer := routes.SetupRouter(db, cfg)

	// 确保系统中有管理员账户
	adminService := serviceContainer.GetService("admin").(services.InterfaceAdminService)
	if err := adminService.EnsureDefaultAdmin(); err != nil {
		log.Fatalf("初始化默认管理员失败: %v", err)
	}

	// 启动预约通知调度器
	dispatcher := serviceContainer.GetService("dispatcher").(services.InterfaceDispatcherService)
	dispatcher.Start()

	// 监听退出信号，停止调度器并断开MQTT连接
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		Logger.Info("收到退出信号，正在停止调度器")
		dispatcher.Stop()
		dispatcher.Disconnect()
		os.Exit(0)
	}()

	// 使用配置中的端口，而不是直接从环境变量获取
	port := cfg.ServerPort

	// 打印系统信息
	printSystemInfo(pool)

	// 启动服务器 - 注意监听所有接口(0.0.0.0)而不是只监听localhost
	Logger.Info("服务器启动在: http://0.0.0.0:%s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		Logger.Error("启动服务器失败: %v", err)
		os.Exit(1)
	}
}

// autoMigrate 自动迁移所有模型（只添加新列和新表）
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Alert{},
		&models.Maintenance{},
		&models.Ticket{},
		&models.Benefit{},
		&models.Order{},
		&models.Notice{},
		&models.FAQ{},
		&models.POICategory{},
		&models.POI{},
	)

	if err != nil {
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// dropAndRecreateTables 删除并重建所有表
func dropAndRecreateTables(db *gorm.DB) error {
	// 获取底层SQL连接
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB connection: %w", err)
	}

	// 禁用外键约束检查
	_, err = sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 0")
	if err != nil {
		log.Printf("禁用外键约束检查失败: %v", err)
	}
	defer sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 1") // 确保在函数结束时重新启用外键约束

	// 删除所有表
	tables := []string{
		"admins", "users", "alerts", "maintenances", "tickets", "benefits",
		"orders", "notices", "faqs", "poi_categories", "pois",
	}

	for _, table := range tables {
		log.Printf("删除表: %s", table)
		if _, err := sqlDB.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			log.Printf("删除表失败: %v", err)
		}
	}

	// 重新创建表
	return autoMigrate(db)
}

// printSystemInfo 打印系统运行信息
func printSystemInfo(pool *database.ConnectionPool) {
	fmt.Println("========================================")
	fmt.Printf("CPU核心数: %d\n", runtime.NumCPU())
	fmt.Printf("Go版本: %s\n", runtime.Version())

	if stats, err := pool.Stats(); err == nil {
		fmt.Printf("数据库连接池: %v\n", stats)
	}
	fmt.Println("========================================")
}
