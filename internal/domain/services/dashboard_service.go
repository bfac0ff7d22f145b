package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
	"github.com/limhyeonggeun/lotteworld-admin/pkg/logger"
)

// 仪表盘统计缓存时长
const dashboardCacheTTL = time.Minute

// DashboardOverview 仪表盘首页的汇总指标
type DashboardOverview struct {
	UserCount        int64             `json:"userCount"`
	TodayOrders      int64             `json:"todayOrders"`
	TodayVisitors    int64             `json:"todayVisitors"`
	UpcomingClosures int64             `json:"upcomingClosures"` // 今天及之后的运休记录数
	AlertStats       models.AlertStats `json:"alertStats"`
	OrderStats       OrderStats        `json:"orderStats"`
	PublishedNotices int64             `json:"publishedNotices"`
	OpenPOIs         int64             `json:"openPois"`
}

// DayPoint 按天聚合的序列点
type DayPoint struct {
	Date  string `json:"date"` // 格式 "2006-01-02"
	Count int64  `json:"count"`
}

// InterfaceDashboardService defines the dashboard service interface
type InterfaceDashboardService interface {
	GetOverview(now time.Time) (*DashboardOverview, error)
	GetMembersWeek(now time.Time) ([]DayPoint, error)
	GetReservationsWeek(now time.Time) ([]DayPoint, error)
}

// DashboardService 聚合各模块数据，供管理后台首页展示
// 统计结果经Redis短时缓存，避免每次刷新都全表扫描
type DashboardService struct {
	DB           *gorm.DB
	Config       *config.Config
	Redis        InterfaceRedisService
	Notification InterfaceNotificationService
	Order        InterfaceOrderService
}

// NewDashboardService 创建一个新的仪表盘服务
func NewDashboardService(
	db *gorm.DB,
	cfg *config.Config,
	redis InterfaceRedisService,
	notification InterfaceNotificationService,
	order InterfaceOrderService,
) InterfaceDashboardService {
	return &DashboardService{
		DB:           db,
		Config:       cfg,
		Redis:        redis,
		Notification: notification,
		Order:        order,
	}
}

// 1 GetOverview 获取仪表盘汇总指标，优先读缓存
func (s *DashboardService) GetOverview(now time.Time) (*DashboardOverview, error) {
	var cached DashboardOverview
	if err := s.Redis.GetDashboardStats("overview", &cached); err == nil {
		return &cached, nil
	}

	overview := &DashboardOverview{}
	today := now.Format(MaintenanceDateLayout)

	if err := s.DB.Model(&models.User{}).Count(&overview.UserCount).Error; err != nil {
		return nil, err
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := s.DB.Model(&models.Order{}).
		Where("created_at >= ?", startOfDay).
		Count(&overview.TodayOrders).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Order{}).
		Where("visit_date = ? AND status = ?", today, models.OrderStatusVisited).
		Count(&overview.TodayVisitors).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Maintenance{}).
		Where("date >= ?", today).
		Count(&overview.UpcomingClosures).Error; err != nil {
		return nil, err
	}

	alertStats, err := s.Notification.GetStats()
	if err != nil {
		return nil, err
	}
	overview.AlertStats = alertStats

	orderStats, err := s.Order.GetStats()
	if err != nil {
		return nil, err
	}
	overview.OrderStats = *orderStats

	if err := s.DB.Model(&models.Notice{}).
		Where("status = ?", models.NoticeStatusPublished).
		Count(&overview.PublishedNotices).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.POI{}).
		Where("status = ?", models.POIStatusOpen).
		Count(&overview.OpenPOIs).Error; err != nil {
		return nil, err
	}

	// 缓存失败不影响返回结果
	if err := s.Redis.CacheDashboardStats("overview", overview, dashboardCacheTTL); err != nil {
		logger.Warning("仪表盘统计缓存写入失败: %v", err)
	}

	return overview, nil
}

// 2 GetMembersWeek 获取最近7天的会员注册序列，含今天，缺失的日期补0
func (s *DashboardService) GetMembersWeek(now time.Time) ([]DayPoint, error) {
	return s.weekSeries("members_week", &models.User{}, now)
}

// 3 GetReservationsWeek 获取最近7天的预订序列
func (s *DashboardService) GetReservationsWeek(now time.Time) ([]DayPoint, error) {
	return s.weekSeries("reservations_week", &models.Order{}, now)
}

// weekSeries 按created_at聚合指定模型最近7天的每日数量
func (s *DashboardService) weekSeries(cacheKey string, model interface{}, now time.Time) ([]DayPoint, error) {
	var cached []DayPoint
	if err := s.Redis.GetDashboardStats(cacheKey, &cached); err == nil {
		return cached, nil
	}

	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -6)

	var rows []DayPoint
	if err := s.DB.Model(model).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Where("created_at >= ?", weekStart).
		Group("DATE(created_at)").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Date] = row.Count
	}

	series := make([]DayPoint, 0, 7)
	for d := weekStart; len(series) < 7; d = d.AddDate(0, 0, 1) {
		date := d.Format(MaintenanceDateLayout)
		series = append(series, DayPoint{Date: date, Count: counts[date]})
	}

	if err := s.Redis.CacheDashboardStats(cacheKey, series, dashboardCacheTTL); err != nil {
		logger.Warning("仪表盘序列缓存写入失败: %v", err)
	}

	return series, nil
}
