package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
	"github.com/limhyeonggeun/lotteworld-admin/pkg/utils"
)

// OrderStats 预订统计信息
type OrderStats struct {
	Total     int64 `json:"total"`
	Confirmed int64 `json:"confirmed"`
	Visited   int64 `json:"visited"`
	Cancelled int64 `json:"cancelled"`
	Refunded  int64 `json:"refunded"`
	Revenue   int64 `json:"revenue"` // 有效订单的结算金额合计（韩元）
}

// InterfaceOrderService defines the order service interface
type InterfaceOrderService interface {
	GetAllOrders(page, pageSize int, search, status, visitDate string) ([]models.Order, int64, error)
	GetOrderByID(id uint) (*models.Order, error)
	GetOrderByBookingNo(bookingNo string) (*models.Order, error)
	CreateOrder(order *models.Order) error
	UpdateOrderStatus(id uint, status, refundReason string) (*models.Order, error)
	DeleteOrder(id uint) error
	GetStats() (*OrderStats, error)
}

// OrderService 提供门票预订相关的服务
type OrderService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewOrderService 创建一个新的预订服务
func NewOrderService(db *gorm.DB, cfg *config.Config) InterfaceOrderService {
	return &OrderService{
		DB:     db,
		Config: cfg,
	}
}

// 订单状态转移表，键为当前状态，值为允许的下一个状态
var orderTransitions = map[string][]string{
	models.OrderStatusConfirmed: {models.OrderStatusVisited, models.OrderStatusCancelled},
	models.OrderStatusCancelled: {models.OrderStatusRefunded},
	models.OrderStatusVisited:   {},
	models.OrderStatusRefunded:  {},
}

// 1 GetAllOrders 获取所有预订，支持分页、搜索、状态和到访日过滤
func (s *OrderService) GetAllOrders(page, pageSize int, search, status, visitDate string) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := s.DB.Model(&models.Order{})

	if search != "" {
		query = query.Where("booking_no LIKE ? OR buyer_name LIKE ? OR buyer_phone LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if status != "" && status != FilterAll {
		query = query.Where("status = ?", status)
	}

	if visitDate != "" {
		query = query.Where("visit_date = ?", visitDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.
		Preload("Ticket").
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// 2 GetOrderByID 根据ID获取预订详情
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("Ticket").Preload("User").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("预订记录不存在")
		}
		return nil, err
	}
	return &order, nil
}

// 3 GetOrderByBookingNo 根据预订编号获取预订详情
func (s *OrderService) GetOrderByBookingNo(bookingNo string) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("Ticket").Preload("User").
		Where("booking_no = ?", bookingNo).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("预订记录不存在")
		}
		return nil, err
	}
	return &order, nil
}

// 4 CreateOrder 创建新预订，预订编号由服务端生成
func (s *OrderService) CreateOrder(order *models.Order) error {
	if order.BuyerName == "" {
		return errors.New("购票人姓名不能为空")
	}
	if order.Quantity <= 0 {
		return errors.New("购票数量必须大于0")
	}

	if order.BookingNo == "" {
		order.BookingNo = newBookingNo(time.Now())
	}
	if order.Status == "" {
		order.Status = models.OrderStatusConfirmed
	}

	return s.DB.Create(order).Error
}

// 5 UpdateOrderStatus 更新预订状态，按状态转移表校验合法性
// 转入환불완료时必须提供退款原因
func (s *OrderService) UpdateOrderStatus(id uint, status, refundReason string) (*models.Order, error) {
	order, err := s.GetOrderByID(id)
	if err != nil {
		return nil, err
	}

	allowed, ok := orderTransitions[order.Status]
	if !ok {
		return nil, errors.New("未知的预订状态: " + order.Status)
	}

	valid := false
	for _, next := range allowed {
		if next == status {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("预订状态不能从 %s 变更为 %s", order.Status, status)
	}

	updates := map[string]interface{}{"status": status}
	if status == models.OrderStatusRefunded {
		if strings.TrimSpace(refundReason) == "" {
			return nil, errors.New("退款必须填写原因")
		}
		updates["refund_reason"] = refundReason
	}

	if err := s.DB.Model(order).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetOrderByID(id)
}

// 6 DeleteOrder 删除预订记录
func (s *OrderService) DeleteOrder(id uint) error {
	result := s.DB.Delete(&models.Order{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("预订记录不存在")
	}
	return nil
}

// 7 GetStats 获取预订统计，营收只计入确认和已入园的订单
func (s *OrderService) GetStats() (*OrderStats, error) {
	stats := &OrderStats{}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := s.DB.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	for _, c := range counts {
		stats.Total += c.Count
		switch c.Status {
		case models.OrderStatusConfirmed:
			stats.Confirmed = c.Count
		case models.OrderStatusVisited:
			stats.Visited = c.Count
		case models.OrderStatusCancelled:
			stats.Cancelled = c.Count
		case models.OrderStatusRefunded:
			stats.Refunded = c.Count
		}
	}

	if err := s.DB.Model(&models.Order{}).
		Where("status IN ?", []string{models.OrderStatusConfirmed, models.OrderStatusVisited}).
		Select("COALESCE(SUM(price), 0)").
		Scan(&stats.Revenue).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// newBookingNo 生成预订编号，格式 LW-YYYYMMDD-XXXXXX
func newBookingNo(now time.Time) string {
	return fmt.Sprintf("LW-%s-%s", now.Format("20060102"), utils.RandomDigitCode(6))
}
