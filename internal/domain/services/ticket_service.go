package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

// InterfaceTicketService defines the ticket service interface
type InterfaceTicketService interface {
	GetAllTickets(page, pageSize int, search, status string) ([]models.Ticket, int64, error)
	GetTicketByID(id uint) (*models.Ticket, error)
	CreateTicket(ticket *models.Ticket) error
	UpdateTicket(id uint, updates map[string]interface{}) (*models.Ticket, error)
	DeleteTicket(id uint) error
	GetBenefits(ticketID uint) ([]models.Benefit, error)
	CreateBenefit(benefit *models.Benefit) error
	UpdateBenefit(id uint, updates map[string]interface{}) (*models.Benefit, error)
	DeleteBenefit(id uint) error
}

// TicketService 提供票种与特典相关的服务
type TicketService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewTicketService 创建一个新的票种服务
func NewTicketService(db *gorm.DB, cfg *config.Config) InterfaceTicketService {
	return &TicketService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllTickets 获取所有票种，支持分页、搜索和状态过滤
func (s *TicketService) GetAllTickets(page, pageSize int, search, status string) ([]models.Ticket, int64, error) {
	var tickets []models.Ticket
	var total int64

	query := s.DB.Model(&models.Ticket{})

	if search != "" {
		query = query.Where("name LIKE ? OR type LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if status != "" && status != FilterAll {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("id ASC").Limit(pageSize).Offset(offset).Find(&tickets).Error; err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

// 2 GetTicketByID 根据ID获取票种
func (s *TicketService) GetTicketByID(id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.DB.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("票种不存在")
		}
		return nil, err
	}
	return &ticket, nil
}

// 3 CreateTicket 创建新票种
func (s *TicketService) CreateTicket(ticket *models.Ticket) error {
	if ticket.Name == "" {
		return errors.New("票种名称不能为空")
	}

	var count int64
	if err := s.DB.Model(&models.Ticket{}).Where("name = ?", ticket.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("票种名称已存在")
	}

	if ticket.Status == "" {
		ticket.Status = "active"
	}

	return s.DB.Create(ticket).Error
}

// 4 UpdateTicket 更新票种信息
func (s *TicketService) UpdateTicket(id uint, updates map[string]interface{}) (*models.Ticket, error) {
	ticket, err := s.GetTicketByID(id)
	if err != nil {
		return nil, err
	}

	if name, ok := updates["name"].(string); ok && name != ticket.Name {
		var count int64
		if err := s.DB.Model(&models.Ticket{}).Where("name = ? AND id != ?", name, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("票种名称已被其他票种使用")
		}
	}

	if err := s.DB.Model(ticket).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetTicketByID(id)
}

// 5 DeleteTicket 删除票种及其全部特典
func (s *TicketService) DeleteTicket(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Ticket{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("票种不存在")
		}
		return tx.Where("ticket_id = ?", id).Delete(&models.Benefit{}).Error
	})
}

// 6 GetBenefits 获取票种下的所有特典
func (s *TicketService) GetBenefits(ticketID uint) ([]models.Benefit, error) {
	var benefits []models.Benefit
	query := s.DB.Model(&models.Benefit{})
	if ticketID > 0 {
		query = query.Where("ticket_id = ?", ticketID)
	}
	if err := query.Order("id ASC").Find(&benefits).Error; err != nil {
		return nil, err
	}
	return benefits, nil
}

// 7 CreateBenefit 创建特典，必须挂在已存在的票种下
func (s *TicketService) CreateBenefit(benefit *models.Benefit) error {
	if benefit.Name == "" {
		return errors.New("特典名称不能为空")
	}

	if _, err := s.GetTicketByID(benefit.TicketID); err != nil {
		return err
	}

	return s.DB.Create(benefit).Error
}

// 8 UpdateBenefit 更新特典
func (s *TicketService) UpdateBenefit(id uint, updates map[string]interface{}) (*models.Benefit, error) {
	var benefit models.Benefit
	if err := s.DB.First(&benefit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("特典不存在")
		}
		return nil, err
	}

	if err := s.DB.Model(&benefit).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &benefit, nil
}

// 9 DeleteBenefit 删除特典
func (s *TicketService) DeleteBenefit(id uint) error {
	result := s.DB.Delete(&models.Benefit{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("特典不存在")
	}
	return nil
}
