package models

// Ticket 表示可售卖的门票票种
type Ticket struct {
	BaseModel
	Name       string `gorm:"type:varchar(100);not null" json:"name"`
	Type       string `gorm:"type:varchar(30);not null" json:"type"` // 如: 종합이용권, 주간권, 야간권
	AdultPrice int    `gorm:"not null;default:0" json:"adultPrice"`
	TeenPrice  int    `gorm:"not null;default:0" json:"teenPrice"`
	ChildPrice int    `gorm:"not null;default:0" json:"childPrice"`
	Status     string `gorm:"type:varchar(20);default:'active'" json:"status"` // active, inactive
	Remark     string `gorm:"type:varchar(255)" json:"remark"`
}

// Benefit 表示票种附带的优惠/特典选项
type Benefit struct {
	BaseModel
	TicketID    uint   `gorm:"not null;index" json:"ticketId"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`
	Discount    int    `gorm:"default:0" json:"discount"` // 折扣金额（韩元）
}
