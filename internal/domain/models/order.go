package models

// 预订状态
const (
	OrderStatusConfirmed = "예약확정" // 预订确认
	OrderStatusVisited   = "방문완료" // 已入园
	OrderStatusCancelled = "취소"   // 已取消
	OrderStatusRefunded  = "환불완료" // 已退款
)

// Order 表示一笔门票预订记录
type Order struct {
	BaseModel
	BookingNo    string   `gorm:"type:varchar(30);unique;not null" json:"bookingNo"`
	UserID       *uint    `json:"userId,omitempty"`
	TicketID     *uint    `json:"ticketId,omitempty"`
	BuyerName    string   `gorm:"type:varchar(50);not null" json:"buyerName"`
	BuyerEmail   string   `gorm:"type:varchar(100)" json:"buyerEmail"`
	BuyerPhone   string   `gorm:"type:varchar(20)" json:"buyerPhone"`
	VisitorName  string   `gorm:"type:varchar(50)" json:"visitorName"`
	VisitorEmail string   `gorm:"type:varchar(100)" json:"visitorEmail"`
	VisitorPhone string   `gorm:"type:varchar(20)" json:"visitorPhone"`
	Quantity     int      `gorm:"not null;default:1" json:"quantity"`
	Price        int      `gorm:"not null;default:0" json:"price"` // 结算金额（韩元）
	PayMethod    string   `gorm:"type:varchar(20)" json:"payMethod"`
	OptionName   string   `gorm:"type:varchar(100)" json:"optionName"` // 票种选项名称
	Counts       string   `gorm:"type:json" json:"counts"`             // 大人/青少年/儿童数量明细
	VisitDate    string   `gorm:"type:varchar(10);index" json:"visitDate"`
	Status       string   `gorm:"type:varchar(20);default:'예약확정'" json:"status"`
	RefundReason string   `gorm:"type:varchar(255)" json:"refundReason,omitempty"`
	Ticket       *Ticket  `gorm:"foreignKey:TicketID" json:"Ticket,omitempty"`
	User         *User    `gorm:"foreignKey:UserID" json:"User,omitempty"`
}
