package models

// 会员等级（等级值区分大小写，与历史数据保持一致）
const (
	GradeNormal   = "Normal"
	GradeVIP      = "vip"
	GradeStandard = "일반"
)

// 会员状态
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusBanned   = "banned"
)

// User 表示乐园注册会员
type User struct {
	BaseModel
	Name    string `gorm:"type:varchar(50);not null" json:"name"`
	Email   string `gorm:"type:varchar(100);unique;not null" json:"email"`
	Phone   string `gorm:"type:varchar(20)" json:"phone"`
	Grade   string `gorm:"type:varchar(20);default:'Normal'" json:"grade"` // 会员等级: Normal, vip, 일반
	Status  string `gorm:"type:varchar(20);default:'active'" json:"status"`
	IsAdmin bool   `gorm:"default:false" json:"isAdmin"`
}
