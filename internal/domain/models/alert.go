package models

import "time"

// 通知类型
const (
	AlertTypeSystem      = "system"      // 系统通知
	AlertTypeRideClosed  = "ride_closed" // 运休通知
	AlertTypeRideResumed = "ride_resumed" // 运行再开通知
	AlertTypeEvent       = "event"       // 活动通知
	AlertTypeParade      = "parade"      // 巡游通知
)

// 通知接收对象
const (
	RecipientAllUsers = "all_users" // 全体用户
	RecipientSpecific = "specific"  // 指定等级用户
)

// 发送方式
const (
	DeliveryPush  = "push"  // 推送通知
	DeliveryEmail = "email" // 电子邮件
)

// 通知状态
const (
	AlertStatusScheduled = "scheduled" // 预约发送
	AlertStatusSent      = "sent"      // 已发送
	AlertStatusFailed    = "failed"    // 发送失败
)

// Alert 表示一条广播通知记录
type Alert struct {
	ID             string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	Title          string     `gorm:"type:varchar(200);not null" json:"title"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	Type           string     `gorm:"type:varchar(20);not null;default:'system'" json:"type"`
	Recipient      string     `gorm:"type:varchar(20);not null;default:'all_users'" json:"recipient"`
	RecipientGrade string     `gorm:"type:varchar(20)" json:"recipientGrade,omitempty"` // 如 "vip"、"일반"
	UserIDs        UintList   `gorm:"type:json" json:"userIds,omitempty"`               // recipient=specific时解析出的用户ID
	DeliveryMethod string     `gorm:"type:varchar(10);not null;default:'push'" json:"deliveryMethod"`
	DeliveryTime   string     `gorm:"type:varchar(16);not null" json:"deliveryTime"` // 格式 "2006-01-02 15:04"
	ScheduledAt    string     `gorm:"type:varchar(16)" json:"scheduledAt,omitempty"`
	Status         string     `gorm:"type:varchar(10);not null;default:'scheduled'" json:"status"`
	FailReason     string     `gorm:"type:varchar(255)" json:"failReason,omitempty"`
	Priority       string     `gorm:"type:varchar(10)" json:"priority,omitempty"` // low, medium, high（仅影响展示）
	ImageURL       string     `gorm:"type:varchar(255)" json:"imageUrl,omitempty"`
	ActionURL      string     `gorm:"type:varchar(255)" json:"actionUrl,omitempty"`
	Tags           StringList `gorm:"type:json" json:"tags,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// DedupeKey 返回全体广播通知的去重键（标题+内容+类型+发送时间的精确拼接）
func (a *Alert) DedupeKey() string {
	return a.Title + a.Content + a.Type + a.DeliveryTime
}

// Editable 判断通知当前是否允许编辑（仅预约中和失败的通知可改）
func (a *Alert) Editable() bool {
	return a.Status == AlertStatusScheduled || a.Status == AlertStatusFailed
}

// AlertStats 通知统计信息
type AlertStats struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
}
