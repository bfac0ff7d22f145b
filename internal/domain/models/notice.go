package models

// 公告状态（与通知不同，公告有草稿状态）
const (
	NoticeStatusDraft     = "draft"
	NoticeStatusPublished = "published"
	NoticeStatusScheduled = "scheduled"
)

// Notice 表示官网公告
type Notice struct {
	BaseModel
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Content     string `gorm:"type:text;not null" json:"content"`
	Category    string `gorm:"type:varchar(30)" json:"category"` // 如: 일반, 이벤트, 긴급
	Status      string `gorm:"type:varchar(10);default:'draft'" json:"status"`
	PublishedAt string `gorm:"type:varchar(16)" json:"publishedAt,omitempty"` // 格式 "2006-01-02 15:04"
	Views       int    `gorm:"default:0" json:"views"`
}

// FAQ 表示常见问题条目
type FAQ struct {
	BaseModel
	Question  string `gorm:"type:varchar(255);not null" json:"question"`
	Answer    string `gorm:"type:text;not null" json:"answer"`
	Category  string `gorm:"type:varchar(30)" json:"category"`
	SortOrder int    `gorm:"default:0" json:"sortOrder"`
}
