package services

import (
	"strings"
	"time"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
)

// FilterAll 表示筛选条件不限定（匹配所有值）
const FilterAll = "all"

// AlertFilter 通知列表的筛选条件，所有条件按AND组合
type AlertFilter struct {
	Search    string `form:"search" json:"search"`       // 标题/内容模糊搜索，忽略大小写
	Status    string `form:"status" json:"status"`       // scheduled, sent, failed 或 all
	Recipient string `form:"recipient" json:"recipient"` // all_users, specific 或 all
	Method    string `form:"method" json:"method"`       // push, email 或 all
	Type      string `form:"type" json:"type"`           // 分类标签页，与通知类型一一对应，或 all
}

// DedupeAlerts 去除上游重复推送的全体广播通知
// 仅对 recipient=all_users 的通知生效，去重键为标题+内容+类型+发送时间的
// 精确拼接，保留首次出现的记录，顺序稳定。指定等级的通知原样通过。
func DedupeAlerts(alerts []models.Alert) []models.Alert {
	seen := make(map[string]bool, len(alerts))
	result := make([]models.Alert, 0, len(alerts))

	for _, alert := range alerts {
		if alert.Recipient != models.RecipientAllUsers {
			result = append(result, alert)
			continue
		}
		key := alert.DedupeKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, alert)
	}

	return result
}

// ResolveRecipients 根据接收对象规则解析出具体的用户ID列表
// recipient=all_users 时返回nil，表示面向全体用户，无需展开；
// recipient=specific 时按等级精确匹配（区分大小写），保持目录顺序。
func ResolveRecipients(recipient, grade string, users []models.User) []uint {
	if recipient != models.RecipientSpecific {
		return nil
	}

	var ids []uint
	for _, user := range users {
		if user.Grade == grade {
			ids = append(ids, user.ID)
		}
	}
	return ids
}

// FilterAlerts 按筛选条件投影通知列表，纯函数，不修改入参
func FilterAlerts(alerts []models.Alert, filter AlertFilter) []models.Alert {
	search := strings.ToLower(filter.Search)
	result := make([]models.Alert, 0, len(alerts))

	for _, alert := range alerts {
		if search != "" &&
			!strings.Contains(strings.ToLower(alert.Title), search) &&
			!strings.Contains(strings.ToLower(alert.Content), search) {
			continue
		}
		if !matchesFilter(filter.Status, alert.Status) {
			continue
		}
		if !matchesFilter(filter.Recipient, alert.Recipient) {
			continue
		}
		if !matchesFilter(filter.Method, alert.DeliveryMethod) {
			continue
		}
		if !matchesFilter(filter.Type, alert.Type) {
			continue
		}
		result = append(result, alert)
	}

	return result
}

// matchesFilter 判断单个筛选值是否匹配，空字符串和"all"都表示不限定
func matchesFilter(filterValue, actual string) bool {
	return filterValue == "" || filterValue == FilterAll || filterValue == actual
}

// ComputeAlertStats 统计当前通知集合的状态分布
func ComputeAlertStats(alerts []models.Alert) models.AlertStats {
	stats := models.AlertStats{Total: len(alerts)}
	for _, alert := range alerts {
		switch alert.Status {
		case models.AlertStatusScheduled:
			stats.Scheduled++
		case models.AlertStatusSent:
			stats.Sent++
		case models.AlertStatusFailed:
			stats.Failed++
		}
	}
	return stats
}

// PaginateAlerts 返回指定页的通知切片，页码从1开始，越界返回空切片
func PaginateAlerts(alerts []models.Alert, page, pageSize int) []models.Alert {
	if page < 1 || pageSize < 1 {
		return []models.Alert{}
	}
	start := (page - 1) * pageSize
	if start >= len(alerts) {
		return []models.Alert{}
	}
	end := start + pageSize
	if end > len(alerts) {
		end = len(alerts)
	}
	return alerts[start:end]
}

// DeliveryTimeLayout 通知发送时间的统一格式
const DeliveryTimeLayout = "2006-01-02 15:04"

// ComposeDeliveryTime 由表单输入确定性地计算发送时间
// 立即发送时取当前时间；预约发送时拼接日期与时刻
func ComposeDeliveryTime(sendImmediately bool, deliveryDate, deliveryClock string, now time.Time) string {
	if sendImmediately {
		return now.Format(DeliveryTimeLayout)
	}
	return deliveryDate + " " + deliveryClock
}
