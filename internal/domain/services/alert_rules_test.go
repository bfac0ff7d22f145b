package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
)

func makeAlert(id, title, content, alertType, recipient, method, status, deliveryTime string) models.Alert {
	return models.Alert{
		ID:             id,
		Title:          title,
		Content:        content,
		Type:           alertType,
		Recipient:      recipient,
		DeliveryMethod: method,
		Status:         status,
		DeliveryTime:   deliveryTime,
	}
}

func TestDedupeAlerts(t *testing.T) {
	t.Run("全体广播去重保留首条", func(t *testing.T) {
		first := makeAlert("ALT-1", "퍼레이드 안내", "오후 7시 퍼레이드", models.AlertTypeParade,
			models.RecipientAllUsers, models.DeliveryPush, models.AlertStatusSent, "2026-04-01 18:00")
		duplicate := makeAlert("ALT-2", "퍼레이드 안내", "오후 7시 퍼레이드", models.AlertTypeParade,
			models.RecipientAllUsers, models.DeliveryEmail, models.AlertStatusScheduled, "2026-04-01 18:00")

		result := DedupeAlerts([]models.Alert{first, duplicate})

		assert.Len(t, result, 1)
		assert.Equal(t, "ALT-1", result[0].ID)
	})

	t.Run("指定等级通知不参与去重", func(t *testing.T) {
		first := makeAlert("ALT-1", "VIP 혜택", "라운지 이용 안내", models.AlertTypeEvent,
			models.RecipientSpecific, models.DeliveryPush, models.AlertStatusSent, "2026-04-01 10:00")
		second := makeAlert("ALT-2", "VIP 혜택", "라운지 이용 안내", models.AlertTypeEvent,
			models.RecipientSpecific, models.DeliveryPush, models.AlertStatusSent, "2026-04-01 10:00")

		result := DedupeAlerts([]models.Alert{first, second})

		assert.Len(t, result, 2)
	})

	t.Run("发送时间不同视为不同通知", func(t *testing.T) {
		first := makeAlert("ALT-1", "아트란티스 운휴", "점검으로 운휴", models.AlertTypeRideClosed,
			models.RecipientAllUsers, models.DeliveryPush, models.AlertStatusSent, "2026-04-01 09:00")
		second := makeAlert("ALT-2", "아트란티스 운휴", "점검으로 운휴", models.AlertTypeRideClosed,
			models.RecipientAllUsers, models.DeliveryPush, models.AlertStatusSent, "2026-04-02 09:00")

		result := DedupeAlerts([]models.Alert{first, second})

		assert.Len(t, result, 2)
	})

	t.Run("去重是幂等的", func(t *testing.T) {
		alerts := []models.Alert{
			makeAlert("ALT-1", "퍼레이드 안내", "오후 7시", models.AlertTypeParade, models.RecipientAllUsers, models.DeliveryPush, models.AlertStatusSent, "2026-04-01 18:00"),
			makeAlert("ALT-2", "퍼레이드 안내", "오후 7시", models.AlertTypeParade, models.RecipientAllUsers, models.DeliveryPush, models.AlertStatusSent, "2026-04-01 18:00"),
			makeAlert("ALT-3", "VIP 혜택", "라운지", models.AlertTypeEvent, models.RecipientSpecific, models.DeliveryPush, models.AlertStatusSent, "2026-04-01 10:00"),
		}

		once := DedupeAlerts(alerts)
		twice := DedupeAlerts(once)

		assert.Equal(t, once, twice)
	})

	t.Run("保持原始顺序", func(t *testing.T) {
		alerts := []models.Alert{
			makeAlert("ALT-3", "c", "c", models.AlertTypeSystem, models.RecipientAllUsers, models.DeliveryPush, models.AlertStatusSent, "2026-04-01 09:00"),
			makeAlert("ALT-1", "a", "a", models.AlertTypeSystem, models.RecipientAllUsers, models.DeliveryPush, models.AlertStatusSent, "2026-04-01 09:00"),
			makeAlert("ALT-2", "a", "a", models.AlertTypeSystem, models.RecipientAllUsers, models.DeliveryPush, models.AlertStatusSent, "2026-04-01 09:00"),
		}

		result := DedupeAlerts(alerts)

		assert.Len(t, result, 2)
		assert.Equal(t, "ALT-3", result[0].ID)
		assert.Equal(t, "ALT-1", result[1].ID)
	})
}

func TestResolveRecipients(t *testing.T) {
	users := []models.User{
		{BaseModel: models.BaseModel{ID: 1}, Name: "김민준", Grade: models.GradeVIP},
		{BaseModel: models.BaseModel{ID: 2}, Name: "이서연", Grade: models.GradeStandard},
		{BaseModel: models.BaseModel{ID: 3}, Name: "박지후", Grade: models.GradeVIP},
	}

	t.Run("全体用户无需展开", func(t *testing.T) {
		ids := ResolveRecipients(models.RecipientAllUsers, "", users)
		assert.Nil(t, ids)
	})

	t.Run("按等级精确匹配并保持目录顺序", func(t *testing.T) {
		ids := ResolveRecipients(models.RecipientSpecific, models.GradeVIP, users)
		assert.Equal(t, []uint{1, 3}, ids)
	})

	t.Run("等级匹配区分大小写", func(t *testing.T) {
		ids := ResolveRecipients(models.RecipientSpecific, "VIP", users)
		assert.Empty(t, ids)
	})

	t.Run("无匹配用户返回空", func(t *testing.T) {
		ids := ResolveRecipients(models.RecipientSpecific, "gold", users)
		assert.Empty(t, ids)
	})
}

func TestFilterAlerts(t *testing.T) {
	alerts := []models.Alert{
		makeAlert("ALT-1", "퍼레이드 일정 변경", "우천으로 取消", models.AlertTypeParade, models.RecipientAllUsers, models.DeliveryPush, models.AlertStatusSent, "2026-04-01 09:00"),
		makeAlert("ALT-2", "시스템 점검", "새벽 점검 안내", models.AlertTypeSystem, models.RecipientAllUsers, models.DeliveryEmail, models.AlertStatusScheduled, "2026-04-02 03:00"),
		makeAlert("ALT-3", "VIP 이벤트", "특별 퍼레이드 관람석", models.AlertTypeEvent, models.RecipientSpecific, models.DeliveryPush, models.AlertStatusFailed, "2026-04-03 12:00"),
	}

	t.Run("搜索忽略大小写且匹配标题或内容", func(t *testing.T) {
		result := FilterAlerts(alerts, AlertFilter{Search: "vip"})
		assert.Len(t, result, 1)
		assert.Equal(t, "ALT-3", result[0].ID)

		result = FilterAlerts(alerts, AlertFilter{Search: "퍼레이드"})
		assert.Len(t, result, 2)
	})

	t.Run("all和空串均表示不限定", func(t *testing.T) {
		all := FilterAlerts(alerts, AlertFilter{Status: FilterAll})
		assert.Len(t, all, 3)

		empty := FilterAlerts(alerts, AlertFilter{})
		assert.Len(t, empty, 3)
	})

	t.Run("多条件按AND组合", func(t *testing.T) {
		result := FilterAlerts(alerts, AlertFilter{
			Recipient: models.RecipientAllUsers,
			Method:    models.DeliveryPush,
		})
		assert.Len(t, result, 1)
		assert.Equal(t, "ALT-1", result[0].ID)
	})

	t.Run("按类型标签页筛选", func(t *testing.T) {
		result := FilterAlerts(alerts, AlertFilter{Type: models.AlertTypeSystem})
		assert.Len(t, result, 1)
		assert.Equal(t, "ALT-2", result[0].ID)
	})

	t.Run("无匹配返回空切片", func(t *testing.T) {
		result := FilterAlerts(alerts, AlertFilter{Status: models.AlertStatusSent, Type: models.AlertTypeSystem})
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})
}

func TestComputeAlertStats(t *testing.T) {
	alerts := []models.Alert{
		{Status: models.AlertStatusSent},
		{Status: models.AlertStatusSent},
		{Status: models.AlertStatusScheduled},
		{Status: models.AlertStatusFailed},
	}

	stats := ComputeAlertStats(alerts)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Sent)
	assert.Equal(t, 1, stats.Scheduled)
	assert.Equal(t, 1, stats.Failed)
}

func TestPaginateAlerts(t *testing.T) {
	alerts := make([]models.Alert, 5)
	for i := range alerts {
		alerts[i].Title = string(rune('a' + i))
	}

	t.Run("完整分页", func(t *testing.T) {
		page1 := PaginateAlerts(alerts, 1, 2)
		assert.Len(t, page1, 2)
		assert.Equal(t, "a", page1[0].Title)

		page3 := PaginateAlerts(alerts, 3, 2)
		assert.Len(t, page3, 1)
		assert.Equal(t, "e", page3[0].Title)
	})

	t.Run("越界页码返回空切片", func(t *testing.T) {
		assert.Empty(t, PaginateAlerts(alerts, 4, 2))
		assert.Empty(t, PaginateAlerts(alerts, 0, 2))
		assert.Empty(t, PaginateAlerts(alerts, 1, 0))
	})
}

func TestComposeDeliveryTime(t *testing.T) {
	now := time.Date(2026, 4, 1, 14, 30, 45, 0, time.Local)

	t.Run("立即发送取当前时间", func(t *testing.T) {
		assert.Equal(t, "2026-04-01 14:30", ComposeDeliveryTime(true, "2026-05-01", "10:00", now))
	})

	t.Run("预约发送拼接日期与时刻", func(t *testing.T) {
		assert.Equal(t, "2026-05-01 10:00", ComposeDeliveryTime(false, "2026-05-01", "10:00", now))
	})
}
