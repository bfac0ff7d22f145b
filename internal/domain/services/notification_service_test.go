package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

func alertRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "content", "type", "recipient", "recipient_grade",
		"delivery_method", "delivery_time", "status", "fail_reason"})
}

func TestNotificationService_GetAllAlerts(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewNotificationService(db, &config.Config{})

	// 两条内容完全相同的全体广播，去重后只剩一条
	rows := alertRows().
		AddRow("ALT-1", "퍼레이드 안내", "오후 7시", models.AlertTypeParade, models.RecipientAllUsers, "",
			models.DeliveryPush, "2026-04-01 18:00", models.AlertStatusSent, "").
		AddRow("ALT-2", "퍼레이드 안내", "오후 7시", models.AlertTypeParade, models.RecipientAllUsers, "",
			models.DeliveryPush, "2026-04-01 18:00", models.AlertStatusScheduled, "").
		AddRow("ALT-3", "시스템 점검", "새벽 점검", models.AlertTypeSystem, models.RecipientAllUsers, "",
			models.DeliveryEmail, "2026-04-02 03:00", models.AlertStatusScheduled, "")

	mock.ExpectQuery("SELECT \\* FROM `alerts`").WillReturnRows(rows)

	alerts, stats, total, err := service.GetAllAlerts(AlertFilter{}, 1, 10)
	require.NoError(t, err)

	// 统计基于去重后的集合
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Sent)
	assert.Equal(t, 1, stats.Scheduled)

	assert.Equal(t, int64(2), total)
	require.Len(t, alerts, 2)
	assert.Equal(t, "ALT-1", alerts[0].ID)
	assert.Equal(t, "ALT-3", alerts[1].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationService_CreateAlert(t *testing.T) {
	t.Run("标题内容必填", func(t *testing.T) {
		db, _ := newMockDB(t)
		service := NewNotificationService(db, &config.Config{})

		_, err := service.CreateAlert(&AlertInput{Content: "내용"})
		assert.EqualError(t, err, "通知标题和内容不能为空")
	})

	t.Run("预约时间早于当前拒绝", func(t *testing.T) {
		db, _ := newMockDB(t)
		service := NewNotificationService(db, &config.Config{})

		_, err := service.CreateAlert(&AlertInput{
			Title:         "지난 공지",
			Content:       "내용",
			DeliveryDate:  "2020-01-01",
			DeliveryClock: "10:00",
		})
		assert.EqualError(t, err, "预约发送时间不能早于当前时间")
	})

	t.Run("立即发送直接进入sent状态", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewNotificationService(db, &config.Config{})

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `alerts`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		alert, err := service.CreateAlert(&AlertInput{
			Title:           "퍼레이드 안내",
			Content:         "오후 7시 퍼레이드",
			Type:            models.AlertTypeParade,
			Recipient:       models.RecipientAllUsers,
			DeliveryMethod:  models.DeliveryPush,
			SendImmediately: true,
		})
		require.NoError(t, err)

		assert.Equal(t, models.AlertStatusSent, alert.Status)
		assert.Empty(t, alert.ScheduledAt)
		assert.Regexp(t, `^ALT-\d{14}-[0-9a-f]{8}$`, alert.ID)
		// 立即发送的发送时间为服务端当前时间
		_, parseErr := time.ParseInLocation(DeliveryTimeLayout, alert.DeliveryTime, time.Local)
		assert.NoError(t, parseErr)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("指定等级时解析目标用户", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewNotificationService(db, &config.Config{})

		userRows := sqlmock.NewRows([]string{"id", "name", "grade"}).
			AddRow(1, "김민준", "vip").
			AddRow(2, "이서연", "일반").
			AddRow(3, "박지후", "vip")
		mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(userRows)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `alerts`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		alert, err := service.CreateAlert(&AlertInput{
			Title:           "VIP 혜택 안내",
			Content:         "라운지 이용",
			Type:            models.AlertTypeEvent,
			Recipient:       models.RecipientSpecific,
			RecipientGrade:  "vip",
			DeliveryMethod:  models.DeliveryPush,
			SendImmediately: true,
		})
		require.NoError(t, err)
		assert.Equal(t, models.UintList{1, 3}, alert.UserIDs)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("用户目录加载失败显式报错", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewNotificationService(db, &config.Config{})

		mock.ExpectQuery("SELECT \\* FROM `users`").
			WillReturnError(fmt.Errorf("connection refused"))

		_, err := service.CreateAlert(&AlertInput{
			Title:           "VIP 혜택 안내",
			Content:         "라운지 이용",
			Recipient:       models.RecipientSpecific,
			RecipientGrade:  "vip",
			SendImmediately: true,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "用户目录加载失败")
	})
}

func TestNotificationService_UpdateAlert(t *testing.T) {
	t.Run("已发送的通知拒绝编辑", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewNotificationService(db, &config.Config{})

		rows := alertRows().
			AddRow("ALT-1", "퍼레이드", "내용", models.AlertTypeParade, models.RecipientAllUsers, "",
				models.DeliveryPush, "2026-04-01 18:00", models.AlertStatusSent, "")
		mock.ExpectQuery("SELECT \\* FROM `alerts` WHERE id = \\?").
			WithArgs("ALT-1", 1).
			WillReturnRows(rows)

		_, err := service.UpdateAlert("ALT-1", &AlertInput{Title: "수정", Content: "수정"})
		assert.EqualError(t, err, "已发送的通知不能修改")
	})

	t.Run("通知不存在", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewNotificationService(db, &config.Config{})

		mock.ExpectQuery("SELECT \\* FROM `alerts` WHERE id = \\?").
			WithArgs("ALT-404", 1).
			WillReturnRows(alertRows())

		_, err := service.UpdateAlert("ALT-404", &AlertInput{Title: "수정", Content: "수정"})
		assert.EqualError(t, err, "通知不存在")
	})
}

func TestNotificationService_ResendAlert(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewNotificationService(db, &config.Config{})

	// 已发送的通知也允许重发
	sent := alertRows().
		AddRow("ALT-1", "퍼레이드", "내용", models.AlertTypeParade, models.RecipientAllUsers, "",
			models.DeliveryPush, "2026-04-01 18:00", models.AlertStatusSent, "")
	mock.ExpectQuery("SELECT \\* FROM `alerts` WHERE id = \\?").
		WithArgs("ALT-1", 1).
		WillReturnRows(sent)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `alerts`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rescheduled := alertRows().
		AddRow("ALT-1", "퍼레이드", "내용", models.AlertTypeParade, models.RecipientAllUsers, "",
			models.DeliveryPush, "2026-04-01 18:00", models.AlertStatusScheduled, "")
	mock.ExpectQuery("SELECT \\* FROM `alerts` WHERE id = \\?").
		WithArgs("ALT-1", 1).
		WillReturnRows(rescheduled)

	alert, err := service.ResendAlert("ALT-1")
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusScheduled, alert.Status)
	assert.Empty(t, alert.FailReason)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationService_BulkResend(t *testing.T) {
	t.Run("空ID列表", func(t *testing.T) {
		db, _ := newMockDB(t)
		service := NewNotificationService(db, &config.Config{})

		assert.EqualError(t, service.BulkResend(nil), "未选择任何通知")
	})

	t.Run("全部存在时整体成功", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewNotificationService(db, &config.Config{})

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `alerts`").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		assert.NoError(t, service.BulkResend([]string{"ALT-1", "ALT-2"}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("部分不存在时整体回滚", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewNotificationService(db, &config.Config{})

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `alerts`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		err := service.BulkResend([]string{"ALT-1", "ALT-404"})
		assert.EqualError(t, err, "部分通知不存在")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNotificationService_BulkDelete(t *testing.T) {
	t.Run("部分不存在时不做任何局部删除", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewNotificationService(db, &config.Config{})

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `alerts`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		err := service.BulkDelete([]string{"ALT-1", "ALT-404"})
		assert.EqualError(t, err, "部分通知不存在")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("全部存在时整体删除", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewNotificationService(db, &config.Config{})

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `alerts`").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		assert.NoError(t, service.BulkDelete([]string{"ALT-1", "ALT-2"}))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNotificationService_CancelAlert(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewNotificationService(db, &config.Config{})

	rows := alertRows().
		AddRow("ALT-1", "퍼레이드", "내용", models.AlertTypeParade, models.RecipientAllUsers, "",
			models.DeliveryPush, "2026-04-01 18:00", models.AlertStatusScheduled, "")
	mock.ExpectQuery("SELECT \\* FROM `alerts` WHERE id = \\?").
		WithArgs("ALT-1", 1).
		WillReturnRows(rows)

	// 取消是约定中的空操作，不应产生任何UPDATE
	assert.NoError(t, service.CancelAlert("ALT-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
