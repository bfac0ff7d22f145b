package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

func TestDispatcherService_DispatchDue(t *testing.T) {
	now := time.Date(2026, 4, 1, 18, 0, 0, 0, time.Local)

	t.Run("到期的邮件通知被投递并置为sent", func(t *testing.T) {
		db, mock := newMockDB(t)
		// 未配置MQTT地址，推送通道禁用，邮件通道不受影响
		service := NewDispatcherService(db, &config.Config{})

		rows := alertRows().
			AddRow("ALT-1", "시스템 점검", "새벽 점검", models.AlertTypeSystem, models.RecipientAllUsers, "",
				models.DeliveryEmail, "2026-04-01 17:30", models.AlertStatusScheduled, "")
		mock.ExpectQuery("SELECT \\* FROM `alerts` WHERE status = \\? AND delivery_time <= \\?").
			WithArgs(models.AlertStatusScheduled, "2026-04-01 18:00").
			WillReturnRows(rows)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `alerts`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		sent, err := service.DispatchDue(now)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("推送通道未配置时通知转为failed", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewDispatcherService(db, &config.Config{})

		rows := alertRows().
			AddRow("ALT-1", "퍼레이드 안내", "오후 7시", models.AlertTypeParade, models.RecipientAllUsers, "",
				models.DeliveryPush, "2026-04-01 17:30", models.AlertStatusScheduled, "")
		mock.ExpectQuery("SELECT \\* FROM `alerts` WHERE status = \\? AND delivery_time <= \\?").
			WithArgs(models.AlertStatusScheduled, "2026-04-01 18:00").
			WillReturnRows(rows)

		// 投递失败写回failed和失败原因
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `alerts`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		sent, err := service.DispatchDue(now)
		require.NoError(t, err)
		assert.Equal(t, 0, sent)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("没有到期通知时不做任何写入", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewDispatcherService(db, &config.Config{})

		mock.ExpectQuery("SELECT \\* FROM `alerts` WHERE status = \\? AND delivery_time <= \\?").
			WithArgs(models.AlertStatusScheduled, "2026-04-01 18:00").
			WillReturnRows(alertRows())

		sent, err := service.DispatchDue(now)
		require.NoError(t, err)
		assert.Equal(t, 0, sent)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDispatcherService_Dispatch_UnknownMethod(t *testing.T) {
	db, _ := newMockDB(t)
	service := NewDispatcherService(db, &config.Config{})

	err := service.Dispatch(&models.Alert{ID: "ALT-1", DeliveryMethod: "sms"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "未知的发送方式")
}
