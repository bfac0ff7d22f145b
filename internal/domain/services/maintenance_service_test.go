package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

// newMockDB 创建基于sqlmock的gorm连接，用于服务层单元测试
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestExpandDateRange(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	}

	t.Run("单日区间", func(t *testing.T) {
		dates := ExpandDateRange(day(2026, 4, 1), day(2026, 4, 1))
		assert.Equal(t, []string{"2026-04-01"}, dates)
	})

	t.Run("多日区间含两端", func(t *testing.T) {
		dates := ExpandDateRange(day(2026, 4, 29), day(2026, 5, 2))
		assert.Equal(t, []string{"2026-04-29", "2026-04-30", "2026-05-01", "2026-05-02"}, dates)
	})

	t.Run("结束早于开始返回空", func(t *testing.T) {
		dates := ExpandDateRange(day(2026, 4, 2), day(2026, 4, 1))
		assert.Empty(t, dates)
	})

	t.Run("时刻部分被忽略", func(t *testing.T) {
		start := time.Date(2026, 4, 1, 23, 59, 0, 0, time.Local)
		end := time.Date(2026, 4, 2, 0, 1, 0, 0, time.Local)
		dates := ExpandDateRange(start, end)
		assert.Equal(t, []string{"2026-04-01", "2026-04-02"}, dates)
	})
}

func TestMaintenanceService_GetUpcoming(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewMaintenanceService(db, &config.Config{})

	now := time.Date(2026, 4, 15, 10, 0, 0, 0, time.Local)

	rows := sqlmock.NewRows([]string{"id", "label", "reason", "date", "image_url"}).
		AddRow(1, "아트란티스", "정기 점검", "2026-04-15", "/uploads/a.jpg").
		AddRow(2, "자이로드롭", "안전 점검", "2026-04-15", "").
		AddRow(3, "아트란티스", "정기 점검", "2026-04-16", "/uploads/a.jpg")

	mock.ExpectQuery("SELECT \\* FROM `maintenances` WHERE date >= \\?").
		WithArgs("2026-04-15").
		WillReturnRows(rows)

	groups, err := service.GetUpcoming(now)
	require.NoError(t, err)

	// 同一天的记录归入同一组，日期升序
	require.Len(t, groups, 2)
	assert.Equal(t, "2026-04-15", groups[0].Date)
	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, "2026-04-16", groups[1].Date)
	assert.Len(t, groups[1].Items, 1)
	assert.Equal(t, "아트란티스", groups[1].Items[0].Label)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceService_RegisterRange(t *testing.T) {
	t.Run("缺少设施名称", func(t *testing.T) {
		db, _ := newMockDB(t)
		service := NewMaintenanceService(db, &config.Config{})

		_, err := service.RegisterRange("", "정기 점검", "", time.Now(), time.Now())
		assert.EqualError(t, err, "设施名称不能为空")
	})

	t.Run("缺少运休事由", func(t *testing.T) {
		db, _ := newMockDB(t)
		service := NewMaintenanceService(db, &config.Config{})

		_, err := service.RegisterRange("아트란티스", "", "", time.Now(), time.Now())
		assert.EqualError(t, err, "运休事由不能为空")
	})

	t.Run("区间倒置", func(t *testing.T) {
		db, _ := newMockDB(t)
		service := NewMaintenanceService(db, &config.Config{})

		start := time.Date(2026, 4, 2, 0, 0, 0, 0, time.Local)
		end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local)
		_, err := service.RegisterRange("아트란티스", "정기 점검", "", start, end)
		assert.EqualError(t, err, "结束日期不能早于开始日期")
	})

	t.Run("区间按天展开批量入库", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewMaintenanceService(db, &config.Config{})

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `maintenances`").
			WillReturnResult(sqlmock.NewResult(1, 3))
		mock.ExpectCommit()

		start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local)
		end := time.Date(2026, 4, 3, 0, 0, 0, 0, time.Local)
		records, err := service.RegisterRange("아트란티스", "정기 점검", "/uploads/a.jpg", start, end)
		require.NoError(t, err)

		require.Len(t, records, 3)
		assert.Equal(t, "2026-04-01", records[0].Date)
		assert.Equal(t, "2026-04-03", records[2].Date)
		// 区间内每条记录共用同一张图片
		for _, rec := range records {
			assert.Equal(t, "/uploads/a.jpg", rec.ImageURL)
		}

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMaintenanceService_Delete(t *testing.T) {
	t.Run("正常删除", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewMaintenanceService(db, &config.Config{})

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `maintenances`").
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, service.Delete(1))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("记录不存在", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewMaintenanceService(db, &config.Config{})

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `maintenances`").
			WithArgs(999).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.EqualError(t, service.Delete(999), "运休记录不存在")
	})
}
