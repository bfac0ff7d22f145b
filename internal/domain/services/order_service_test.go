package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "booking_no", "buyer_name", "quantity", "price", "status", "refund_reason"})
}

func expectOrderByID(mock sqlmock.Sqlmock, id int, status string) {
	mock.ExpectQuery("SELECT \\* FROM `orders`").
		WithArgs(id, 1).
		WillReturnRows(orderRows().AddRow(id, "LW-20260401-123456", "김민준", 2, 118000, status, ""))
}

func TestOrderService_CreateOrder(t *testing.T) {
	t.Run("购票人必填", func(t *testing.T) {
		db, _ := newMockDB(t)
		service := NewOrderService(db, &config.Config{})

		err := service.CreateOrder(&models.Order{Quantity: 1})
		assert.EqualError(t, err, "购票人姓名不能为空")
	})

	t.Run("数量必须为正", func(t *testing.T) {
		db, _ := newMockDB(t)
		service := NewOrderService(db, &config.Config{})

		err := service.CreateOrder(&models.Order{BuyerName: "김민준"})
		assert.EqualError(t, err, "购票数量必须大于0")
	})

	t.Run("服务端生成预订编号和默认状态", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewOrderService(db, &config.Config{})

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `orders`").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		order := &models.Order{BuyerName: "김민준", Quantity: 2, Price: 118000, VisitDate: "2026-05-01"}
		require.NoError(t, service.CreateOrder(order))

		assert.Regexp(t, `^LW-\d{8}-\d{6}$`, order.BookingNo)
		assert.Equal(t, models.OrderStatusConfirmed, order.Status)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	t.Run("确认到入园", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewOrderService(db, &config.Config{})

		expectOrderByID(mock, 1, models.OrderStatusConfirmed)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `orders`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		expectOrderByID(mock, 1, models.OrderStatusVisited)

		order, err := service.UpdateOrderStatus(1, models.OrderStatusVisited, "")
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusVisited, order.Status)
	})

	t.Run("确认不能直接退款", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewOrderService(db, &config.Config{})

		expectOrderByID(mock, 1, models.OrderStatusConfirmed)

		_, err := service.UpdateOrderStatus(1, models.OrderStatusRefunded, "단순 변심")
		assert.EqualError(t, err, "预订状态不能从 예약확정 变更为 환불완료")
	})

	t.Run("入园是终态", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewOrderService(db, &config.Config{})

		expectOrderByID(mock, 1, models.OrderStatusVisited)

		_, err := service.UpdateOrderStatus(1, models.OrderStatusCancelled, "")
		require.Error(t, err)
	})

	t.Run("退款必须填写原因", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewOrderService(db, &config.Config{})

		expectOrderByID(mock, 1, models.OrderStatusCancelled)

		_, err := service.UpdateOrderStatus(1, models.OrderStatusRefunded, "  ")
		assert.EqualError(t, err, "退款必须填写原因")
	})

	t.Run("取消到退款保存原因", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewOrderService(db, &config.Config{})

		expectOrderByID(mock, 1, models.OrderStatusCancelled)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `orders`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		mock.ExpectQuery("SELECT \\* FROM `orders`").
			WithArgs(1, 1).
			WillReturnRows(orderRows().AddRow(1, "LW-20260401-123456", "김민준", 2, 118000,
				models.OrderStatusRefunded, "단순 변심"))

		order, err := service.UpdateOrderStatus(1, models.OrderStatusRefunded, "단순 변심")
		require.NoError(t, err)
		assert.Equal(t, "단순 변심", order.RefundReason)
	})
}

func TestOrderService_GetStats(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewOrderService(db, &config.Config{})

	countRows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow(models.OrderStatusConfirmed, 3).
		AddRow(models.OrderStatusVisited, 2).
		AddRow(models.OrderStatusRefunded, 1)
	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) as count FROM `orders`").
		WillReturnRows(countRows)

	// 营收只计入确认和已入园的订单
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(price\\), 0\\) FROM `orders`").
		WithArgs(models.OrderStatusConfirmed, models.OrderStatusVisited).
		WillReturnRows(sqlmock.NewRows([]string{"COALESCE(SUM(price), 0)"}).AddRow(295000))

	stats, err := service.GetStats()
	require.NoError(t, err)

	assert.Equal(t, int64(6), stats.Total)
	assert.Equal(t, int64(3), stats.Confirmed)
	assert.Equal(t, int64(2), stats.Visited)
	assert.Equal(t, int64(0), stats.Cancelled)
	assert.Equal(t, int64(1), stats.Refunded)
	assert.Equal(t, int64(295000), stats.Revenue)

	require.NoError(t, mock.ExpectationsWereMet())
}
