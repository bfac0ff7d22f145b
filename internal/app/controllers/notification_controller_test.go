package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services/container"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/code"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestContainer 基于sqlmock构建服务容器，不连接Redis和MQTT
func newTestContainer(t *testing.T) (*container.ServiceContainer, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return container.NewServiceContainer(db, &config.Config{}, nil), mock
}

func performRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestNotificationController_GetNotifications(t *testing.T) {
	c, mock := newTestContainer(t)

	r := gin.New()
	r.GET("/api/notifications", HandleNotificationFunc(c, "getNotifications"))

	rows := sqlmock.NewRows([]string{"id", "title", "content", "type", "recipient", "delivery_method", "delivery_time", "status"}).
		AddRow("ALT-1", "퍼레이드 안내", "오후 7시", models.AlertTypeParade, models.RecipientAllUsers,
			models.DeliveryPush, "2026-04-01 18:00", models.AlertStatusSent).
		AddRow("ALT-2", "시스템 점검", "새벽 점검", models.AlertTypeSystem, models.RecipientAllUsers,
			models.DeliveryEmail, "2026-04-02 03:00", models.AlertStatusScheduled)
	mock.ExpectQuery("SELECT \\* FROM `alerts`").WillReturnRows(rows)

	w := performRequest(r, http.MethodGet, "/api/notifications?page=1&page_size=10", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, float64(code.ErrSuccess), body["code"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(1), data["total_pages"])
	assert.Len(t, data["data"], 2)

	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["sent"])
	assert.Equal(t, float64(1), stats["scheduled"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationController_CreateNotification_Validation(t *testing.T) {
	c, _ := newTestContainer(t)

	r := gin.New()
	r.POST("/api/notifications", HandleNotificationFunc(c, "createNotification"))

	t.Run("缺少必填字段", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/notifications", `{"content":"내용"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("预约时间早于当前", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/notifications",
			`{"title":"지난 공지","content":"내용","deliveryDate":"2020-01-01","deliveryClock":"10:00"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeResponse(t, w)
		assert.Equal(t, float64(code.ErrAlertDeliveryPast), body["code"])
	})
}

func TestNotificationController_GetNotification_NotFound(t *testing.T) {
	c, mock := newTestContainer(t)

	r := gin.New()
	r.GET("/api/notifications/:id", HandleNotificationFunc(c, "getNotification"))

	mock.ExpectQuery("SELECT \\* FROM `alerts` WHERE id = \\?").
		WithArgs("ALT-404", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := performRequest(r, http.MethodGet, "/api/notifications/ALT-404", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeResponse(t, w)
	assert.Equal(t, float64(code.ErrRecordNotFound), body["code"])
}

func TestNotificationController_BulkDelete(t *testing.T) {
	t.Run("混合类型的ID数组", func(t *testing.T) {
		c, mock := newTestContainer(t)

		r := gin.New()
		r.POST("/api/notifications/bulk-delete", HandleNotificationFunc(c, "bulkDeleteNotifications"))

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `alerts`").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		// 历史客户端会混用字符串和数字元素
		w := performRequest(r, http.MethodPost, "/api/notifications/bulk-delete",
			`{"ids":["ALT-1",1002]}`)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("空ID列表", func(t *testing.T) {
		c, _ := newTestContainer(t)

		r := gin.New()
		r.POST("/api/notifications/bulk-delete", HandleNotificationFunc(c, "bulkDeleteNotifications"))

		w := performRequest(r, http.MethodPost, "/api/notifications/bulk-delete", `{"ids":[]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("部分不存在", func(t *testing.T) {
		c, mock := newTestContainer(t)

		r := gin.New()
		r.POST("/api/notifications/bulk-delete", HandleNotificationFunc(c, "bulkDeleteNotifications"))

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `alerts`").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		w := performRequest(r, http.MethodPost, "/api/notifications/bulk-delete",
			`{"ids":["ALT-1","ALT-404"]}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleNotificationFunc_InvalidMethod(t *testing.T) {
	c, _ := newTestContainer(t)

	r := gin.New()
	r.GET("/api/notifications", HandleNotificationFunc(c, "unknownMethod"))

	w := performRequest(r, http.MethodGet, "/api/notifications", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
