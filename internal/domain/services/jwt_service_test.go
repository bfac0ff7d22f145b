package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

func newJWTService(t *testing.T) (InterfaceJWTService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	cfg := &config.Config{JWTSecretKey: "test-secret"}
	return NewJWTService(cfg, db), mock
}

func TestJWTService_GenerateAndExtract(t *testing.T) {
	service, _ := newJWTService(t)

	token, err := service.GenerateToken(7, "system_admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ExtractClaims(token)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.AdminID)
	assert.Equal(t, "system_admin", claims.Role)
	assert.Equal(t, "lotteworld-admin", claims.Issuer)
}

func TestJWTService_ValidateToken(t *testing.T) {
	service, _ := newJWTService(t)

	t.Run("有效令牌", func(t *testing.T) {
		token, err := service.GenerateToken(1, "admin")
		require.NoError(t, err)

		parsed, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
	})

	t.Run("签名不匹配", func(t *testing.T) {
		db, _ := newMockDB(t)
		other := NewJWTService(&config.Config{JWTSecretKey: "other-secret"}, db)

		token, err := other.GenerateToken(1, "admin")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("非法令牌串", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-token")
		assert.Error(t, err)
	})
}

func TestJWTService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	adminRows := func(status string) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "username", "password", "email", "role", "status"}).
			AddRow(1, "admin", string(hashed), "admin@lotteworld.local", "system_admin", status)
	}

	t.Run("邮箱登录成功", func(t *testing.T) {
		service, mock := newJWTService(t)

		mock.ExpectQuery("SELECT \\* FROM `admins`").
			WithArgs("admin@lotteworld.local", "admin@lotteworld.local", 1).
			WillReturnRows(adminRows("active"))

		result, err := service.Login("admin@lotteworld.local", "secret123")
		require.NoError(t, err)

		assert.NotEmpty(t, result.Token)
		assert.Equal(t, uint(1), result.AdminID)
		assert.Equal(t, "system_admin", result.Role)
		assert.Equal(t, "admin", result.Username)
	})

	t.Run("管理员不存在", func(t *testing.T) {
		service, mock := newJWTService(t)

		mock.ExpectQuery("SELECT \\* FROM `admins`").
			WithArgs("ghost", "ghost", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := service.Login("ghost", "secret123")
		assert.EqualError(t, err, "管理员不存在")
	})

	t.Run("账号已停用", func(t *testing.T) {
		service, mock := newJWTService(t)

		mock.ExpectQuery("SELECT \\* FROM `admins`").
			WithArgs("admin", "admin", 1).
			WillReturnRows(adminRows("inactive"))

		_, err := service.Login("admin", "secret123")
		assert.EqualError(t, err, "管理员账号已停用")
	})

	t.Run("密码错误", func(t *testing.T) {
		service, mock := newJWTService(t)

		mock.ExpectQuery("SELECT \\* FROM `admins`").
			WithArgs("admin", "admin", 1).
			WillReturnRows(adminRows("active"))

		_, err := service.Login("admin", "wrong-password")
		assert.EqualError(t, err, "密码错误")
	})
}
