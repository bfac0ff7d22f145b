package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config, db *gorm.DB) {
	jwtService = services.NewJWTService(cfg, db)
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// AuthenticateSystemAdmin 验证系统管理员权限
// 仅system_admin角色可访问管理员账号管理等接口
func AuthenticateSystemAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := validateRequest(c)
		if !ok {
			return
		}

		if role, exists := claims["role"].(string); !exists || role != "system_admin" {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Insufficient permissions: requires system admin role",
				"data":    nil,
			})
			c.Abort()
			return
		}

		storeClaims(c, claims)
		c.Next()
	}
}

// AuthenticateAdmin 验证管理员权限
// system_admin和admin角色都可访问后台业务接口
func AuthenticateAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := validateRequest(c)
		if !ok {
			return
		}

		role, exists := claims["role"].(string)
		if !exists || (role != "admin" && role != "system_admin") {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Insufficient permissions: requires admin role",
				"data":    nil,
			})
			c.Abort()
			return
		}

		storeClaims(c, claims)
		c.Next()
	}
}

// validateRequest 校验授权头并返回token claims
func validateRequest(c *gin.Context) (jwt.MapClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Authorization header is required",
			"data":    nil,
		})
		c.Abort()
		return nil, false
	}

	tokenString := extractToken(authHeader)
	token, err := jwtService.ValidateToken(tokenString)
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Invalid or expired token",
			"data":    nil,
		})
		c.Abort()
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Invalid token claims",
			"data":    nil,
		})
		c.Abort()
		return nil, false
	}

	return claims, true
}

// storeClaims 将claims存入请求上下文
func storeClaims(c *gin.Context, claims jwt.MapClaims) {
	c.Set("adminID", claims["admin_id"])
	c.Set("role", claims["role"])
	c.Set("claims", claims)
}
