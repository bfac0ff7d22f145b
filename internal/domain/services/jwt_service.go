package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(adminID uint, role string) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
	Login(email, password string) (*LoginResult, error)
}

// LoginResult 表示登录结果
type LoginResult struct {
	Token     string      `json:"token"`
	AdminID   uint        `json:"adminId"`
	Role      string      `json:"role"`
	Email     string      `json:"email"`
	Username  string      `json:"username"`
	CreatedAt interface{} `json:"createdAt"`
}

// JWTService 提供JWT相关服务
type JWTService struct {
	secretKey string
	issuer    string
	DB        *gorm.DB
}

// JWTClaims 定义JWT令牌的声明结构
type JWTClaims struct {
	AdminID uint   `json:"admin_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config, db *gorm.DB) InterfaceJWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "lotteworld-admin",
		DB:        db,
	}
}

// GenerateToken 生成JWT令牌
func (s *JWTService) GenerateToken(adminID uint, role string) (string, error) {
	// 令牌有效期为24小时
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &JWTClaims{
		AdminID: adminID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken 验证JWT令牌
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims 从令牌中提取声明
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		jwtClaims := &JWTClaims{}

		if issuer, ok := claims["iss"].(string); ok {
			jwtClaims.Issuer = issuer
		}

		// 提取管理员ID
		if adminID, ok := claims["admin_id"].(float64); ok {
			jwtClaims.AdminID = uint(adminID)
		}

		// 提取角色
		if role, ok := claims["role"].(string); ok {
			jwtClaims.Role = role
		}

		return jwtClaims, nil
	}

	return nil, errors.New("invalid token claims")
}

// Login 处理管理员登录请求
func (s *JWTService) Login(email, password string) (*LoginResult, error) {
	var admin models.Admin
	if err := s.DB.Where("email = ? OR username = ?", email, email).First(&admin).Error; err != nil {
		return nil, errors.New("管理员不存在")
	}

	if admin.Status != "active" {
		return nil, errors.New("管理员账号已停用")
	}

	// 比较密码
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, errors.New("密码错误")
	}

	token, err := s.GenerateToken(admin.ID, admin.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		AdminID:   admin.ID,
		Role:      admin.Role,
		Email:     admin.Email,
		Username:  admin.Username,
		CreatedAt: admin.CreatedAt,
	}, nil
}
