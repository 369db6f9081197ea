package ds

import (
	"github.com/golang-jwt/jwt"

	"repairportal/internal/app/role"
)

// JWTClaims — полезная нагрузка токена авторизации
type JWTClaims struct {
	jwt.StandardClaims
	UserID uint      `json:"user_id"`
	Role   role.Role `json:"role"`
}
