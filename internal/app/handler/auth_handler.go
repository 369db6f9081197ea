package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"repairportal/internal/app/ds"
	"repairportal/internal/app/dto"
	"repairportal/internal/app/role"
)

// LoginUser аутентификация пользователя
// @Summary Вход в систему
// @Description Аутентификация пользователя с возвратом JWT токена
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Данные для входа"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *APIHandler) LoginUser(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.UserService.Authenticate(request.Username, request.Password)
	if err != nil {
		h.serviceError(ctx, err)
		return
	}

	// Создание JWT токена
	now := time.Now()
	token := jwt.NewWithClaims(h.Config.JWT.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(h.Config.JWT.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "repair-portal",
		},
		UserID: user.ID,
		Role:   role.Role(user.Role),
	})

	// Подписываем токен
	accessToken, err := token.SignedString([]byte(h.Config.JWT.Token))
	if err != nil {
		h.errorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"message":    "пользователь успешно авторизован",
		"user":       toUserResponse(user),
		"token":      accessToken,
		"expires_in": int(h.Config.JWT.ExpiresIn.Seconds()),
		"token_type": "Bearer",
	})
}

// LogoutUser выход пользователя из системы
// @Summary Выход из системы
// @Description Завершение сеанса пользователя с добавлением токена в blacklist
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *APIHandler) LogoutUser(ctx *gin.Context) {
	// Получение токена из заголовка
	tokenString := ctx.GetHeader("Authorization")
	if tokenString == "" {
		h.errorResponse(ctx, http.StatusUnauthorized, "authorization header missing")
		return
	}

	// Удаление префикса "Bearer "
	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		tokenString = tokenString[7:]
	}

	// Парсинг токена для получения TTL
	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Config.JWT.Token), nil
	})
	if err != nil {
		h.errorResponse(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok {
		h.errorResponse(ctx, http.StatusUnauthorized, "invalid token claims")
		return
	}

	// Вычисление TTL до истечения токена
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl <= 0 {
		// Токен уже истек
		h.successResponse(ctx, http.StatusOK, "пользователь успешно вышел из системы", nil)
		return
	}

	// Добавление токена в blacklist
	err = h.RedisClient.WriteJWTToBlacklist(ctx.Request.Context(), tokenString, ttl)
	if err != nil {
		h.errorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	h.successResponse(ctx, http.StatusOK, "пользователь успешно вышел из системы", nil)
}

// GetUserProfile получение профиля пользователя
// @Summary Получение профиля пользователя
// @Description Возвращает информацию о текущем пользователе
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/auth/profile [get]
func (h *APIHandler) GetUserProfile(ctx *gin.Context) {
	userID, _, err := h.getUserFromContext(ctx)
	if err != nil {
		h.errorResponse(ctx, http.StatusUnauthorized, errors.New("пользователь не авторизован").Error())
		return
	}

	user, err := h.UserService.FindByID(userID)
	if err != nil {
		h.serviceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toUserResponse(user))
}

// ChangeOwnPassword смена собственного пароля
// @Summary Смена пароля
// @Description Меняет пароль текущего пользователя
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Новый пароль"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/password [put]
func (h *APIHandler) ChangeOwnPassword(ctx *gin.Context) {
	userID, _, err := h.getUserFromContext(ctx)
	if err != nil {
		h.errorResponse(ctx, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	var request dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.UserService.ChangePassword(userID, request.NewPassword); err != nil {
		h.serviceError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "пароль изменён", nil)
}
