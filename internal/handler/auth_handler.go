package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/prismedia/news-server/internal/dto"
	"github.com/prismedia/news-server/internal/repository"
	"github.com/prismedia/news-server/internal/service"
	"github.com/prismedia/news-server/internal/utils"
)

// AuthHandler handles the session auth endpoints: signup, current user,
// token refresh and logout
type AuthHandler struct {
	userService    service.UserService
	tokenService   service.TokenService
	accessTokenTTL time.Duration
	logger         *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService service.UserService, tokenService service.TokenService, accessTokenTTL time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService:    userService,
		tokenService:   tokenService,
		accessTokenTTL: accessTokenTTL,
		logger:         logger,
	}
}

// Info describes the supported authentication methods
func (h *AuthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, dto.AuthInfoResponse{
		Message:     "Google OAuth2 로그인만 지원합니다.",
		LoginURL:    "/oauth2/authorize/google",
		CallbackURL: "/oauth2/callback/google",
	})
}

// Me returns the current authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Error:   "Unauthorized",
			Message: "인증되지 않은 사용자입니다.",
		})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), principal.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Status:  http.StatusNotFound,
				Error:   "Not Found",
				Message: "사용자를 찾을 수 없습니다.",
			})
			return
		}
		h.logger.Error("failed to load current user", zap.Int64("user_id", principal.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError())
		return
	}

	c.JSON(http.StatusOK, dto.UserResponseFromUser(user))
}

// SignUp registers a local account
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationErrorResponse(err))
		return
	}

	response, err := h.userService.SignUp(c.Request.Context(), &req)
	if err != nil {
		var badRequest *service.BadRequestError
		if errors.As(err, &badRequest) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Status:  http.StatusBadRequest,
				Error:   "Bad Request",
				Message: badRequest.Message,
			})
			return
		}
		h.logger.Error("signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError())
		return
	}

	c.JSON(http.StatusCreated, response)
}

// RefreshToken exchanges the refresh token cookie for a fresh access token
// cookie
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken := utils.GetCookie(c, utils.RefreshTokenCookie)
	if refreshToken == "" {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Error:   "Unauthorized",
			Message: "리프레시 토큰이 없습니다.",
		})
		return
	}

	accessToken, err := h.tokenService.RefreshAccessToken(c.Request.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrRefreshTokenInvalid) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Status:  http.StatusUnauthorized,
				Error:   "Unauthorized",
				Message: "유효하지 않은 리프레시 토큰입니다.",
			})
			return
		}
		h.logger.Error("token refresh failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError())
		return
	}

	utils.SetCookie(c, utils.AccessTokenCookie, accessToken, int(h.accessTokenTTL.Seconds()))

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "액세스 토큰이 갱신되었습니다."})
}

// Logout clears both token cookies. The refresh token row stays in the
// store until it expires, matching the cookie-only logout of the frontend
// contract.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.DeleteCookie(c, utils.AccessTokenCookie)
	utils.DeleteCookie(c, utils.RefreshTokenCookie)

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "로그아웃 되었습니다."})
}

// validationErrorResponse maps a binding failure to a 400 body with
// per-field messages where the failure is a field validation error
func validationErrorResponse(err error) dto.ErrorResponse {
	response := dto.ErrorResponse{
		Status:  http.StatusBadRequest,
		Error:   "Bad Request",
		Message: "요청 값이 올바르지 않습니다.",
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		response.FieldErrors = make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			response.FieldErrors[strings.ToLower(fe.Field())] = fieldErrorMessage(fe)
		}
		return response
	}

	response.Message = err.Error()
	return response
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "필수 입력값입니다."
	case "email":
		return "올바른 이메일 형식이 아닙니다."
	case "min":
		return "최소 " + fe.Param() + "자 이상이어야 합니다."
	default:
		return "올바르지 않은 값입니다."
	}
}

func internalError() dto.ErrorResponse {
	return dto.ErrorResponse{
		Status:  http.StatusInternalServerError,
		Error:   "Internal Server Error",
		Message: "서버 오류가 발생했습니다.",
	}
}
