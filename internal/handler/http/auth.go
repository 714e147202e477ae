package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sharpcut/booking-backend-go/internal/domain/auth"
	"github.com/sharpcut/booking-backend-go/internal/handler/http/response"
	"github.com/sharpcut/booking-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &authHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

func (h *authHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	result, err := h.authService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.setRefreshCookie(w, result.UserID)
	response.Created(w, "Account created successfully", result)
}

func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.setRefreshCookie(w, result.UserID)
	response.Success(w, result)
}

// Refresh exchanges the refresh token cookie for a fresh access token and a
// rotated cookie.
func (h *authHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	token, err := jwtauth.VerifyToken(h.jwtService.JWTAuth(), cookie.Value)
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	claims := token.PrivateClaims()
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.authService.Refresh(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.setRefreshCookie(w, result.UserID)
	response.Success(w, result)
}

func (h *authHandlerImpl) setRefreshCookie(w http.ResponseWriter, userID string) {
	refreshToken, expiresAt, err := h.jwtService.GenerateRefreshToken(userID)
	if err != nil {
		// Access token still works; the client just cannot refresh silently.
		return
	}
	http.SetCookie(w, h.jwtService.RefreshTokenCookie(refreshToken, expiresAt))
}
