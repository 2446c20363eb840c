package adaptor

import (
	"net/http"
	"time"

	"billing-habit/internal/dto/request"
	"billing-habit/internal/usecase"
	"billing-habit/pkg/middleware"
	"billing-habit/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	config  *utils.Config
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, config *utils.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// SendOTP handles POST /user/send-otp
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req request.SendOTPRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// a malformed number gets the short message the login form shows
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Invalid Mobile Number.", validationErrors)
		return
	}

	if err := h.service.SendOTP(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "send OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP sent successfully. Please check your phone.", nil)
}

// VerifyOTP handles POST /user/verify-otp and sets the session cookie.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.VerifyOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify OTP")
		return
	}

	http.SetCookie(w, h.sessionCookie(resp.Token, resp.ExpiresAt))

	utils.ResponseSuccess(w, "Login successful.", utils.Payload{
		"token":     resp.Token,
		"user":      resp.User,
		"isNewUser": resp.IsNewUser,
	})
}

// Logout handles POST /user/logout (protected)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.TokenFromRequest(r); ok {
		if err := h.service.Logout(r.Context(), token); err != nil {
			handleServiceError(w, h.log, err, "logout")
			return
		}
	}

	expired := h.sessionCookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	http.SetCookie(w, expired)

	utils.ResponseSuccess(w, "User logged out successfully.", nil)
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if h.config.App.IsProduction() {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}
