package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type emailRequest struct {
	Email string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyAccountRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *AuthHandler) RequestSignupOTP(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := h.auth.RequestSignupOTP(r.Context(), req.Email); err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Verification code sent to your email",
		"email":   req.Email,
	})
}

func (h *AuthHandler) VerifySignupOTP(w http.ResponseWriter, r *http.Request) {
	var req services.VerifySignupInput
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := h.auth.VerifySignupOTP(r.Context(), req)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := h.auth.ResendOTP(r.Context(), req.Email); err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Verification code resent to your email",
		"email":   req.Email,
	})
}

// VerifyAccount finishes verification for an account created before OTP
// signup, after Login reported needsVerification.
func (h *AuthHandler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	var req verifyAccountRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := h.auth.VerifyExistingAccount(r.Context(), req.Email, req.OTP)
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Me(r.Context(), helpers.UserIDFromRequest(r))
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, user)
}
