package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/apiforge/apiforge/internal/server/services"
	"github.com/apiforge/apiforge/pkg/models"
)

type PlatformUserHandler struct {
	accountService *services.AccountService
	otpService     *services.OtpService
}

func NewPlatformUserHandler(accountService *services.AccountService, otpService *services.OtpService) *PlatformUserHandler {
	return &PlatformUserHandler{
		accountService: accountService,
		otpService:     otpService,
	}
}

func (h *PlatformUserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.PlatformSignupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusInternalServerError, "invalid request body")
		return
	}

	token, err := h.accountService.PlatformSignup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, models.PlatformSignupResponse{
		Message:  "Signup successful",
		APIToken: token,
	})
}

func (h *PlatformUserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	token, account, err := h.accountService.PlatformLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrInvalidPassword):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Server error. Please try again later.")
		}
		return
	}

	// The full account document goes out as-is, hash included.
	respondJSON(w, http.StatusOK, models.PlatformLoginResponse{
		Message:  "Login successful! New token sent to your email.",
		Token:    token,
		UserData: account,
	})
}

func (h *PlatformUserHandler) SendOtp(w http.ResponseWriter, r *http.Request) {
	var req models.SendOtpRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" {
		respondError(w, http.StatusBadRequest, "Email is required.")
		return
	}

	if err := h.otpService.Send(r.Context(), req.Email); err != nil {
		respondError(w, http.StatusInternalServerError, "Server error. Please try again later.")
		return
	}

	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "OTP sent to email. Check your inbox!"})
}

func (h *PlatformUserHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOtpRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Otp == nil {
		respondError(w, http.StatusBadRequest, "Email and OTP are required.")
		return
	}

	code, ok := otpAsInt(req.Otp)
	if !ok {
		respondError(w, http.StatusBadRequest, "Email and OTP are required.")
		return
	}

	if err := h.otpService.Verify(r.Context(), req.Email, code); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, models.MessageResponse{
		Message: "OTP verified successfully. You can proceed with signup.",
	})
}

// otpAsInt coerces the submitted code, which clients send either as a
// JSON number or a digit string, to an int for the numeric comparison.
func otpAsInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
