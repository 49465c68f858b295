package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/logger"
	"fintrack/internal/service"
	"fintrack/internal/store"
	"fintrack/internal/utils"
	"fintrack/models"
)

// registerRequest is the expected body of POST /api/auth/register.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the expected body of POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// verifyRequest is the expected body of POST /api/auth/verify-email.
type verifyRequest struct {
	OTP string `json:"otp"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.MessageResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteJSON(w, models.MessageResponse{Message: "Name, email and password are required"}, http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already exists")
			utils.WriteJSON(w, models.MessageResponse{Message: "User already exists"}, http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			utils.WriteJSON(w, models.MessageResponse{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteJSON(w, models.MessageResponse{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
		return
	}

	log.Debug().Int64("id", registeredUser.UserID).Msg("user successfully registered")

	setSessionCookie(w, token)
	utils.WriteJSON(w, models.MessageResponse{
		Message: "User registered successfully",
		UserID:  registeredUser.UserID,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.MessageResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteJSON(w, models.MessageResponse{Message: "Email and password are required"}, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Err(err).Msg("invalid credentials")
			utils.WriteJSON(w, models.MessageResponse{Message: "Invalid email or password"}, http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			utils.WriteJSON(w, models.MessageResponse{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteJSON(w, models.MessageResponse{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	setSessionCookie(w, token)
	utils.WriteJSON(w, models.MessageResponse{
		Message: "Logged in successfully",
		UserID:  foundUser.UserID,
	}, http.StatusOK)
}

// logout clears the session cookie. It always succeeds, even without an
// active session.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	utils.WriteJSON(w, models.MessageResponse{Message: "Logged out"}, http.StatusOK)
}

func (h *Handler) sendVerificationCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		utils.WriteJSON(w, models.MessageResponse{Message: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	if err := h.services.AuthService.SendVerificationCode(ctx, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyVerified):
			log.Err(err).Msg("account is already verified")
			utils.WriteJSON(w, models.MessageResponse{Message: "Account is already verified"}, http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred sending verification code")
			utils.WriteJSON(w, models.MessageResponse{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "Verification code sent"}, http.StatusOK)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		utils.WriteJSON(w, models.MessageResponse{Message: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.MessageResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.VerifyEmail(ctx, userID, req.OTP); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("no verification code provided")
			utils.WriteJSON(w, models.MessageResponse{Message: "Verification code is required"}, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrAlreadyVerified):
			log.Err(err).Msg("account is already verified")
			utils.WriteJSON(w, models.MessageResponse{Message: "Account is already verified"}, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidOtp):
			log.Err(err).Msg("invalid verification code")
			utils.WriteJSON(w, models.MessageResponse{Message: "Invalid verification code"}, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrOtpExpired):
			log.Err(err).Msg("verification code expired")
			utils.WriteJSON(w, models.MessageResponse{Message: "Verification code is expired"}, http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred verifying account")
			utils.WriteJSON(w, models.MessageResponse{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "Account verified successfully"}, http.StatusOK)
}

// isAuth reports whether the request carries a valid session. Reaching this
// handler at all means the auth middleware accepted the token.
func (h *Handler) isAuth(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, struct {
		IsAuthenticated bool `json:"isAuthenticated"`
	}{IsAuthenticated: true}, http.StatusOK)
}
