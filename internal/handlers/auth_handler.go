package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/middleware"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/repositories"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/utils"
)

// AuthHandler manages authentication endpoints.
type AuthHandler struct {
	Users     *repositories.UserRepository
	JWTSecret string
}

func NewAuthHandler(users *repositories.UserRepository, jwtSecret string) *AuthHandler {
	return &AuthHandler{Users: users, JWTSecret: jwtSecret}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	if r.Username == "" || r.Email == "" || r.Password == "" {
		return &models.ErrorResponse{Code: "missing_fields", Message: "username, email and password are required"}
	}
	if len(r.Password) < 8 {
		return &models.ErrorResponse{Code: "weak_password", Message: "password must be at least 8 characters"}
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return &models.ErrorResponse{Code: "missing_fields", Message: "username and password are required"}
	}
	return nil
}

type authResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*RegisterRequest](r)

	if _, err := h.Users.GetUserByUsername(req.Username); err == nil {
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{Code: "username_taken", Message: "Username is already taken"})
		return
	}
	if _, err := h.Users.GetUserByEmail(req.Email); err == nil {
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{Code: "email_taken", Message: "Email is already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Failed to hash password"})
		return
	}

	user := &models.User{Username: req.Username, Email: req.Email, PasswordHash: string(hash)}
	if err := h.Users.CreateUser(user); err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Failed to create user"})
		return
	}

	utils.JSON(w, http.StatusCreated, user.Profile())
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*LoginRequest](r)

	user, err := h.Users.GetUserByUsername(req.Username)
	if err != nil {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{Code: "invalid_credentials", Message: "Invalid username or password"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{Code: "invalid_credentials", Message: "Invalid username or password"})
		return
	}

	token, err := utils.CreateToken(user.ID, user.Username, h.JWTSecret)
	if err != nil {
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: "internal_error", Message: "Failed to sign token"})
		return
	}
	utils.JSON(w, http.StatusOK, authResponse{Token: token})
}

// MeHandler returns the authenticated user's profile.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{Code: "unauthorized", Message: "Missing or invalid credentials"})
		return
	}

	user, err := h.Users.GetUserByID(userID)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{Code: "user_not_found", Message: "User not found"})
		return
	}

	utils.JSON(w, http.StatusOK, user.Profile())
}
