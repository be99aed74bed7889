package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"trading-analysis-bot/internal/auth"
	"trading-analysis-bot/internal/database"
)

type registerRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
	TelegramChatID string `json:"telegram_chat_id"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// handleRegister creates a new user account
func (s *Server) handleRegister(c *gin.Context) {
	if s.users == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "user storage is not enabled"})
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &database.User{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hash,
		TelegramChatID: req.TelegramChatID,
	}

	if err := s.users.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, database.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		s.logger.Error().Err(err).Msg("user registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "registered", "user_id": user.ID})
}

// handleLogin verifies credentials and issues an access token
func (s *Server) handleLogin(c *gin.Context) {
	if s.users == nil || s.jwt == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "authentication is not enabled"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.users.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if !s.passwords.VerifyPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := s.jwt.GenerateToken(auth.UserClaims{UserID: user.ID, Email: user.Email})
	if err != nil {
		s.logger.Error().Err(err).Msg("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// handleMe returns the authenticated user's profile
func (s *Server) handleMe(c *gin.Context) {
	claims, ok := auth.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	user, err := s.users.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, user)
}
