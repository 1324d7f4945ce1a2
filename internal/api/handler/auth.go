package handler

import (
	"net/http"
	"strings"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/api/middleware"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/auth"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup registers a doctor or patient account and signs them in.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	switch {
	case req.Email == "" || req.Password == "" || req.FullName == "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "email, password, and full_name are required"})
		return
	case len(req.Password) < 8:
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
		return
	case !models.ValidRole(req.Role):
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be doctor or patient"})
		return
	}

	existing, err := h.Store.GetUserByEmail(req.Email)
	if err != nil {
		h.fail(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		FullName:     req.FullName,
		ChatAlerts:   true,
	}
	if err := h.Store.CreateUser(user); err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.Log.Infow("account created", "user_id", user.ID, "role", user.Role)
	c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

// Signin exchanges email/password for a session token. Failures are
// reported uniformly so the endpoint does not confirm which emails
// exist.
func (h *Handler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.Store.GetUserByEmail(req.Email)
	if err != nil {
		h.fail(c, err)
		return
	}
	if user == nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Me returns the authenticated account's profile.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Store.GetUserByID(c.GetString(middleware.CtxUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
