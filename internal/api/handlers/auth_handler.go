package handlers

import (
	"net/http"

	"github.com/careercompass/api/internal/api/middleware"
	"github.com/careercompass/api/internal/services"
	"github.com/careercompass/api/internal/utils"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc services.AuthService
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required,min=2,max=80"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req, "AuthHandler.Register", "Invalid registration payload") {
		return
	}

	out, err := h.svc.Register(c.Request.Context(), services.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusCreated, out)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req, "AuthHandler.Login", "Invalid login payload") {
		return
	}

	out, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	writeOK(c, http.StatusOK, out)
}

type meUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *AuthHandler) Me(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	if !id.Authenticated() {
		writeError(c, utils.E(utils.CodeUnauthorized, "AuthHandler.Me", "Unauthorized", nil))
		return
	}
	writeOK(c, http.StatusOK, gin.H{"user": meUser{ID: id.Subject, Email: id.Email, Role: id.Role}})
}
