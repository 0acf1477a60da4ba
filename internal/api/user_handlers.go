package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/ec-shop-api/internal/api/middleware"
	"github.com/example/ec-shop-api/internal/auth"
	"github.com/example/ec-shop-api/internal/models"
	"github.com/example/ec-shop-api/internal/service"
	"github.com/example/ec-shop-api/internal/store"
)

// UserHandlers serves registration, login and the profile surface.
type UserHandlers struct {
	users      store.UserStore
	orders     *service.OrderService
	tokens     *auth.TokenService
	cookieName string
}

func NewUserHandlers(users store.UserStore, orders *service.OrderService, tokens *auth.TokenService, cookieName string) *UserHandlers {
	return &UserHandlers{
		users:      users,
		orders:     orders,
		tokens:     tokens,
		cookieName: cookieName,
	}
}

// Register handles POST /api/users/register.
func (h *UserHandlers) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			respondError(c, http.StatusBadRequest, "Password must be at least 8 characters")
			return
		}
		respondStoreError(c, err, "User")
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if store.IsDuplicateKey(err) {
			respondError(c, http.StatusConflict, "User already exists")
			return
		}
		respondStoreError(c, err, "User")
		return
	}

	respond(c, http.StatusCreated, gin.H{"message": "Registration successful"})
}

// Login handles POST /api/users/login. On success the token is both
// returned and set as an httponly cookie.
func (h *UserHandlers) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide email and password")
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "Invalid E-mail or password")
			return
		}
		respondStoreError(c, err, "User")
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		respondError(c, http.StatusUnauthorized, "Invalid E-mail or password")
		return
	}

	token, expiresAt, err := h.tokens.Generate(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		respondStoreError(c, err, "Login")
		return
	}
	h.setSessionCookie(c, token, expiresAt)

	respond(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Logout handles GET /api/users/logout by expiring the cookie.
func (h *UserHandlers) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	respond(c, http.StatusOK, gin.H{"message": "Logout successful"})
}

// GetProfile handles GET /api/users/profile.
func (h *UserHandlers) GetProfile(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondStoreError(c, err, "User")
		return
	}
	respond(c, http.StatusOK, gin.H{"user": user})
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UserHandlers) UpdateProfile(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), req.Name, req.Email)
	if err != nil {
		respondStoreError(c, err, "User")
		return
	}
	respond(c, http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// UpdatePassword handles PUT /api/users/password.
func (h *UserHandlers) UpdatePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide old and new passwords.")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondStoreError(c, err, "User")
		return
	}
	if !auth.CheckPassword(req.OldPassword, user.PasswordHash) {
		respondError(c, http.StatusUnauthorized, "Incorrect old password")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			respondError(c, http.StatusBadRequest, "Password must be at least 8 characters")
			return
		}
		respondStoreError(c, err, "User")
		return
	}
	if err := h.users.UpdatePassword(c.Request.Context(), user.ID.Hex(), hash); err != nil {
		respondStoreError(c, err, "User")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// GetCart handles GET /api/users/cart.
func (h *UserHandlers) GetCart(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondStoreError(c, err, "User")
		return
	}
	respond(c, http.StatusOK, gin.H{"cart": user.Cart})
}

// UpdateCart handles PUT /api/users/cart, replacing the embedded cart.
func (h *UserHandlers) UpdateCart(c *gin.Context) {
	var req struct {
		Cart []models.CartItem `json:"cart"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	for _, item := range req.Cart {
		if item.Quantity <= 0 {
			respondError(c, http.StatusBadRequest, "Cart quantities must be positive")
			return
		}
	}

	if err := h.users.UpdateCart(c.Request.Context(), middleware.GetUserID(c), req.Cart); err != nil {
		respondStoreError(c, err, "User")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "Cart updated successfully"})
}

// GetAddresses handles GET /api/users/addresses with the distinct
// shipping addresses from the user's order history.
func (h *UserHandlers) GetAddresses(c *gin.Context) {
	addresses, err := h.orders.Addresses(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondStoreError(c, err, "Addresses")
		return
	}
	respond(c, http.StatusOK, gin.H{"addresses": addresses})
}

func (h *UserHandlers) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   c.Request.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *UserHandlers) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
}
