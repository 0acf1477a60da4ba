package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/ec-shop-api/internal/service"
	"github.com/example/ec-shop-api/internal/store"
)

// AdminHandlers serves user administration and dashboard stats.
type AdminHandlers struct {
	users store.UserStore
	stats *service.StatsService
}

func NewAdminHandlers(users store.UserStore, stats *service.StatsService) *AdminHandlers {
	return &AdminHandlers{users: users, stats: stats}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandlers) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Users")
		return
	}
	respond(c, http.StatusOK, gin.H{"users": users})
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandlers) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err, "User")
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandlers) Stats(c *gin.Context) {
	stats, err := h.stats.Dashboard(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Stats")
		return
	}
	respond(c, http.StatusOK, gin.H{"stats": stats})
}
