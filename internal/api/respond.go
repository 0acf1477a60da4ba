package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/ec-shop-api/internal/store"
)

// respond writes the uniform success envelope: a success flag plus the
// given payload fields.
func respond(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondError writes the uniform failure envelope.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// respondStoreError maps store-layer failures onto the response
// taxonomy: not-found and bad ids are 404, duplicate keys are 409 with
// a field-level message, everything else is a logged generic 500.
func respondStoreError(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrInvalidID):
		respondError(c, http.StatusNotFound, entity+" not found")
	case store.IsDuplicateKey(err):
		field := "value"
		if strings.Contains(err.Error(), "email") {
			field = "email"
		} else if strings.Contains(err.Error(), "title") || strings.Contains(err.Error(), "product") {
			field = "title"
		}
		respondError(c, http.StatusConflict, "A record with this "+field+" already exists")
	default:
		log.Printf("[API] %s error: %v", entity, err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
