package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"flightschool/internal/domain"
	"flightschool/internal/http/middleware"
	"flightschool/internal/notify"
	"flightschool/internal/repositories"
	"flightschool/internal/services"
	"flightschool/internal/utils"

	"github.com/gin-gonic/gin"
)

// Handlers carries what every endpoint needs to build its services.
type Handlers struct {
	Store   repositories.Store
	Mailer  notify.Sender
	Auth    services.AuthService
	DueDays int
	// Ping checks database connectivity for /api/db-check.
	Ping func(ctx context.Context) error
	// Now overrides the service clocks; nil means wall time.
	Now func() time.Time
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload: "+err.Error(), nil)
		return false
	}
	return true
}

// pathID reads a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid "+name, gin.H{"field": name})
		return 0, false
	}
	return id, true
}

// queryID reads an optional positive integer query parameter.
func queryID(c *gin.Context, name string) (*int64, bool) {
	raw := utils.TrimOrEmpty(c.Query(name))
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid "+name, gin.H{"field": name})
		return nil, false
	}
	return &id, true
}

// queryTime accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func queryTime(c *gin.Context, name string) (*time.Time, bool) {
	raw := utils.TrimOrEmpty(c.Query(name))
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid "+name+": use YYYY-MM-DD or RFC 3339", gin.H{"field": name})
		return nil, false
	}
	return &t, true
}

func queryBool(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(c.Query(name)))
	return v
}

func actor(c *gin.Context) domain.Actor {
	a, _ := middleware.GetActor(c)
	return a
}

func sendPDF(c *gin.Context, body []byte, filename string) {
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", body)
}
