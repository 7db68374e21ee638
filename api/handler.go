// Package api exposes the pool ledger as a JSON HTTP API.
package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/pooltrader/desk"
	"github.com/rustyeddy/pooltrader/journal"
	"github.com/rustyeddy/pooltrader/ledger"
)

// Handler handles HTTP requests for the pool.
type Handler struct {
	desk *desk.Desk
	log  *slog.Logger
}

// NewHandler creates a handler backed by dk.
func NewHandler(dk *desk.Desk, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{desk: dk, log: logger}
}

// NewRouter returns an engine with every route registered.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.logRequests)
	h.Register(r)
	return r
}

// Register adds the pool routes to r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)

	r.GET("/accounts", h.ListAccounts)
	r.POST("/accounts", h.CreateAccount)
	r.POST("/accounts/:id/capital", h.AdjustCapital)
	r.DELETE("/accounts/:id", h.DeleteAccount)

	r.GET("/trades", h.ListTrades)
	r.POST("/trades", h.OpenTrade)
	r.GET("/trades/:id", h.GetTrade)
	r.POST("/trades/:id/fills", h.AddFill)
	r.POST("/trades/:id/exit", h.ExitTrade)
	r.DELETE("/trades/:id", h.DeleteTrade)

	r.GET("/history", h.ListHistory)
	r.GET("/history.csv", h.ExportHistory)
	r.GET("/summary", h.Summary)
}

func (h *Handler) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.log.Debug("http request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"elapsed", time.Since(start))
}

// Health reports that the server is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}

// writeError maps err to a status code and a JSON body.
func (h *Handler) writeError(c *gin.Context, err error) {
	var (
		ve *ledger.ValidationError
		pe *journal.PersistenceError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, journal.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, journal.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &pe):
		h.log.Error("storage failure", "op", pe.Op, "err", pe.Err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "retryable": true})
	default:
		h.log.Error("request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// parseTime accepts RFC 3339 timestamps and plain dates.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

// parseUntil parses the end of a range. A plain date includes the whole day.
func parseUntil(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(24 * time.Hour), nil
}

func queryBool(c *gin.Context, key string) (bool, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

func orZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}
