package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"StockPulse/internal/dashboard"
	"StockPulse/internal/model"
	"StockPulse/internal/recorder"
	"StockPulse/internal/synth"
)

// DashboardService is the part of dashboard.Builder the API serves.
type DashboardService interface {
	Build(ctx context.Context, symbol string) (*model.Dashboard, error)
	Series(ctx context.Context, symbol, window string) (*model.Series, error)
}

// Handler serves the dashboard JSON API.
type Handler struct {
	dashboards DashboardService
	history    recorder.Recorder
	logger     *zap.Logger
}

func NewHandler(dashboards DashboardService, history recorder.Recorder, logger *zap.Logger) *Handler {
	return &Handler{dashboards: dashboards, history: history, logger: logger}
}

// NewRouter builds the gin engine with every route registered.
// Browser access is allowed from corsOrigins; none disables CORS.
func NewRouter(h *Handler, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())
	r.SetTrustedProxies(nil)

	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: corsOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Health)
	api := r.Group("/api")
	{
		api.GET("/dashboard/:symbol", h.GetDashboard)
		api.GET("/candles/:symbol", h.GetCandles)
		api.GET("/history/:symbol", h.GetHistory)
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetDashboard returns the full dashboard for a symbol.
func (h *Handler) GetDashboard(c *gin.Context) {
	d, err := h.dashboards.Build(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// GetCandles returns one window of candles, short unless ?window=long.
func (h *Handler) GetCandles(c *gin.Context) {
	window := c.DefaultQuery("window", "short")
	series, err := h.dashboards.Series(c.Request.Context(), c.Param("symbol"), window)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// GetHistory returns recorded snapshots for a symbol, newest first.
func (h *Handler) GetHistory(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	symbol, err := dashboard.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		h.fail(c, err)
		return
	}
	snaps, err := h.history.ListSnapshots(c.Request.Context(), symbol, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	if snaps == nil {
		snaps = []recorder.Snapshot{}
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "snapshots": snaps})
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, synth.ErrInvalidArgument) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}
