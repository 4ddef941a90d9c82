package http

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-terminal/internal/domain"
	"github.com/pkg/errors"
)

type StatsReader interface {
	Totals(ctx context.Context) ([]domain.ModeStats, error)
	RecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error)
	Game(ctx context.Context, id string) (*domain.GameRecord, error)
}

type StatsHandler struct {
	Stats StatsReader
}

func NewStatsHandler(stats StatsReader) *StatsHandler {
	return &StatsHandler{Stats: stats}
}

// Register mounts the read-only statistics routes.
func (h *StatsHandler) Register(r gin.IRoutes) {
	r.GET("/api/stats", h.GetStats)
	r.GET("/api/history", h.GetHistory)
	r.GET("/api/history/:id", h.GetGameDetails)
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	totals, err := h.Stats.Totals(c.Request.Context())
	if err != nil {
		log.Printf("[HTTP] Failed to load stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	played := 0
	for _, st := range totals {
		played += st.GamesPlayed
	}

	c.JSON(http.StatusOK, gin.H{
		"games_played": played,
		"modes":        totals,
	})
}

func (h *StatsHandler) GetHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	games, err := h.Stats.RecentGames(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[HTTP] Failed to load history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}
	c.JSON(http.StatusOK, games)
}

func (h *StatsHandler) GetGameDetails(c *gin.Context) {
	game, err := h.Stats.Game(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrGameNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if err != nil {
		log.Printf("[HTTP] Failed to load game %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game"})
		return
	}
	c.JSON(http.StatusOK, game)
}
