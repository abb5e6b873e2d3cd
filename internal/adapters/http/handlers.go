package http

import (
	"errors"
	"net/http"

	"github.com/dkeye/roomrelay/internal/app/orch"
	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type handlers struct {
	orch *orch.Orchestrator
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"rooms":    h.orch.Registry.RoomCount(),
		"sessions": h.orch.Registry.SessionCount(),
	})
}

func (h *handlers) listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.orch.Rooms()})
}

func (h *handlers) getRoom(c *gin.Context) {
	code := domain.RoomCode(c.Param("code"))
	members, err := h.orch.Members(code)
	if errors.Is(err, domain.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code, "members": members})
}

func (h *handlers) evictRoom(c *gin.Context) {
	code := domain.RoomCode(c.Param("code"))
	n, err := h.orch.EvictRoom(code)
	if errors.Is(err, domain.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	log.Info().Str("module", "adapters.http").Str("room", string(code)).Int("evicted", n).Msg("room evicted")
	c.JSON(http.StatusOK, gin.H{"code": code, "evicted": n})
}
