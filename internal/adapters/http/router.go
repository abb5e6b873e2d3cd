package http

import (
	"net/http"

	"github.com/dkeye/roomrelay/internal/app/orch"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SetupRouter builds the admin surface. metrics may be nil.
func SetupRouter(mode string, o *orch.Orchestrator, metrics http.Handler) *gin.Engine {
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	if mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	h := &handlers{orch: o}

	r.GET("/healthz", h.health)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	api := r.Group("/api")
	api.GET("/rooms", h.listRooms)
	api.GET("/rooms/:code", h.getRoom)
	api.DELETE("/rooms/:code", h.evictRoom)

	log.Info().Str("module", "adapters.http").Str("mode", mode).Msg("router setup")
	return r
}
