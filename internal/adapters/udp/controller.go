package udp

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dkeye/roomrelay/internal/app/orch"
	"github.com/dkeye/roomrelay/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	DefaultMaxDatagramSize = 1024

	readRetryMin = 5 * time.Millisecond
	readRetryMax = time.Second
)

// Controller reads datagrams from Conn and routes each one, in arrival order,
// to the orchestrator.
type Controller struct {
	Conn    *Conn
	Orch    *orch.Orchestrator
	Limiter *RoomRateLimiter
	Metrics *metrics.Metrics

	maxSize int
}

func NewController(conn *Conn, o *orch.Orchestrator, limiter *RoomRateLimiter, m *metrics.Metrics, maxSize int) *Controller {
	if maxSize <= 0 {
		maxSize = DefaultMaxDatagramSize
	}
	return &Controller{Conn: conn, Orch: o, Limiter: limiter, Metrics: m, maxSize: maxSize}
}

// Serve runs the read loop until ctx is cancelled, then closes the socket.
// Per-datagram failures never stop the loop.
func (ctl *Controller) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = ctl.Conn.Close()
	})
	defer stop()

	log.Info().Str("module", "udp").Str("addr", ctl.Conn.LocalAddr().String()).Int("max_datagram_size", ctl.maxSize).Msg("relay listening")

	prune := time.NewTicker(time.Minute)
	defer prune.Stop()

	buf := make([]byte, ctl.maxSize)
	var backoff time.Duration
	for {
		n, peer, err := ctl.Conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				log.Info().Str("module", "udp").Msg("read loop stopped")
				return nil
			}
			backoff = nextBackoff(backoff)
			log.Error().Err(err).Str("module", "udp").Dur("retry_in", backoff).Msg("read error")
			select {
			case <-ctx.Done():
			case <-time.After(backoff):
			}
			continue
		}
		backoff = 0
		ctl.Metrics.Datagram()

		ctl.handleDatagram(peer, buf[:n])

		select {
		case <-prune.C:
			ctl.Limiter.Prune()
		default:
		}
	}
}

// nextBackoff doubles the read retry delay between readRetryMin and readRetryMax.
func nextBackoff(cur time.Duration) time.Duration {
	if cur < readRetryMin {
		return readRetryMin
	}
	return min(cur*2, readRetryMax)
}
