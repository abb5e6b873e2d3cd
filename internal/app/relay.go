package app

import (
	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Dispatcher fans a frame out to the other members of the sender's room.
type Dispatcher struct {
	registry *Registry
	sender   core.Sender
}

func NewDispatcher(registry *Registry, sender core.Sender) *Dispatcher {
	return &Dispatcher{registry: registry, sender: sender}
}

// Broadcast sends f unmodified to every room mate of from. ok is false when
// from is in no room; nothing is sent then.
func (d *Dispatcher) Broadcast(from domain.PeerID, f core.Frame) (res core.PublishResult, ok bool) {
	code, peers, ok := d.registry.Recipients(from)
	if !ok {
		return res, false
	}
	res.Room = code
	for _, peer := range peers {
		if err := d.sender.SendTo(peer, f); err != nil {
			res.Dropped = append(res.Dropped, core.Delivery{Peer: peer, Err: err})
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "app.relay").Str("from", string(from)).Str("room", string(code)).Int("sent_to", res.SentTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res, true
}
