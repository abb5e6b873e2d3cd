package orch

import (
	"github.com/dkeye/roomrelay/internal/app"
	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/dkeye/roomrelay/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	ReasonSendFailure  = "send_failure"
	ReasonRelayFailure = "relay_failure"
	ReasonIdle         = "idle"
	ReasonAdmin        = "admin"
)

// Orchestrator applies room operations to the registry and relays frames.
// It holds no state of its own.
type Orchestrator struct {
	Registry *app.Registry
	Relay    *app.Dispatcher
	Policy   app.Policy
	Metrics  *metrics.Metrics
}

func New(reg *app.Registry, relay *app.Dispatcher, policy app.Policy, m *metrics.Metrics) *Orchestrator {
	return &Orchestrator{Registry: reg, Relay: relay, Policy: policy, Metrics: m}
}

// OnTransform relays a transform frame to the sender's room mates. A sender
// in no room is ignored.
func (o *Orchestrator) OnTransform(sid domain.PeerID, data core.Frame) {
	res, ok := o.Relay.Broadcast(sid, data)
	if !ok {
		log.Debug().Str("module", "orch").Str("peer", string(sid)).Msg("transform from peer in no room, ignored")
		return
	}
	o.Metrics.Relayed(res.SentTo)
	for _, failed := range res.Dropped {
		o.Metrics.SendFailure("relay")
		log.Warn().Err(failed.Err).Str("module", "orch").Str("peer", string(failed.Peer)).Str("room", string(res.Room)).Msg("relay write failed")
		if o.Policy == nil {
			continue
		}
		switch o.Policy.OnDeliveryFailure(res, failed) {
		case app.EvictMember:
			o.Evict(failed.Peer, ReasonRelayFailure)
		case app.NoAction:
		}
	}
}

// OnSendFailure handles a failed reply to sid, the sender of the message being answered.
func (o *Orchestrator) OnSendFailure(sid domain.PeerID, err error) {
	o.Metrics.SendFailure("reply")
	log.Warn().Err(err).Str("module", "orch").Str("peer", string(sid)).Msg("reply write failed")
	o.Evict(sid, ReasonSendFailure)
}

// Touch records liveness for sid.
func (o *Orchestrator) Touch(sid domain.PeerID) {
	o.Registry.Touch(sid)
}
