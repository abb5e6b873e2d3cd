package udp

import (
	"errors"

	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/dkeye/roomrelay/internal/protocol"
	"github.com/rs/zerolog/log"
)

// handleDatagram decodes one datagram and dispatches it by action. data is
// only valid for the duration of the call.
func (ctl *Controller) handleDatagram(peer domain.PeerID, data []byte) {
	if len(data) == 0 {
		return
	}
	env, err := protocol.Decode(data)
	if err != nil {
		reason := "invalid_json"
		switch {
		case errors.Is(err, protocol.ErrMissingAction):
			reason = "missing_action"
		case errors.Is(err, protocol.ErrInvalidUTF8):
			reason = "invalid_utf8"
		}
		ctl.Metrics.DecodeError(reason)
		log.Warn().Err(err).Str("module", "udp").Str("peer", string(peer)).Msg("dropping undecodable datagram")
		return
	}

	ctl.Orch.Touch(peer)

	switch env.Action {
	case protocol.ActionCreateRoom:
		ctl.handleCreate(peer)
	case protocol.ActionJoinRoom:
		ctl.handleJoin(peer, env)
	case protocol.ActionLeaveRoom:
		ctl.handleLeave(peer)
	case protocol.ActionSendTransform:
		ctl.handleTransform(peer, data)
	case protocol.ActionPing:
		ctl.handlePing(peer)
	default:
		ctl.Metrics.DecodeError("unknown_action")
		log.Warn().Str("module", "udp").Str("peer", string(peer)).Str("action", env.Action).Msg("unknown action")
		return
	}
	ctl.Metrics.Action(env.Action)
}

// sendJSON replies to peer, the sender of the message being handled. A failed
// write is treated as that sender having gone away.
func (ctl *Controller) sendJSON(peer domain.PeerID, r protocol.Reply) {
	b, err := protocol.Encode(r)
	if err != nil {
		log.Error().Err(err).Str("module", "udp").Msg("sendJSON marshal")
		return
	}
	if err := ctl.Conn.SendTo(peer, b); err != nil {
		ctl.Orch.OnSendFailure(peer, err)
	}
}
