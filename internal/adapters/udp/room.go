package udp

import (
	"errors"

	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/dkeye/roomrelay/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (ctl *Controller) handleCreate(peer domain.PeerID) {
	if !ctl.Limiter.Allow(peer) {
		log.Warn().Str("module", "udp").Str("peer", string(peer)).Msg("create_room rate limited")
		ctl.sendJSON(peer, protocol.Error(protocol.MsgRateLimited))
		return
	}
	code, err := ctl.Orch.CreateRoom(peer)
	if err != nil {
		ctl.sendJSON(peer, protocol.Error(protocol.MsgUnavailable))
		return
	}
	ctl.sendJSON(peer, protocol.RoomCreated(string(code)))
}

// handleJoin answers a missing or non-string room_code the same way as an
// unknown one.
func (ctl *Controller) handleJoin(peer domain.PeerID, env protocol.Envelope) {
	raw, ok := env.Code()
	if !ok {
		log.Info().Str("module", "udp").Str("peer", string(peer)).RawJSON("room_code", rawOrNull(env.RoomCode)).Msg("join without usable room_code")
		ctl.sendJSON(peer, protocol.Error(protocol.MsgRoomNotFound))
		return
	}
	code := domain.RoomCode(raw)
	if err := ctl.Orch.JoinRoom(peer, code); err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			ctl.sendJSON(peer, protocol.Error(protocol.MsgRoomNotFound))
			return
		}
		log.Error().Err(err).Str("module", "udp").Str("peer", string(peer)).Msg("join failed")
		return
	}
	ctl.sendJSON(peer, protocol.JoinedRoom(string(code)))
}

// handleLeave removes peer from its room without any transport teardown.
func (ctl *Controller) handleLeave(peer domain.PeerID) {
	code, err := ctl.Orch.LeaveRoom(peer)
	if err != nil {
		ctl.sendJSON(peer, protocol.Error(protocol.MsgNotInRoom))
		return
	}
	ctl.sendJSON(peer, protocol.LeftRoom(string(code)))
}

func rawOrNull(b []byte) []byte {
	if len(b) == 0 {
		return []byte("null")
	}
	return b
}
