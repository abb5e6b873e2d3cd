package orch

import (
	"github.com/dkeye/roomrelay/internal/app"
	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) CreateRoom(sid domain.PeerID) (domain.RoomCode, error) {
	code, left, err := o.Registry.CreateRoom(sid)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("peer", string(sid)).Msg("create room failed")
		return "", err
	}
	if left != nil {
		log.Info().Str("module", "orch").Str("peer", string(sid)).Str("from_room", string(left.Code)).Msg("left room to create another")
	}
	return code, nil
}

func (o *Orchestrator) JoinRoom(sid domain.PeerID, code domain.RoomCode) error {
	left, err := o.Registry.Join(code, sid)
	if err != nil {
		log.Info().Err(err).Str("module", "orch").Str("peer", string(sid)).Str("room", string(code)).Msg("join rejected")
		return err
	}
	if left != nil {
		log.Info().Str("module", "orch").Str("peer", string(sid)).Str("from_room", string(left.Code)).Str("room", string(code)).Msg("moved to room")
	}
	return nil
}

// LeaveRoom returns the code of the room sid left.
func (o *Orchestrator) LeaveRoom(sid domain.PeerID) (domain.RoomCode, error) {
	rm, ok := o.Registry.RemoveMember(sid)
	if !ok {
		return "", domain.ErrNotInRoom
	}
	log.Info().Str("module", "orch").Str("peer", string(sid)).Str("room", string(rm.Code)).Bool("room_deleted", rm.RoomDeleted).Msg("left room")
	return rm.Code, nil
}

// Evict removes sid from its room, if any.
func (o *Orchestrator) Evict(sid domain.PeerID, reason string) bool {
	rm, ok := o.Registry.RemoveMember(sid)
	if !ok {
		return false
	}
	o.logEvicted([]app.Removal{rm}, reason)
	return true
}

// EvictRoom removes every member of code, which deletes the room.
func (o *Orchestrator) EvictRoom(code domain.RoomCode) (int, error) {
	removed := o.Registry.RemoveRoom(code)
	if len(removed) == 0 {
		return 0, domain.ErrRoomNotFound
	}
	o.logEvicted(removed, ReasonAdmin)
	return len(removed), nil
}

func (o *Orchestrator) Rooms() []core.RoomInfo {
	return o.Registry.List()
}

func (o *Orchestrator) Members(code domain.RoomCode) ([]core.MemberDTO, error) {
	members, ok := o.Registry.MembersSnapshot(code)
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return members, nil
}

func (o *Orchestrator) logEvicted(removed []app.Removal, reason string) {
	o.Metrics.Evicted(reason, len(removed))
	for _, rm := range removed {
		log.Info().
			Str("module", "orch").
			Str("peer", string(rm.Peer)).
			Str("session", string(rm.Session)).
			Str("room", string(rm.Code)).
			Bool("room_deleted", rm.RoomDeleted).
			Str("reason", reason).
			Msg("evicted")
	}
}
