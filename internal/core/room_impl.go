package core

import (
	"time"

	"github.com/dkeye/roomrelay/internal/domain"
)

// RoomState is the member set of one room. It is not safe for concurrent use;
// the registry serializes access.
type RoomState struct {
	room      *domain.Room
	createdAt time.Time
	members   map[domain.PeerID]struct{}
}

func NewRoomState(code domain.RoomCode, now time.Time) *RoomState {
	return &RoomState{
		room:      &domain.Room{Code: code},
		createdAt: now,
		members:   make(map[domain.PeerID]struct{}),
	}
}

func (r *RoomState) Room() *domain.Room { return r.room }

func (r *RoomState) CreatedAt() time.Time { return r.createdAt }

func (r *RoomState) MemberCount() int { return len(r.members) }

func (r *RoomState) Has(peer domain.PeerID) bool {
	_, ok := r.members[peer]
	return ok
}

func (r *RoomState) AddMember(peer domain.PeerID) {
	r.members[peer] = struct{}{}
}

// RemoveMember reports whether the room is empty afterwards.
func (r *RoomState) RemoveMember(peer domain.PeerID) bool {
	delete(r.members, peer)
	return len(r.members) == 0
}

// Peers returns the members except the excluded peer.
func (r *RoomState) Peers(except domain.PeerID) []domain.PeerID {
	out := make([]domain.PeerID, 0, len(r.members))
	for p := range r.members {
		if p == except {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *RoomState) Info() RoomInfo {
	return RoomInfo{Code: r.room.Code, MemberCount: len(r.members), CreatedAt: r.createdAt}
}
