package core

import (
	"time"

	"github.com/dkeye/roomrelay/internal/domain"
)

// PublishResult reports delivery stats to the orchestrator.
type PublishResult struct {
	Room    domain.RoomCode
	SentTo  int
	Dropped []Delivery
}

// Delivery is a failed fan-out write.
type Delivery struct {
	Peer domain.PeerID
	Err  error
}

// MemberDTO is a read-only view for APIs (no transport fields).
type MemberDTO struct {
	Session  domain.SessionID `json:"session"`
	Peer     domain.PeerID    `json:"peer"`
	JoinedAt time.Time        `json:"joined_at"`
	LastSeen time.Time        `json:"last_seen"`
}

type RoomInfo struct {
	Code        domain.RoomCode `json:"code"`
	MemberCount int             `json:"member_count"`
	CreatedAt   time.Time       `json:"created_at"`
}
