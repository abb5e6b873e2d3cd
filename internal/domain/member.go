// Package domain contains entities without logic, just meta-data.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// PeerID is the transport address a datagram came from. It is not authenticated:
// two datagrams with the same address are assumed to come from the same participant.
type PeerID string

// SessionID names one affiliation of a peer with a room. A new one is issued
// every time the peer creates or joins a room.
type SessionID string

func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Member represents a peer's participation meta for a room.
// No transport or lifecycle logic here.
type Member struct {
	Peer     PeerID
	Session  SessionID
	JoinedAt time.Time
	LastSeen time.Time
}

func NewMember(peer PeerID, now time.Time) *Member {
	return &Member{
		Peer:     peer,
		Session:  NewSessionID(),
		JoinedAt: now,
		LastSeen: now,
	}
}
