package app

import (
	"time"

	"github.com/dkeye/roomrelay/internal/domain"
)

type sessionEntry struct {
	Code   domain.RoomCode
	Member *domain.Member
}

// SessionIndex maps a peer to the room it currently belongs to. It is an
// auxiliary view of Registry state and is only mutated under the registry lock.
type SessionIndex struct {
	entries map[domain.PeerID]*sessionEntry
}

func NewSessionIndex() *SessionIndex {
	return &SessionIndex{entries: make(map[domain.PeerID]*sessionEntry)}
}

func (s *SessionIndex) Set(peer domain.PeerID, code domain.RoomCode, now time.Time) *domain.Member {
	m := domain.NewMember(peer, now)
	s.entries[peer] = &sessionEntry{Code: code, Member: m}
	return m
}

func (s *SessionIndex) Get(peer domain.PeerID) (domain.RoomCode, bool) {
	e, ok := s.entries[peer]
	if !ok {
		return "", false
	}
	return e.Code, true
}

func (s *SessionIndex) Member(peer domain.PeerID) (*domain.Member, bool) {
	e, ok := s.entries[peer]
	if !ok {
		return nil, false
	}
	return e.Member, true
}

func (s *SessionIndex) Clear(peer domain.PeerID) {
	delete(s.entries, peer)
}

// Touch refreshes LastSeen and reports whether the peer is affiliated.
func (s *SessionIndex) Touch(peer domain.PeerID, now time.Time) bool {
	e, ok := s.entries[peer]
	if !ok {
		return false
	}
	e.Member.LastSeen = now
	return true
}

// Idle lists peers whose LastSeen is before cutoff.
func (s *SessionIndex) Idle(cutoff time.Time) []domain.PeerID {
	var out []domain.PeerID
	for peer, e := range s.entries {
		if e.Member.LastSeen.Before(cutoff) {
			out = append(out, peer)
		}
	}
	return out
}

func (s *SessionIndex) Len() int { return len(s.entries) }
