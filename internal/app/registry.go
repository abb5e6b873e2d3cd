package app

import (
	"sort"
	"sync"
	"time"

	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Removal describes a peer leaving a room.
type Removal struct {
	Peer        domain.PeerID
	Session     domain.SessionID
	Code        domain.RoomCode
	RoomDeleted bool
}

// Registry owns the rooms and the SessionIndex. Every mutation updates both
// under one lock, so a peer is never in a room by one view and not the other,
// and the registry never holds an empty room.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[domain.RoomCode]*core.RoomState
	sessions *SessionIndex
	codes    *core.CodeGenerator
	now      func() time.Time
}

type RegistryOption func(*Registry)

func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(codes *core.CodeGenerator, opts ...RegistryOption) *Registry {
	r := &Registry{
		rooms:    make(map[domain.RoomCode]*core.RoomState),
		sessions: NewSessionIndex(),
		codes:    codes,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateRoom makes a room whose sole member is owner. An owner already in a
// room leaves it first; that removal is returned as well.
func (r *Registry) CreateRoom(owner domain.PeerID) (domain.RoomCode, *Removal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, err := r.codes.Generate(func(c domain.RoomCode) bool {
		_, taken := r.rooms[c]
		return taken
	})
	if err != nil {
		return "", nil, err
	}

	left := r.removeLocked(owner)
	now := r.now()
	room := core.NewRoomState(code, now)
	room.AddMember(owner)
	r.rooms[code] = room
	m := r.sessions.Set(owner, code, now)
	log.Info().Str("module", "app.registry").Str("peer", string(owner)).Str("room", string(code)).Str("session", string(m.Session)).Msg("room created")
	return code, left, nil
}

// Join adds peer to the room named by code. Joining the current room is a
// no-op; joining another room leaves the current one first. An unknown code
// fails with ErrRoomNotFound and changes nothing.
func (r *Registry) Join(code domain.RoomCode, peer domain.PeerID) (*Removal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if cur, ok := r.sessions.Get(peer); ok && cur == code {
		r.sessions.Touch(peer, r.now())
		return nil, nil
	}

	left := r.removeLocked(peer)
	// peer was not in room, so the removal above cannot have deleted it.
	room.AddMember(peer)
	m := r.sessions.Set(peer, code, r.now())
	log.Info().Str("module", "app.registry").Str("peer", string(peer)).Str("room", string(code)).Str("session", string(m.Session)).Msg("joined room")
	return left, nil
}

// RemoveMember drops peer from its room, deleting the room if it empties.
func (r *Registry) RemoveMember(peer domain.PeerID) (Removal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm := r.removeLocked(peer)
	if rm == nil {
		return Removal{}, false
	}
	return *rm, true
}

func (r *Registry) removeLocked(peer domain.PeerID) *Removal {
	code, ok := r.sessions.Get(peer)
	if !ok {
		return nil
	}
	m, _ := r.sessions.Member(peer)
	r.sessions.Clear(peer)

	rm := &Removal{Peer: peer, Session: m.Session, Code: code}
	if room, ok := r.rooms[code]; ok && room.RemoveMember(peer) {
		delete(r.rooms, code)
		rm.RoomDeleted = true
		log.Info().Str("module", "app.registry").Str("room", string(code)).Msg("room empty, deleted")
	}
	log.Info().Str("module", "app.registry").Str("peer", string(peer)).Str("room", string(code)).Msg("member removed")
	return rm
}

// RemoveRoom drops every member of code and the room itself.
func (r *Registry) RemoveRoom(code domain.RoomCode) []Removal {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[code]
	if !ok {
		return nil
	}
	var out []Removal
	for _, peer := range room.Peers("") {
		if rm := r.removeLocked(peer); rm != nil {
			out = append(out, *rm)
		}
	}
	return out
}

// RemoveIdle removes every peer not seen for longer than idle.
func (r *Registry) RemoveIdle(idle time.Duration) []Removal {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Removal
	for _, peer := range r.sessions.Idle(r.now().Add(-idle)) {
		if rm := r.removeLocked(peer); rm != nil {
			out = append(out, *rm)
		}
	}
	return out
}

// Touch records activity from peer; false if peer is in no room.
func (r *Registry) Touch(peer domain.PeerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions.Touch(peer, r.now())
}

func (r *Registry) RoomOf(peer domain.PeerID) (domain.RoomCode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions.Get(peer)
}

// Recipients resolves peer's room and returns its other members.
func (r *Registry) Recipients(peer domain.PeerID) (domain.RoomCode, []domain.PeerID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	code, ok := r.sessions.Get(peer)
	if !ok {
		return "", nil, false
	}
	room, ok := r.rooms[code]
	if !ok {
		return "", nil, false
	}
	return code, room.Peers(peer), true
}

func (r *Registry) MembersOf(code domain.RoomCode) ([]domain.PeerID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[code]
	if !ok {
		return nil, false
	}
	return room.Peers(""), true
}

func (r *Registry) HasRoom(code domain.RoomCode) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[code]
	return ok
}

// MembersSnapshot returns member details sorted by join time.
func (r *Registry) MembersSnapshot(code domain.RoomCode) ([]core.MemberDTO, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[code]
	if !ok {
		return nil, false
	}
	out := make([]core.MemberDTO, 0, room.MemberCount())
	for _, peer := range room.Peers("") {
		m, ok := r.sessions.Member(peer)
		if !ok {
			continue
		}
		out = append(out, core.MemberDTO{Session: m.Session, Peer: m.Peer, JoinedAt: m.JoinedAt, LastSeen: m.LastSeen})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out, true
}

func (r *Registry) List() []core.RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions.Len()
}
