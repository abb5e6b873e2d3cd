package app

import (
	"errors"
	"sync"
	"testing"

	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentFrame struct {
	Peer  domain.PeerID
	Frame core.Frame
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentFrame
	fail map[domain.PeerID]error
}

func (s *fakeSender) SendTo(peer domain.PeerID, f core.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[peer]; err != nil {
		return err
	}
	s.sent = append(s.sent, sentFrame{Peer: peer, Frame: f})
	return nil
}

func TestDispatcher_Broadcast(t *testing.T) {
	r, _ := newTestRegistry(t)
	code, _, err := r.CreateRoom("a")
	require.NoError(t, err)
	_, err = r.Join(code, "b")
	require.NoError(t, err)
	_, err = r.Join(code, "c")
	require.NoError(t, err)

	s := &fakeSender{}
	d := NewDispatcher(r, s)
	payload := core.Frame(`{"action":"send_transform","x":1,"y":2}`)

	res, ok := d.Broadcast("a", payload)
	require.True(t, ok)
	assert.Equal(t, code, res.Room)
	assert.Equal(t, 2, res.SentTo)
	assert.Empty(t, res.Dropped)

	var to []domain.PeerID
	for _, m := range s.sent {
		assert.Equal(t, payload, m.Frame)
		to = append(to, m.Peer)
	}
	assert.ElementsMatch(t, []domain.PeerID{"b", "c"}, to)
}

func TestDispatcher_BroadcastUnaffiliated(t *testing.T) {
	r, _ := newTestRegistry(t)
	s := &fakeSender{}
	d := NewDispatcher(r, s)

	_, ok := d.Broadcast("nobody", core.Frame("x"))
	assert.False(t, ok)
	assert.Empty(t, s.sent)
}

func TestDispatcher_BroadcastAlone(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, _, err := r.CreateRoom("a")
	require.NoError(t, err)
	s := &fakeSender{}

	res, ok := NewDispatcher(r, s).Broadcast("a", core.Frame("x"))
	assert.True(t, ok)
	assert.Zero(t, res.SentTo)
	assert.Empty(t, s.sent)
}

func TestDispatcher_BroadcastCollectsFailures(t *testing.T) {
	r, _ := newTestRegistry(t)
	code, _, err := r.CreateRoom("a")
	require.NoError(t, err)
	_, err = r.Join(code, "b")
	require.NoError(t, err)
	_, err = r.Join(code, "c")
	require.NoError(t, err)

	boom := errors.New("boom")
	s := &fakeSender{fail: map[domain.PeerID]error{"c": boom}}
	res, ok := NewDispatcher(r, s).Broadcast("a", core.Frame("x"))
	require.True(t, ok)
	assert.Equal(t, 1, res.SentTo)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, domain.PeerID("c"), res.Dropped[0].Peer)
	assert.ErrorIs(t, res.Dropped[0].Err, boom)
}

func TestPolicies(t *testing.T) {
	assert.Equal(t, EvictMember, SimplePolicy{}.OnDeliveryFailure(core.PublishResult{}, core.Delivery{}))
	assert.Equal(t, NoAction, TolerantPolicy{}.OnDeliveryFailure(core.PublishResult{}, core.Delivery{}))
}
