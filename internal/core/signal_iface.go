package core

import "github.com/dkeye/roomrelay/internal/domain"

// Frame is a raw datagram payload.
type Frame []byte

// Sender abstracts the datagram transport used for replies and fan-out.
// Owned by the adapter; delivery is best-effort.
type Sender interface {
	SendTo(peer domain.PeerID, f Frame) error
}
