package udp

import (
	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
)

// handleTransform relays the original datagram bytes. No reply is sent.
func (ctl *Controller) handleTransform(peer domain.PeerID, data []byte) {
	ctl.Orch.OnTransform(peer, core.Frame(data))
}
