package udp

import (
	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/dkeye/roomrelay/internal/protocol"
)

func (ctl *Controller) handlePing(peer domain.PeerID) {
	ctl.sendJSON(peer, protocol.Pong())
}
