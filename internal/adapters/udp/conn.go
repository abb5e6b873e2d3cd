package udp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"

	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
)

var ErrBadPeer = errors.New("bad peer address")

// Conn is the bound datagram socket. It implements core.Sender.
type Conn struct {
	pc *net.UDPConn
}

func Listen(ctx context.Context, addr string) (*Conn, error) {
	var lc net.ListenConfig
	pc, err := lc.ListenPacket(ctx, "udp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return &Conn{pc: pc.(*net.UDPConn)}, nil
}

func (c *Conn) LocalAddr() net.Addr { return c.pc.LocalAddr() }

// ReadFrom reads one datagram into buf. Datagrams longer than buf are truncated.
func (c *Conn) ReadFrom(buf []byte) (int, domain.PeerID, error) {
	n, addr, err := c.pc.ReadFromUDPAddrPort(buf)
	if err != nil {
		return 0, "", err
	}
	return n, PeerOf(addr), nil
}

func (c *Conn) SendTo(peer domain.PeerID, f core.Frame) error {
	addr, err := netip.ParseAddrPort(string(peer))
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrBadPeer, peer, err)
	}
	_, err = c.pc.WriteToUDPAddrPort(f, addr)
	return err
}

func (c *Conn) Close() error { return c.pc.Close() }

// PeerOf normalizes IPv4-mapped addresses so one client always maps to one PeerID.
func PeerOf(addr netip.AddrPort) domain.PeerID {
	return domain.PeerID(netip.AddrPortFrom(addr.Addr().Unmap(), addr.Port()).String())
}
