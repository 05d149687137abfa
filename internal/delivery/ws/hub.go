package ws

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	"github.com/Epiphane/wedding-site/internal/domain"
)

// peer is one connected browser. guest is only touched by the connection's
// read goroutine.
type peer struct {
	id           string
	conn         *websocket.Conn
	writeTimeout time.Duration
	guest        *domain.Guest

	mu sync.Mutex // serializes writes
}

func (p *peer) send(f Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.conn.SetWriteDeadline(time.Now().Add(p.writeTimeout)); err != nil {
		return err
	}
	return websocket.JSON.Send(p.conn, f)
}

// hub holds the connected peers.
type hub struct {
	logger *slog.Logger

	mu    sync.Mutex
	peers map[string]*peer
}

func newHub(logger *slog.Logger) *hub {
	return &hub{logger: logger, peers: make(map[string]*peer)}
}

func (h *hub) add(p *peer) {
	h.mu.Lock()
	h.peers[p.id] = p
	h.mu.Unlock()
}

func (h *hub) remove(p *peer) {
	h.mu.Lock()
	delete(h.peers, p.id)
	h.mu.Unlock()
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

// broadcast sends f to every peer except skip (which may be nil). A failed
// write closes that peer's connection, which ends its read loop.
func (h *hub) broadcast(f Frame, skip *peer) {
	h.mu.Lock()
	targets := make([]*peer, 0, len(h.peers))
	for _, p := range h.peers {
		if p != skip {
			targets = append(targets, p)
		}
	}
	h.mu.Unlock()

	for _, p := range targets {
		if err := p.send(f); err != nil {
			h.logger.Debug("dropping peer after failed write", "peer_id", p.id, "type", f.Type, "err", err)
			h.remove(p)
			_ = p.conn.Close()
		}
	}
}

// closeAll closes every connection; their read loops then remove them.
func (h *hub) closeAll() {
	h.mu.Lock()
	targets := make([]*peer, 0, len(h.peers))
	for _, p := range h.peers {
		targets = append(targets, p)
	}
	h.mu.Unlock()
	for _, p := range targets {
		_ = p.conn.Close()
	}
}
