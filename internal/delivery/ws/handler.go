package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/Epiphane/wedding-site/internal/domain"
)

const (
	maxFramePayloadBytes   = 16 * 1024
	maxFrameBytes          = maxFramePayloadBytes + 1024
	maxFramesPerSecond     = 30
	maxDecodeErrorsPerConn = 5
	writeTimeout           = 5 * time.Second
)

// GuestResolver resolves a typed display name to a guest.
type GuestResolver interface {
	LookupByName(ctx context.Context, name string) (*domain.Guest, error)
}

// Relay is the websocket endpoint for the shared canvas. Every mutation is
// stored through the canvas service before it is pushed to other peers.
type Relay struct {
	logger  *slog.Logger
	guests  GuestResolver
	canvas  domain.CanvasService
	hub     *hub
	origins map[string]struct{}
	server  websocket.Server

	// order keeps pushes in the order their writes were stored. Fan-out runs
	// under it one peer at a time, so a stalled peer holds every mutation for
	// up to writeTimeout before its write fails and it is dropped.
	order sync.Mutex
}

// NewRelay builds the relay. An empty allowedOrigins accepts any origin.
func NewRelay(logger *slog.Logger, guests GuestResolver, canvas domain.CanvasService, allowedOrigins []string) *Relay {
	r := &Relay{
		logger:  logger,
		guests:  guests,
		canvas:  canvas,
		hub:     newHub(logger),
		origins: make(map[string]struct{}, len(allowedOrigins)),
	}
	for _, o := range allowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			r.origins[o] = struct{}{}
		}
	}
	r.server = websocket.Server{Handshake: r.handshake, Handler: r.handleConn}
	return r
}

// ServeHTTP upgrades GET requests to a websocket connection.
func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.server.ServeHTTP(w, req)
}

// Peers returns the number of open connections.
func (r *Relay) Peers() int {
	return r.hub.count()
}

// Close disconnects every peer. http.Server.Shutdown does not track hijacked
// connections, so callers close the relay alongside it.
func (r *Relay) Close() {
	r.hub.closeAll()
}

// ClearCanvas deletes every sticker and tells every connection.
func (r *Relay) ClearCanvas(ctx context.Context) error {
	r.order.Lock()
	defer r.order.Unlock()
	if err := r.canvas.Clear(ctx); err != nil {
		return err
	}
	r.push(TypeCanvasCleared, nil, nil)
	return nil
}

func (r *Relay) handshake(cfg *websocket.Config, req *http.Request) error {
	if len(r.origins) == 0 {
		return nil
	}
	origin := strings.TrimRight(req.Header.Get("Origin"), "/")
	if _, ok := r.origins[origin]; !ok {
		r.logger.Warn("websocket origin rejected", "origin", origin)
		return fmt.Errorf("origin %q not allowed", origin)
	}
	return nil
}

func (r *Relay) handleConn(conn *websocket.Conn) {
	defer conn.Close()
	conn.MaxPayloadBytes = maxFrameBytes

	p := &peer{id: uuid.NewString(), conn: conn, writeTimeout: writeTimeout}
	r.hub.add(p)
	defer r.hub.remove(p)

	logger := r.logger.With("peer_id", p.id)
	logger.Info("websocket connected", "remote_addr", conn.Request().RemoteAddr)
	defer logger.Info("websocket disconnected")

	// Service calls outlive the connection: a write that was received is
	// always stored and pushed.
	ctx := context.WithoutCancel(conn.Request().Context())

	windowStart := time.Now()
	framesInWindow := 0
	decodeErrors := 0

	for {
		var raw []byte
		if err := websocket.Message.Receive(conn, &raw); err != nil {
			if errors.Is(err, websocket.ErrFrameTooLarge) {
				r.sendError(p, "", CodeInvalidArgument, "frame too large")
				continue
			}
			if !errors.Is(err, io.EOF) {
				logger.Debug("websocket read failed", "err", err)
			}
			return
		}

		now := time.Now()
		if now.Sub(windowStart) >= time.Second {
			windowStart = now
			framesInWindow = 0
		}
		framesInWindow++
		if framesInWindow > maxFramesPerSecond {
			logger.Warn("websocket rate limit exceeded")
			r.sendError(p, "", CodeResourceExhausted, "too many frames")
			return
		}

		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			decodeErrors++
			r.sendError(p, "", CodeInvalidArgument, "invalid frame")
			if decodeErrors >= maxDecodeErrorsPerConn {
				logger.Warn("closing websocket after repeated decode errors")
				return
			}
			continue
		}
		decodeErrors = 0

		if len(frame.Payload) > maxFramePayloadBytes {
			r.sendError(p, frame.RequestID, CodeInvalidArgument, "payload too large")
			continue
		}

		switch frame.Type {
		case TypeIdentitySet:
			r.identify(ctx, logger, p, frame)
		case TypeStickerPlace:
			r.place(ctx, logger, p, frame)
		case TypeStickerUpdate:
			r.update(ctx, logger, p, frame)
		case TypeCanvasClear:
			if err := r.ClearCanvas(ctx); err != nil {
				r.sendServiceError(logger, p, frame.RequestID, err)
			}
		default:
			r.sendError(p, frame.RequestID, CodeInvalidArgument, "unsupported frame type")
		}
	}
}

// identify replaces the connection's identity. Any identity.set drops the
// previous one first, so a failed attempt leaves the connection unidentified.
func (r *Relay) identify(ctx context.Context, logger *slog.Logger, p *peer, frame Frame) {
	p.guest = nil
	var req IdentityRequest
	if err := decodePayload(frame.Payload, &req); err != nil {
		r.sendError(p, frame.RequestID, CodeInvalidArgument, err.Error())
		return
	}
	guest, err := r.guests.LookupByName(ctx, req.Name)
	switch {
	case err == nil:
		p.guest = guest
		r.reply(p, TypeIdentityResult, frame.RequestID, IdentityResult{Resolved: true, Guest: guest})
	case errors.Is(err, domain.ErrNotFound):
		r.reply(p, TypeIdentityResult, frame.RequestID, IdentityResult{})
	default:
		r.sendServiceError(logger, p, frame.RequestID, err)
	}
}

func (r *Relay) place(ctx context.Context, logger *slog.Logger, p *peer, frame Frame) {
	if p.guest == nil {
		logger.Warn("dropping sticker placement from unidentified connection")
		r.sendError(p, frame.RequestID, CodeUnidentified, domain.ErrUnidentified.Error())
		return
	}
	var in domain.StickerInput
	if err := decodePayload(frame.Payload, &in); err != nil {
		r.sendError(p, frame.RequestID, CodeInvalidArgument, err.Error())
		return
	}

	r.order.Lock()
	defer r.order.Unlock()
	sticker, err := r.canvas.Place(ctx, p.guest, in)
	if err != nil {
		r.sendServiceError(logger, p, frame.RequestID, err)
		return
	}
	r.reply(p, TypeAck, frame.RequestID, sticker)
	r.push(TypeStickerPlaced, sticker, p)
}

func (r *Relay) update(ctx context.Context, logger *slog.Logger, p *peer, frame Frame) {
	if p.guest == nil {
		logger.Warn("dropping sticker update from unidentified connection")
		r.sendError(p, frame.RequestID, CodeUnidentified, domain.ErrUnidentified.Error())
		return
	}
	var req UpdateRequest
	if err := decodePayload(frame.Payload, &req); err != nil {
		r.sendError(p, frame.RequestID, CodeInvalidArgument, err.Error())
		return
	}
	if req.ID < 1 {
		r.sendError(p, frame.RequestID, CodeInvalidArgument, "id is required")
		return
	}

	r.order.Lock()
	defer r.order.Unlock()
	sticker, err := r.canvas.Update(ctx, req.ID, req.StickerPatch)
	if err != nil {
		r.sendServiceError(logger, p, frame.RequestID, err)
		return
	}
	r.reply(p, TypeAck, frame.RequestID, sticker)
	r.push(TypeStickerUpdated, sticker, p)
}

// push broadcasts to every peer except skip.
func (r *Relay) push(typ string, payload any, skip *peer) {
	f, err := newFrame(typ, "", payload)
	if err != nil {
		r.logger.Error("encode push frame", "type", typ, "err", err)
		return
	}
	r.hub.broadcast(f, skip)
}

func (r *Relay) reply(p *peer, typ, requestID string, payload any) {
	f, err := newFrame(typ, requestID, payload)
	if err != nil {
		r.logger.Error("encode reply frame", "type", typ, "err", err)
		return
	}
	if err := p.send(f); err != nil {
		r.logger.Debug("websocket write failed", "peer_id", p.id, "type", typ, "err", err)
	}
}

func (r *Relay) sendError(p *peer, requestID, code, message string) {
	r.reply(p, TypeError, requestID, ErrorPayload{Code: code, Message: message})
}

func (r *Relay) sendServiceError(logger *slog.Logger, p *peer, requestID string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		r.sendError(p, requestID, CodeInvalidArgument, strings.Join(verr.Fields, "; "))
	case errors.Is(err, domain.ErrInvalidInput):
		r.sendError(p, requestID, CodeInvalidArgument, err.Error())
	case errors.Is(err, domain.ErrUnidentified):
		r.sendError(p, requestID, CodeUnidentified, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		r.sendError(p, requestID, CodeNotFound, "sticker not found")
	default:
		logger.Error("canvas operation failed", "err", err)
		r.sendError(p, requestID, CodeInternal, "internal server error")
	}
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errors.New("payload is required")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
