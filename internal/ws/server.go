package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"presencehub/internal/services/presence"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = 25 * time.Second // must be < pongWait
	dispatchWait    = 1900 * time.Millisecond
	maxMessageSize  = 10 << 20 // file-structure snapshots can be large
	readBufferSize  = 4096
	writeBufferSize = 4096
)

type WsServer struct {
	hub      *Hub
	router   *Router
	svc      presence.IPresenceService
	upgrader websocket.Upgrader
}

func NewWsServer(h *Hub, svc presence.IPresenceService) *WsServer {
	srv := &WsServer{
		hub:    h,
		router: NewRouter(),
		svc:    svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBufferSize,
			WriteBufferSize: writeBufferSize,
			CheckOrigin:     func(*http.Request) bool { return true }, // CORS handled upstream
		},
	}
	srv.registerHandlers() // ← all WS endpoints configured here
	return srv
}

// ---------------------------------------------------------------------------
//  Public: Gin entry-point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	rawConn, err := s.upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.upgrade", zap.Error(err))
		return
	}

	// ─────────────────── Client connected ────────────────────────
	connID := uuid.NewString()
	conn := &clientConn{rawConn: rawConn}
	s.hub.Register(connID, conn)
	zap.L().Debug("ws.connected", zap.String("conn", connID))

	go s.reader(connID, conn)
	go s.pinger(conn)
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

func (s *WsServer) registerHandlers() {
	Register(s.router, presence.EventJoinRequest,
		func(ctx context.Context, cc *ConnContext, req presence.JoinRequest) error {
			return s.svc.Join(ctx, cc.ConnID, req)
		},
	)

	Register(s.router, presence.EventSyncFileStructure,
		func(_ context.Context, cc *ConnContext, req presence.FileStructureSync) error {
			s.svc.RelayFileStructure(cc.ConnID, req)
			return nil
		},
	)

	Register(s.router, presence.EventTypingStart,
		func(_ context.Context, cc *ConnContext, req presence.TypingUpdate) error {
			s.svc.SetTyping(cc.ConnID, true, req.CursorPosition)
			return nil
		},
	)

	Register(s.router, presence.EventTypingPause,
		func(_ context.Context, cc *ConnContext, req presence.TypingUpdate) error {
			s.svc.SetTyping(cc.ConnID, false, req.CursorPosition)
			return nil
		},
	)
}

func (s *WsServer) reader(connID string, conn *clientConn) {
	defer func() {
		// Disconnecting fires first, while the connection is still in
		// its room group; then the transport handle is torn down.
		s.svc.Disconnect(connID)
		s.hub.Unregister(connID)
		conn.rawConn.Close()
	}()

	conn.rawConn.SetReadLimit(maxMessageSize)
	_ = conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	conn.rawConn.SetPongHandler(func(string) error {
		return conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	cc := &ConnContext{ConnID: connID, Server: s}

	for {
		var env Envelope
		if err := conn.rawConn.ReadJSON(&env); err != nil {
			return // client closed or errored
		}

		ctx, cancel := context.WithTimeout(context.Background(), dispatchWait)
		err := s.router.dispatch(ctx, cc, env)
		cancel()

		// ---- error -> {"event":"error", "body":{...}} ---------------
		if err != nil {
			zap.L().Warn("ws.dispatch", zap.String("event", env.Event), zap.Error(err))
			_ = conn.writeJSON(reply{Event: "error", Body: ErrorBody{Error: err.Error()}})
		}
	}
}

func (s *WsServer) pinger(conn *clientConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.ping(); err != nil {
			conn.rawConn.Close()
			return
		}
	}
}
