package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"watchpartygo/internal/services/room"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second // must be < pongWait
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true }, // dev-only
}

// ConnContext identifies the connection an event arrived on.
type ConnContext struct {
	ConnID string
}

// inboundEvent is one unit of work for the event loop. A zero Event with
// disconnect set marks a connection teardown.
type inboundEvent struct {
	cc         *ConnContext
	env        Envelope
	disconnect bool
}

type WsServer struct {
	hub       *Hub
	tp        Transport
	router    *Router
	roomSvc   room.IRoomService
	validate  *validator.Validate
	events    chan inboundEvent
	readLimit int64
}

func NewWsServer(hub *Hub, roomSvc room.IRoomService, readLimit int64) *WsServer {
	srv := newWsServer(hub, roomSvc, readLimit)
	srv.hub = hub
	return srv
}

// newWsServer wires the router against the plain Transport interface so the
// event handlers never reach for the concrete hub.
func newWsServer(tp Transport, roomSvc room.IRoomService, readLimit int64) *WsServer {
	srv := &WsServer{
		tp:        tp,
		router:    NewRouter(),
		roomSvc:   roomSvc,
		validate:  validator.New(),
		events:    make(chan inboundEvent, 256),
		readLimit: readLimit,
	}
	srv.registerRoomHandlers()
	srv.registerPlaybackHandlers()
	srv.registerChatHandlers()
	srv.registerVoiceHandlers()
	srv.registerSignalingHandlers()
	return srv
}

// Run drains the event queue. Every event is handled to completion before
// the next one is taken, which is what keeps the eviction-then-admit
// sequence of a session takeover atomic with respect to other joins and
// leaves in the same room.
func (s *WsServer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-s.events:
			if e.disconnect {
				s.handleDisconnect(e.cc)
				continue
			}
			s.router.dispatch(e.cc, e.env)
		}
	}
}

// ---------------------------------------------------------------------------
//  Public: Gin entry-point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	rawConn, err := upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.accept", zap.Error(err))
		return
	}

	conn := &clientConn{id: uuid.NewString(), rawConn: rawConn}
	s.hub.register(conn)
	zap.L().Debug("ws.connected", zap.String("conn_id", conn.id))

	cc := &ConnContext{ConnID: conn.id}
	go s.reader(cc, conn)
	go s.pinger(conn)
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

func (s *WsServer) reader(cc *ConnContext, conn *clientConn) {
	defer func() {
		s.events <- inboundEvent{cc: cc, disconnect: true}
	}()

	conn.rawConn.SetReadLimit(s.readLimit)
	_ = conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	conn.rawConn.SetPongHandler(func(string) error {
		return conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var env Envelope
		if err := conn.rawConn.ReadJSON(&env); err != nil {
			return // client closed, errored or sent garbage framing
		}
		s.events <- inboundEvent{cc: cc, env: env}
	}
}

func (s *WsServer) pinger(conn *clientConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.ping(); err != nil {
			conn.close()
			return
		}
	}
}
