package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// internal (untyped) handler signature.
type rawHandler func(c *ConnContext, body json.RawMessage)

// Router keeps a map[event]handler, à-la gin.Engine.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]rawHandler
}

func NewRouter() *Router { return &Router{handlers: make(map[string]rawHandler)} }

// Register binds an event to a strongly-typed handler. A payload that does
// not decode into Req is dropped without a reply; misbehaving clients learn
// nothing about the room from the server's silence.
func Register[Req any](r *Router, event string, h func(c *ConnContext, req Req)) {
	if event == "" {
		panic("ws router: empty event")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[event] = func(c *ConnContext, body json.RawMessage) {
		var req Req
		if len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				zap.L().Debug("ws.malformed_payload",
					zap.String("event", event),
					zap.String("conn_id", c.ConnID),
					zap.Error(err))
				return
			}
		}
		h(c, req)
	}
}

// dispatch is called by the server's event loop.
func (r *Router) dispatch(c *ConnContext, env Envelope) {
	r.mu.RLock()
	h, ok := r.handlers[env.Event]
	r.mu.RUnlock()
	if !ok {
		zap.L().Debug("ws.unknown_event",
			zap.String("event", env.Event),
			zap.String("conn_id", c.ConnID))
		return
	}
	h(c, env.Body)
}
