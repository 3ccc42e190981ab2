package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"watchpartygo/internal/services/room"
)

// op records one transport call, in order.
type op struct {
	kind   string // "send", "room", "except", "disconnect"
	connID string
	roomID string
	except string
	event  string
	body   any
}

// fakeTransport implements Transport for router tests: it records every
// delivery instead of writing to sockets.
type fakeTransport struct {
	ops   []op
	rooms map[string]map[string]bool // roomID -> connID set
}

var _ Transport = (*fakeTransport)(nil)

func newFakeTransport() *fakeTransport {
	return &fakeTransport{rooms: make(map[string]map[string]bool)}
}

func (f *fakeTransport) Send(connID, event string, body any) {
	f.ops = append(f.ops, op{kind: "send", connID: connID, event: event, body: body})
}

func (f *fakeTransport) BroadcastToRoom(roomID, event string, body any) {
	f.ops = append(f.ops, op{kind: "room", roomID: roomID, event: event, body: body})
}

func (f *fakeTransport) BroadcastToRoomExcept(roomID, exceptConnID, event string, body any) {
	f.ops = append(f.ops, op{kind: "except", roomID: roomID, except: exceptConnID, event: event, body: body})
}

func (f *fakeTransport) JoinRoom(roomID, connID string) {
	if _, ok := f.rooms[roomID]; !ok {
		f.rooms[roomID] = make(map[string]bool)
	}
	f.rooms[roomID][connID] = true
}

func (f *fakeTransport) RoomsOf(connID string) []string {
	var out []string
	for roomID, members := range f.rooms {
		if members[connID] {
			out = append(out, roomID)
		}
	}
	return out
}

func (f *fakeTransport) Disconnect(connID string) {
	for _, members := range f.rooms {
		delete(members, connID)
	}
	f.ops = append(f.ops, op{kind: "disconnect", connID: connID})
}

func (f *fakeTransport) reset() { f.ops = nil }

func (f *fakeTransport) eventIndex(kind, event string) int {
	for i, o := range f.ops {
		if o.kind == kind && o.event == event {
			return i
		}
	}
	return -1
}

func (f *fakeTransport) sentTo(connID, event string) (op, bool) {
	for _, o := range f.ops {
		if o.kind == "send" && o.connID == connID && o.event == event {
			return o, true
		}
	}
	return op{}, false
}

func (f *fakeTransport) disconnected(connID string) bool {
	for _, o := range f.ops {
		if o.kind == "disconnect" && o.connID == connID {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------

func newTestServer(t *testing.T) (*WsServer, *fakeTransport, room.IRoomService) {
	t.Helper()
	tp := newFakeTransport()
	svc := room.NewRoomService(6)
	return newWsServer(tp, svc, 65536), tp, svc
}

// dispatch feeds one event through the router exactly as the event loop
// would, including envelope decoding.
func dispatch(t *testing.T, s *WsServer, connID, event string, body any) {
	t.Helper()
	var raw json.RawMessage
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		raw = b
	}
	s.router.dispatch(&ConnContext{ConnID: connID}, Envelope{Event: event, Body: raw})
}

func joinRoom(t *testing.T, s *WsServer, connID, roomID, userID, session string) {
	t.Helper()
	dispatch(t, s, connID, "join-room", JoinRoomRequest{
		RoomID:    roomID,
		UserID:    userID,
		Username:  "name-" + userID,
		SessionID: session,
		DpUrl:     "http://dp/" + userID,
	})
}
