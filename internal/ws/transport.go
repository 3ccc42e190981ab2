package ws

// Transport is the fan-out boundary the event router depends on. Exactly
// three delivery shapes exist: one connection, a whole room, and a room
// minus one connection. Delivery is fire-and-forget; a failed write is the
// transport's problem, not the router's.
type Transport interface {
	Send(connID, event string, body any)
	BroadcastToRoom(roomID, event string, body any)
	BroadcastToRoomExcept(roomID, exceptConnID, event string, body any)

	// JoinRoom subscribes a connection to a room's broadcasts.
	JoinRoom(roomID, connID string)

	// RoomsOf lists the rooms a connection is subscribed to.
	RoomsOf(connID string) []string

	// Disconnect forcibly terminates a connection and drops all of its
	// room subscriptions.
	Disconnect(connID string)
}
