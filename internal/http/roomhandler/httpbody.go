package roomhandler

type CreateRoomBody struct {
	UserID string `json:"userId" binding:"required" example:"user123"`
} // @name CreateRoomRequest

type CreateRoomResponse struct {
	RoomID string `json:"roomId" example:"V1StGX"`
} // @name CreateRoomResponse

type ErrorResponse struct {
	Error string `json:"error"`
} // @name ErrorResponse
