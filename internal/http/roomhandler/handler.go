package roomhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"watchpartygo/internal/services/room"
)

type Handler struct {
	svc room.IRoomService
}

func New(svc room.IRoomService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/create-room", h.create)
	r.GET("/check-room/:roomId", h.check)
}

// create allocates a fresh room owned by the requesting user. Only the
// owner's connections will ever be able to claim the host seat.
func (h *Handler) create(ginCtx *gin.Context) {
	var body CreateRoomBody
	if err := ginCtx.ShouldBindJSON(&body); err != nil {
		ginCtx.JSON(http.StatusBadRequest, &ErrorResponse{Error: "User ID is required"})
		return
	}

	roomID, err := h.svc.CreateRoom(body.UserID)
	if err != nil {
		ginCtx.JSON(http.StatusInternalServerError, &ErrorResponse{Error: "Failed to create room"})
		return
	}

	zap.L().Info("room.created",
		zap.String("room_id", roomID),
		zap.String("owner_id", body.UserID))
	ginCtx.JSON(http.StatusCreated, &CreateRoomResponse{RoomID: roomID})
}

func (h *Handler) check(ginCtx *gin.Context) {
	if h.svc.RoomExists(ginCtx.Param("roomId")) {
		ginCtx.String(http.StatusOK, "Room exists")
		return
	}
	ginCtx.String(http.StatusNotFound, "Room not found")
}
