package ws

import (
	"go.uber.org/zap"

	"watchpartygo/internal/services/room"
)

func (s *WsServer) registerRoomHandlers() {
	Register(s.router, "join-room", s.handleJoinRoom)
}

func (s *WsServer) handleJoinRoom(cc *ConnContext, req JoinRoomRequest) {
	if !s.roomSvc.RoomExists(req.RoomID) {
		s.tp.Send(cc.ConnID, "error", ErrorBody{Message: "Room not found"})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.tp.Send(cc.ConnID, "error", ErrorBody{Message: "Invalid user data provided."})
		return
	}

	prevSession, had := s.roomSvc.UpdateLatestSession(req.RoomID, req.UserID, req.SessionID)
	if had && prevSession != "" {
		s.takeOverSession(cc, req, prevSession)
	}

	s.tp.JoinRoom(req.RoomID, cc.ConnID)

	member := room.Member{
		UserID:    req.UserID,
		Name:      req.Username,
		SessionID: req.SessionID,
		DpUrl:     req.DpUrl,
	}
	if err := s.roomSvc.AddMember(req.RoomID, cc.ConnID, member); err != nil {
		return
	}

	claim := s.roomSvc.ClaimHost(req.RoomID, cc.ConnID, req.UserID)

	zap.L().Info("room.join",
		zap.String("room_id", req.RoomID),
		zap.String("user_id", req.UserID),
		zap.String("conn_id", cc.ConnID),
		zap.Bool("is_host", claim.IsHost),
		zap.Bool("seat_was_vacant", claim.WasVacant))

	hostID := s.hostPtr(req.RoomID)
	s.tp.BroadcastToRoom(req.RoomID, "host-update", HostUpdateBody{HostID: hostID})

	s.tp.Send(cc.ConnID, "room-joined", RoomJoinedBody{
		RoomID:     req.RoomID,
		IsHost:     claim.IsHost,
		UserName:   req.Username,
		DpUrl:      req.DpUrl,
		OtherUsers: s.roomSvc.OtherMembers(req.RoomID, cc.ConnID),
		HostID:     hostID,
	})

	s.tp.BroadcastToRoomExcept(req.RoomID, cc.ConnID, "user-joined", UserJoinedBody{
		UserID:   cc.ConnID,
		UserName: req.Username,
		DpUrl:    req.DpUrl,
	})

	s.tp.Send(cc.ConnID, "vc-state-update", VCParticipantsBody{
		Participants: s.roomSvc.VoiceParticipants(req.RoomID),
	})
}

// takeOverSession tears down the stale connection a reloading tab left
// behind. The room sees exactly one "user-left" for the old connection
// before any "user-joined" for the new one.
func (s *WsServer) takeOverSession(cc *ConnContext, req JoinRoomRequest, prevSession string) {
	oldConnID, oldMember, ok := s.roomSvc.FindSession(req.RoomID, req.UserID, prevSession)
	if !ok || oldConnID == cc.ConnID {
		// A rejoin from the very connection that owns the latest session
		// must not evict itself.
		return
	}

	zap.L().Info("room.session_takeover",
		zap.String("room_id", req.RoomID),
		zap.String("user_id", req.UserID),
		zap.String("old_conn_id", oldConnID),
		zap.String("new_conn_id", cc.ConnID))

	s.tp.BroadcastToRoom(req.RoomID, "user-left", UserLeftBody{
		UserID: oldConnID,
		Name:   oldMember.Name,
	})
	if s.roomSvc.IsHost(req.RoomID, oldConnID) {
		s.tp.BroadcastToRoom(req.RoomID, "host-disconnected", HostDisconnectedBody{
			Name:   oldMember.Name,
			UserID: oldConnID,
		})
	}

	wasInVoice := s.roomSvc.EvictMember(req.RoomID, oldConnID)

	s.tp.Send(oldConnID, "session-deactivated", nil)
	s.tp.Disconnect(oldConnID)

	if wasInVoice {
		s.broadcastVoiceState(req.RoomID)
	}
}

func (s *WsServer) handleDisconnect(cc *ConnContext) {
	for _, roomID := range s.tp.RoomsOf(cc.ConnID) {
		wasInVoice := s.roomSvc.IsInVoice(roomID, cc.ConnID)

		removal := s.roomSvc.RemoveMember(roomID, cc.ConnID)
		if removal == nil {
			continue
		}

		zap.L().Info("room.leave",
			zap.String("room_id", roomID),
			zap.String("user_id", removal.Member.UserID),
			zap.String("conn_id", cc.ConnID),
			zap.Bool("was_host", removal.WasHost))

		s.tp.BroadcastToRoomExcept(roomID, cc.ConnID, "user-left", UserLeftBody{
			UserID: cc.ConnID,
			Name:   removal.Member.Name,
		})

		if wasInVoice {
			s.broadcastVoiceState(roomID)
		}

		if removal.WasHost {
			s.tp.BroadcastToRoomExcept(roomID, cc.ConnID, "host-disconnected", HostDisconnectedBody{
				Name:   removal.Member.Name,
				UserID: cc.ConnID,
			})
			// The seat is not auto-reassigned; tell the players so.
			s.tp.BroadcastToRoomExcept(roomID, cc.ConnID, "update-player-to-no-host", nil)
		}
	}

	s.tp.Disconnect(cc.ConnID)
}

func (s *WsServer) hostPtr(roomID string) *string {
	if id, ok := s.roomSvc.HostConn(roomID); ok {
		return &id
	}
	return nil
}
