package ws

func (s *WsServer) registerChatHandlers() {
	Register(s.router, "send-chat-message", func(cc *ConnContext, req ChatRequest) {
		if req.RoomID == "" || req.Message == "" {
			return
		}
		sender, ok := s.roomSvc.GetMember(req.RoomID, cc.ConnID)
		if !ok {
			return
		}

		s.tp.BroadcastToRoom(req.RoomID, "chat-message", ChatMessageBody{
			Message:        req.Message,
			SenderSocketID: cc.ConnID,
			SenderUserID:   sender.UserID,
			SenderName:     sender.Name,
			IsSenderHost:   s.roomSvc.IsHost(req.RoomID, cc.ConnID),
			SenderDpUrl:    sender.DpUrl,
		})
	})

	// Subtitle cues are relayed as-is to everyone else. Only the host's
	// player produces them, which the clients enforce before emitting.
	Register(s.router, "subtitle-cue-change", func(cc *ConnContext, req SubtitleRequest) {
		if req.RoomID == "" {
			return
		}
		s.tp.BroadcastToRoomExcept(req.RoomID, cc.ConnID, "subtitle-cue-change",
			SubtitleCueBody{Text: req.Text})
	})
}
