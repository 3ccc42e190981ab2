package ws

func (s *WsServer) registerPlaybackHandlers() {
	// Host-only playback controls. Host status is re-checked on every
	// dispatch, never cached on the connection.
	Register(s.router, "play", func(cc *ConnContext, req PlaybackRequest) {
		if !s.fromHost(cc, req.RoomID) {
			return
		}
		s.tp.BroadcastToRoomExcept(req.RoomID, cc.ConnID, "play", nil)
	})

	Register(s.router, "pause", func(cc *ConnContext, req PlaybackRequest) {
		if !s.fromHost(cc, req.RoomID) {
			return
		}
		s.tp.BroadcastToRoomExcept(req.RoomID, cc.ConnID, "pause", nil)
	})

	Register(s.router, "seek", func(cc *ConnContext, req PlaybackRequest) {
		if !s.fromHost(cc, req.RoomID) {
			return
		}
		s.tp.BroadcastToRoomExcept(req.RoomID, cc.ConnID, "seek",
			PlayingStateBody{IsPlaying: req.IsPlaying})
	})

	Register(s.router, "host-changed-video", func(cc *ConnContext, req PlaybackRequest) {
		if !s.fromHost(cc, req.RoomID) {
			return
		}
		s.tp.BroadcastToRoomExcept(req.RoomID, cc.ConnID, "host-changed-video-reset", nil)
	})

	Register(s.router, "host-time-update", func(cc *ConnContext, req PlaybackRequest) {
		if !s.fromHost(cc, req.RoomID) {
			return
		}
		s.tp.BroadcastToRoomExcept(req.RoomID, cc.ConnID, "host-time-update",
			PlayingStateBody{IsPlaying: req.IsPlaying})
	})

	// Client-to-host sync: any member may ask the host for the current
	// playback state; the host answers the requester directly.
	Register(s.router, "request-sync", func(cc *ConnContext, req RequestSyncRequest) {
		if req.RoomID == "" {
			return
		}
		if hostID, ok := s.roomSvc.HostConn(req.RoomID); ok {
			s.tp.Send(hostID, "request-sync", RequestSyncBody{From: cc.ConnID})
		}
	})

	Register(s.router, "sync-state", func(cc *ConnContext, req SyncStateRequest) {
		if req.To == "" {
			return
		}
		s.tp.Send(req.To, "sync-state", SyncStateBody{State: req.State})
	})
}

// fromHost silently rejects host-gated actions from anyone but the
// connection currently holding the seat.
func (s *WsServer) fromHost(cc *ConnContext, roomID string) bool {
	if roomID == "" {
		return false
	}
	return s.roomSvc.IsHost(roomID, cc.ConnID)
}
