package ws

func (s *WsServer) registerVoiceHandlers() {
	Register(s.router, "vc-join", func(cc *ConnContext, req VoiceRoomRequest) {
		if req.RoomID == "" {
			return
		}
		if !s.roomSvc.JoinVoice(req.RoomID, cc.ConnID) {
			return // not a room member, or no such room
		}

		// The joiner gets the current roster of the *other* participants so
		// it can initiate a peer connection to each of them.
		s.tp.Send(cc.ConnID, "vc-join-success", VCParticipantsBody{
			Participants: s.roomSvc.OtherVoiceParticipants(req.RoomID, cc.ConnID),
		})
		s.broadcastVoiceState(req.RoomID)
	})

	Register(s.router, "vc-leave", func(cc *ConnContext, req VoiceRoomRequest) {
		if req.RoomID == "" {
			return
		}
		if s.roomSvc.LeaveVoice(req.RoomID, cc.ConnID) {
			s.broadcastVoiceState(req.RoomID)
		}
	})

	// Voice-chat peer signaling uses its own event namespace so it can
	// never be confused with the host video-stream signaling.
	Register(s.router, "vc-offer", func(cc *ConnContext, req OfferRelayRequest) {
		if req.To == "" || len(req.Offer) == 0 {
			return
		}
		s.tp.Send(req.To, "vc-offer", OfferRelayBody{From: cc.ConnID, Offer: req.Offer})
	})

	Register(s.router, "vc-answer", func(cc *ConnContext, req AnswerRelayRequest) {
		if req.To == "" || len(req.Answer) == 0 {
			return
		}
		s.tp.Send(req.To, "vc-answer", AnswerRelayBody{From: cc.ConnID, Answer: req.Answer})
	})

	Register(s.router, "vc-ice-candidate", func(cc *ConnContext, req CandidateRelayRequest) {
		if req.To == "" || len(req.Candidate) == 0 {
			return
		}
		s.tp.Send(req.To, "vc-ice-candidate", CandidateRelayBody{From: cc.ConnID, Candidate: req.Candidate})
	})
}

func (s *WsServer) broadcastVoiceState(roomID string) {
	s.tp.BroadcastToRoom(roomID, "vc-state-update", VCParticipantsBody{
		Participants: s.roomSvc.VoiceParticipants(roomID),
	})
}
