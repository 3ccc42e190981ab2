package ws

// Signaling for the host's video stream: direct one-to-one relays addressed
// by connection id. Incomplete payloads are dropped without a reply.
func (s *WsServer) registerSignalingHandlers() {
	Register(s.router, "webrtc-offer", func(cc *ConnContext, req OfferRelayRequest) {
		if req.To == "" || len(req.Offer) == 0 {
			return
		}
		s.tp.Send(req.To, "webrtc-offer", OfferRelayBody{From: cc.ConnID, Offer: req.Offer})
	})

	Register(s.router, "webrtc-answer", func(cc *ConnContext, req AnswerRelayRequest) {
		if req.To == "" || len(req.Answer) == 0 {
			return
		}
		s.tp.Send(req.To, "webrtc-answer", AnswerRelayBody{From: cc.ConnID, Answer: req.Answer})
	})

	Register(s.router, "webrtc-ice-candidate", func(cc *ConnContext, req CandidateRelayRequest) {
		if req.To == "" || len(req.Candidate) == 0 {
			return
		}
		s.tp.Send(req.To, "webrtc-ice-candidate", CandidateRelayBody{From: cc.ConnID, Candidate: req.Candidate})
	})
}
