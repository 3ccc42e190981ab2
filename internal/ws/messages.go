package ws

import (
	"encoding/json"

	"watchpartygo/internal/services/room"
)

// Envelope wraps every inbound WS frame.
type Envelope struct {
	Event string          `json:"event"`
	Body  json.RawMessage `json:"body,omitempty"`
}

// frame is the outbound counterpart; Body is marshalled as-is.
type frame struct {
	Event string `json:"event"`
	Body  any    `json:"body,omitempty"`
}

// ErrorBody is sent as the "error" event for rejected joins.
type ErrorBody struct {
	Message string `json:"message"`
}

// ──────────────────────────── room lifecycle ─────────────────────────────

type JoinRoomRequest struct {
	RoomID    string `json:"roomId"`
	UserID    string `json:"userId"    validate:"required"`
	Username  string `json:"username"  validate:"required"`
	SessionID string `json:"sessionId" validate:"required"`
	DpUrl     string `json:"dpUrl"     validate:"required"`
}

type RoomJoinedBody struct {
	RoomID     string            `json:"roomId"`
	IsHost     bool              `json:"isHost"`
	UserName   string            `json:"userName"`
	DpUrl      string            `json:"dpUrl"`
	OtherUsers []room.MemberInfo `json:"otherUsers"`
	HostID     *string           `json:"hostId"`
}

type UserJoinedBody struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	DpUrl    string `json:"dpUrl"`
}

type UserLeftBody struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

type HostUpdateBody struct {
	HostID *string `json:"hostId"`
}

type HostDisconnectedBody struct {
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// ──────────────────────────── playback & sync ────────────────────────────

type PlaybackRequest struct {
	RoomID    string `json:"roomId"`
	IsPlaying bool   `json:"isPlaying"`
}

type PlayingStateBody struct {
	IsPlaying bool `json:"isPlaying"`
}

type RequestSyncRequest struct {
	RoomID string `json:"roomId"`
}

type RequestSyncBody struct {
	From string `json:"from"`
}

type SyncStateRequest struct {
	To    string          `json:"to"`
	State json.RawMessage `json:"state"`
}

type SyncStateBody struct {
	State json.RawMessage `json:"state"`
}

// ──────────────────────────── communication ──────────────────────────────

type ChatRequest struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

type ChatMessageBody struct {
	Message        string `json:"message"`
	SenderSocketID string `json:"senderSocketId"`
	SenderUserID   string `json:"senderUserId"`
	SenderName     string `json:"senderName"`
	IsSenderHost   bool   `json:"isSenderHost"`
	SenderDpUrl    string `json:"senderDpUrl"`
}

type SubtitleRequest struct {
	RoomID string `json:"roomId"`
	Text   string `json:"text"`
}

type SubtitleCueBody struct {
	Text string `json:"text"`
}

// ──────────────────────────── voice chat ─────────────────────────────────

type VoiceRoomRequest struct {
	RoomID string `json:"roomId"`
}

type VCParticipantsBody struct {
	Participants []room.VoiceParticipant `json:"participants"`
}

// ──────────────────────────── signaling relays ───────────────────────────

// OfferRelayRequest et al. cover both the host video stream ("webrtc-*")
// and the voice-chat mesh ("vc-*"); the namespaces never mix.
type OfferRelayRequest struct {
	To    string          `json:"to"`
	Offer json.RawMessage `json:"offer,omitempty"`
}

type OfferRelayBody struct {
	From  string          `json:"from"`
	Offer json.RawMessage `json:"offer"`
}

type AnswerRelayRequest struct {
	To     string          `json:"to"`
	Answer json.RawMessage `json:"answer,omitempty"`
}

type AnswerRelayBody struct {
	From   string          `json:"from"`
	Answer json.RawMessage `json:"answer"`
}

type CandidateRelayRequest struct {
	To        string          `json:"to"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

type CandidateRelayBody struct {
	From      string          `json:"from"`
	Candidate json.RawMessage `json:"candidate"`
}
