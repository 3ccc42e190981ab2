package room

// Member is the identity a connection presented on join. SessionID is stable
// for one browser tab; UserID is stable across tabs for one browser profile.
type Member struct {
	UserID    string
	Name      string
	SessionID string
	DpUrl     string
}

// MemberInfo is the shape other clients see in membership lists. ID is the
// connection identifier, not the persistent user id.
type MemberInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	DpUrl string `json:"dpUrl"`
}

// VoiceParticipant is one entry of the voice-chat roster.
type VoiceParticipant struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	DpUrl  string `json:"dpUrl"`
}

// ClaimResult reports a host-claim attempt. WasVacant is true when the seat
// had no holder before the claim.
type ClaimResult struct {
	IsHost    bool
	WasVacant bool
}

// Removal is what RemoveMember hands back for fan-out after a disconnect.
type Removal struct {
	Member  Member
	WasHost bool
}
