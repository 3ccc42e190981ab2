package room

import (
	"errors"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	ErrOwnerRequired = errors.New("owner id required")
	ErrRoomNotFound  = errors.New("room not found")
)

type IRoomService interface {
	CreateRoom(ownerID string) (string, error)
	RoomExists(roomID string) bool

	AddMember(roomID, connID string, m Member) error
	RemoveMember(roomID, connID string) *Removal
	EvictMember(roomID, connID string) (wasInVoice bool)
	GetMember(roomID, connID string) (Member, bool)
	OtherMembers(roomID, exceptConnID string) []MemberInfo

	UpdateLatestSession(roomID, userID, sessionID string) (string, bool)
	FindSession(roomID, userID, sessionID string) (string, Member, bool)

	ClaimHost(roomID, connID, userID string) ClaimResult
	IsHost(roomID, connID string) bool
	HostConn(roomID string) (string, bool)

	JoinVoice(roomID, connID string) bool
	LeaveVoice(roomID, connID string) bool
	IsInVoice(roomID, connID string) bool
	VoiceParticipants(roomID string) []VoiceParticipant
	OtherVoiceParticipants(roomID, exceptConnID string) []VoiceParticipant
}

// roomState is the per-room record. Rooms live for the process lifetime and
// are never deleted, even when the last member leaves.
type roomState struct {
	ownerID        string
	hostConnID     string            // "" while the seat is vacant
	members        map[string]Member // connID -> member
	latestSessions map[string]string // userID -> newest session token
	voiceMembers   map[string]VoiceParticipant
}

type roomService struct {
	mu    sync.RWMutex
	rooms map[string]*roomState
	idLen int
}

func NewRoomService(idLen int) IRoomService {
	return &roomService{
		rooms: make(map[string]*roomState),
		idLen: idLen,
	}
}

func (svc *roomService) CreateRoom(ownerID string) (string, error) {
	if ownerID == "" {
		return "", ErrOwnerRequired
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	for {
		id, err := gonanoid.New(svc.idLen)
		if err != nil {
			return "", err
		}
		if _, taken := svc.rooms[id]; taken {
			continue
		}
		svc.rooms[id] = &roomState{
			ownerID:        ownerID,
			members:        make(map[string]Member),
			latestSessions: make(map[string]string),
			voiceMembers:   make(map[string]VoiceParticipant),
		}
		return id, nil
	}
}

func (svc *roomService) RoomExists(roomID string) bool {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	_, ok := svc.rooms[roomID]
	return ok
}

func (svc *roomService) AddMember(roomID, connID string, m Member) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	r, ok := svc.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}

	// Defensive cleanup: the session-takeover path evicts a stale connection
	// for this user before we get here, but never trust that it did.
	for id, existing := range r.members {
		if existing.UserID == m.UserID {
			delete(r.members, id)
		}
	}

	r.members[connID] = m
	return nil
}

// RemoveMember handles a genuine disconnect: it clears the host seat if this
// connection held it, drops any voice-chat entry, and forgets the user's
// latest-session token unless a newer session has already superseded it.
func (svc *roomService) RemoveMember(roomID, connID string) *Removal {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	r, ok := svc.rooms[roomID]
	if !ok {
		return nil
	}
	m, ok := r.members[connID]
	if !ok {
		return nil
	}

	wasHost := r.hostConnID == connID
	delete(r.members, connID)
	delete(r.voiceMembers, connID)
	if wasHost {
		r.hostConnID = ""
	}
	if r.latestSessions[m.UserID] == m.SessionID {
		delete(r.latestSessions, m.UserID)
	}

	return &Removal{Member: m, WasHost: wasHost}
}

// EvictMember is the non-broadcasting removal used only for session takeover.
// It deliberately leaves latestSessions alone: the newer session for the same
// user already owns that entry.
func (svc *roomService) EvictMember(roomID, connID string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	r, ok := svc.rooms[roomID]
	if !ok {
		return false
	}
	if _, ok := r.members[connID]; !ok {
		return false
	}

	if r.hostConnID == connID {
		r.hostConnID = ""
	}
	delete(r.members, connID)

	// The evicted connection would otherwise linger as a ghost voice
	// participant that no later event can remove.
	_, wasInVoice := r.voiceMembers[connID]
	delete(r.voiceMembers, connID)
	return wasInVoice
}

func (svc *roomService) GetMember(roomID, connID string) (Member, bool) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	r, ok := svc.rooms[roomID]
	if !ok {
		return Member{}, false
	}
	m, ok := r.members[connID]
	return m, ok
}

func (svc *roomService) OtherMembers(roomID, exceptConnID string) []MemberInfo {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	r, ok := svc.rooms[roomID]
	if !ok {
		return nil
	}
	others := make([]MemberInfo, 0, len(r.members))
	for id, m := range r.members {
		if id == exceptConnID {
			continue
		}
		others = append(others, MemberInfo{ID: id, Name: m.Name, DpUrl: m.DpUrl})
	}
	return others
}

// UpdateLatestSession records sessionID as the newest session for the user
// and returns the previously recorded token, if any. A non-empty previous
// token is the trigger for the session-takeover protocol.
func (svc *roomService) UpdateLatestSession(roomID, userID, sessionID string) (string, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	r, ok := svc.rooms[roomID]
	if !ok {
		return "", false
	}
	prev, had := r.latestSessions[userID]
	r.latestSessions[userID] = sessionID
	return prev, had
}

// FindSession locates the member entry carrying the given user and session
// token, i.e. the stale connection left behind by a reload.
func (svc *roomService) FindSession(roomID, userID, sessionID string) (string, Member, bool) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	r, ok := svc.rooms[roomID]
	if !ok {
		return "", Member{}, false
	}
	for id, m := range r.members {
		if m.UserID == userID && m.SessionID == sessionID {
			return id, m, true
		}
	}
	return "", Member{}, false
}

// ClaimHost grants the host seat only to connections of the room owner.
// Vacant seats are never auto-filled for anyone else.
func (svc *roomService) ClaimHost(roomID, connID, userID string) ClaimResult {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	r, ok := svc.rooms[roomID]
	if !ok || r.ownerID != userID {
		return ClaimResult{}
	}

	wasVacant := r.hostConnID == ""
	r.hostConnID = connID
	return ClaimResult{IsHost: true, WasVacant: wasVacant}
}

func (svc *roomService) IsHost(roomID, connID string) bool {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	r, ok := svc.rooms[roomID]
	return ok && connID != "" && r.hostConnID == connID
}

func (svc *roomService) HostConn(roomID string) (string, bool) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	r, ok := svc.rooms[roomID]
	if !ok || r.hostConnID == "" {
		return "", false
	}
	return r.hostConnID, true
}

// JoinVoice adds a room member to the voice-chat subset. Joining twice from
// the same connection is a no-op re-insert.
func (svc *roomService) JoinVoice(roomID, connID string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	r, ok := svc.rooms[roomID]
	if !ok {
		return false
	}
	m, ok := r.members[connID]
	if !ok {
		return false
	}
	r.voiceMembers[connID] = VoiceParticipant{
		ID:     connID,
		UserID: m.UserID,
		Name:   m.Name,
		DpUrl:  m.DpUrl,
	}
	return true
}

func (svc *roomService) LeaveVoice(roomID, connID string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	r, ok := svc.rooms[roomID]
	if !ok {
		return false
	}
	if _, ok := r.voiceMembers[connID]; !ok {
		return false
	}
	delete(r.voiceMembers, connID)
	return true
}

func (svc *roomService) IsInVoice(roomID, connID string) bool {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	r, ok := svc.rooms[roomID]
	if !ok {
		return false
	}
	_, ok = r.voiceMembers[connID]
	return ok
}

func (svc *roomService) VoiceParticipants(roomID string) []VoiceParticipant {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	r, ok := svc.rooms[roomID]
	if !ok {
		return nil
	}
	out := make([]VoiceParticipant, 0, len(r.voiceMembers))
	for _, p := range r.voiceMembers {
		out = append(out, p)
	}
	return out
}

func (svc *roomService) OtherVoiceParticipants(roomID, exceptConnID string) []VoiceParticipant {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	r, ok := svc.rooms[roomID]
	if !ok {
		return nil
	}
	out := make([]VoiceParticipant, 0, len(r.voiceMembers))
	for id, p := range r.voiceMembers {
		if id == exceptConnID {
			continue
		}
		out = append(out, p)
	}
	return out
}
