package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupVoiceRoom(t *testing.T) (*WsServer, *fakeTransport, string) {
	t.Helper()
	s, tp, svc := newTestServer(t)
	roomID, err := svc.CreateRoom("u1")
	require.NoError(t, err)
	joinRoom(t, s, "c1", roomID, "u1", "s1")
	joinRoom(t, s, "c2", roomID, "u2", "s2")
	tp.reset()
	return s, tp, roomID
}

func TestVcJoinRequiresMembership(t *testing.T) {
	s, tp, _ := setupVoiceRoom(t)

	dispatch(t, s, "cStranger", "vc-join", VoiceRoomRequest{RoomID: "nope"})
	assert.Empty(t, tp.ops)
}

func TestVcJoinRosterFlow(t *testing.T) {
	s, tp, roomID := setupVoiceRoom(t)

	dispatch(t, s, "c1", "vc-join", VoiceRoomRequest{RoomID: roomID})

	o, ok := tp.sentTo("c1", "vc-join-success")
	require.True(t, ok)
	assert.Empty(t, o.body.(VCParticipantsBody).Participants, "first joiner has no peers to call")

	i := tp.eventIndex("room", "vc-state-update")
	require.GreaterOrEqual(t, i, 0)
	require.Len(t, tp.ops[i].body.(VCParticipantsBody).Participants, 1)

	tp.reset()
	dispatch(t, s, "c2", "vc-join", VoiceRoomRequest{RoomID: roomID})

	o, ok = tp.sentTo("c2", "vc-join-success")
	require.True(t, ok)
	peers := o.body.(VCParticipantsBody).Participants
	require.Len(t, peers, 1)
	assert.Equal(t, "c1", peers[0].ID)
	assert.Equal(t, "u1", peers[0].UserID)
}

func TestVcJoinIsIdempotent(t *testing.T) {
	s, tp, roomID := setupVoiceRoom(t)

	dispatch(t, s, "c1", "vc-join", VoiceRoomRequest{RoomID: roomID})
	tp.reset()
	dispatch(t, s, "c1", "vc-join", VoiceRoomRequest{RoomID: roomID})

	i := tp.eventIndex("room", "vc-state-update")
	require.GreaterOrEqual(t, i, 0)
	assert.Len(t, tp.ops[i].body.(VCParticipantsBody).Participants, 1,
		"re-joining must not duplicate the connection in the roster")
}

func TestVcLeave(t *testing.T) {
	s, tp, roomID := setupVoiceRoom(t)

	dispatch(t, s, "c1", "vc-join", VoiceRoomRequest{RoomID: roomID})
	tp.reset()

	dispatch(t, s, "c1", "vc-leave", VoiceRoomRequest{RoomID: roomID})
	i := tp.eventIndex("room", "vc-state-update")
	require.GreaterOrEqual(t, i, 0)
	assert.Empty(t, tp.ops[i].body.(VCParticipantsBody).Participants)

	tp.reset()
	dispatch(t, s, "c1", "vc-leave", VoiceRoomRequest{RoomID: roomID})
	assert.Empty(t, tp.ops, "leaving while not in voice chat broadcasts nothing")
}

func TestVoiceSignalingRelays(t *testing.T) {
	s, tp, _ := setupVoiceRoom(t)

	offer := json.RawMessage(`{"type":"offer","sdp":"v=0"}`)
	dispatch(t, s, "c1", "vc-offer", OfferRelayRequest{To: "c2", Offer: offer})

	o, ok := tp.sentTo("c2", "vc-offer")
	require.True(t, ok)
	body := o.body.(OfferRelayBody)
	assert.Equal(t, "c1", body.From)
	assert.JSONEq(t, string(offer), string(body.Offer))

	answer := json.RawMessage(`{"type":"answer","sdp":"v=0"}`)
	dispatch(t, s, "c2", "vc-answer", AnswerRelayRequest{To: "c1", Answer: answer})
	_, ok = tp.sentTo("c1", "vc-answer")
	assert.True(t, ok)

	cand := json.RawMessage(`{"candidate":"candidate:1"}`)
	dispatch(t, s, "c1", "vc-ice-candidate", CandidateRelayRequest{To: "c2", Candidate: cand})
	_, ok = tp.sentTo("c2", "vc-ice-candidate")
	assert.True(t, ok)
}

func TestVoiceSignalingDropsIncompletePayloads(t *testing.T) {
	s, tp, _ := setupVoiceRoom(t)

	dispatch(t, s, "c1", "vc-offer", OfferRelayRequest{To: "c2"})
	dispatch(t, s, "c1", "vc-offer", OfferRelayRequest{Offer: json.RawMessage(`{}`)})
	dispatch(t, s, "c1", "vc-answer", AnswerRelayRequest{To: "c2"})
	dispatch(t, s, "c1", "vc-ice-candidate", CandidateRelayRequest{To: "c2"})
	assert.Empty(t, tp.ops)
}

func TestVideoSignalingRelays(t *testing.T) {
	s, tp, _ := setupVoiceRoom(t)

	offer := json.RawMessage(`{"type":"offer","sdp":"v=0"}`)
	dispatch(t, s, "c1", "webrtc-offer", OfferRelayRequest{To: "c2", Offer: offer})

	o, ok := tp.sentTo("c2", "webrtc-offer")
	require.True(t, ok)
	assert.Equal(t, "c1", o.body.(OfferRelayBody).From)

	// The video namespace never leaks into the voice namespace.
	_, ok = tp.sentTo("c2", "vc-offer")
	assert.False(t, ok)
}

func TestMalformedEnvelopeBodyIsDropped(t *testing.T) {
	s, tp, _ := setupVoiceRoom(t)

	s.router.dispatch(&ConnContext{ConnID: "c1"}, Envelope{
		Event: "vc-offer",
		Body:  json.RawMessage(`"not an object"`),
	})
	assert.Empty(t, tp.ops)
}

func TestUnknownEventIsDropped(t *testing.T) {
	s, tp, _ := setupVoiceRoom(t)

	dispatch(t, s, "c1", "no-such-event", map[string]string{"x": "y"})
	assert.Empty(t, tp.ops)
}
