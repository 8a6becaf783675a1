package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mauv0809/club-pairing/internal/grouping"
	"github.com/mauv0809/club-pairing/internal/pairing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() grouping.Event {
	return grouping.Event{
		RunID:       "run-1",
		GameID:      12,
		PairingType: "like",
		Groups: []pairing.Group{
			{Number: 1, Members: []pairing.Player{{UserID: 1, Skill: pairing.Advanced}, {UserID: 2, Skill: pairing.Advanced}}},
		},
	}
}

func TestGroupingPublisher_SendsOnTopic(t *testing.T) {
	mock := NewMock()
	pub := NewGroupingPublisher(mock)

	require.NoError(t, pub.PublishGroupingReplaced(context.Background(), sampleEvent()))

	require.Len(t, mock.SendMessageCalls, 1)
	assert.Equal(t, string(EventGroupingReplaced), mock.SendMessageCalls[0].Topic)
	assert.Equal(t, sampleEvent(), mock.SendMessageCalls[0].Data)
}

func TestGroupingPublisher_PropagatesError(t *testing.T) {
	boom := errors.New("unavailable")
	mock := NewMock()
	mock.SendMessageFunc = func(EventType, any) error { return boom }

	err := NewGroupingPublisher(mock).PublishGroupingReplaced(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, boom)
}

func TestPushRequest_CarriesMsgpackEvent(t *testing.T) {
	payload, err := Encode(sampleEvent())
	require.NoError(t, err)

	var push PushRequest
	push.Message.Data = payload
	push.Message.MessageID = "42"
	body, err := json.Marshal(push)
	require.NoError(t, err)

	var received PushRequest
	require.NoError(t, json.Unmarshal(body, &received))

	var event grouping.Event
	require.NoError(t, NewMock().ProcessMessage(received.Message.Data, &event))
	assert.Equal(t, sampleEvent(), event)
}

func TestDecode_RejectsGarbage(t *testing.T) {
	var event grouping.Event
	assert.Error(t, Decode([]byte{0xc1}, &event))
}

func TestOfflineClient(t *testing.T) {
	client := NewOffline()
	assert.ErrorIs(t, client.SendMessage(context.Background(), EventGroupingReplaced, sampleEvent()), ErrNotConfigured)

	payload, err := Encode(sampleEvent())
	require.NoError(t, err)
	var event grouping.Event
	require.NoError(t, client.ProcessMessage(payload, &event))
	assert.Equal(t, "run-1", event.RunID)
}
