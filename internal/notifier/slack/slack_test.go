package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/club-pairing/internal/metrics"
	"github.com/mauv0809/club-pairing/internal/notifier"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func announcement() notifier.GroupingAnnouncement {
	return notifier.GroupingAnnouncement{
		GameID:      3,
		GameTitle:   "Tuesday club night",
		DayToPlay:   "2026-03-03",
		PairingType: "different",
		RunID:       "run-abc",
		Groups: []notifier.AnnouncedGroup{
			{Number: 1, Members: []notifier.AnnouncedMember{{UserID: 1, Name: "Ana Ruiz", Skill: "Advanced"}, {UserID: 2, Skill: "Beginner"}}},
			{Number: 2, Members: []notifier.AnnouncedMember{{UserID: 3, Name: "Bo Lee", Skill: "Intermediate"}}},
		},
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(context.Background(), message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(context.Background(), message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(context.Background(), slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendGroupingNotification_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())
	require.NoError(t, notifier.SendGroupingNotification(context.Background(), announcement(), false))
	assert.True(t, postMessageCalled)
}

func TestFormatGrouping(t *testing.T) {
	n := NewNotifierWithAPI(nil, "C123", metrics.NewMock())
	msg := n.formatGrouping(announcement())

	// header, summary, divider, two groups, footer
	require.Len(t, msg.Blocks.BlockSet, 6)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "Tuesday club night")

	summary, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, summary.Text.Text, "2 groups")
	assert.Contains(t, summary.Text.Text, "mixed skill")

	group1, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, group1.Text.Text, "*Group 1*")
	assert.Contains(t, group1.Text.Text, "Ana Ruiz (Advanced)")
	assert.Contains(t, group1.Text.Text, "Member 2 (Beginner)", "members without a name fall back to their id")
}

func TestFormatGrouping_NoGroups(t *testing.T) {
	n := NewNotifierWithAPI(nil, "C123", metrics.NewMock())
	a := announcement()
	a.Groups = nil
	a.GameTitle = ""

	msg := n.formatGrouping(a)
	require.Len(t, msg.Blocks.BlockSet, 4)
	header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	assert.Contains(t, header.Text.Text, "Game 3")
}
