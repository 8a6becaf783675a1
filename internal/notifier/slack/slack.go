package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-pairing/internal/metrics"
	"github.com/mauv0809/club-pairing/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendGroupingNotification posts the groups of a committed run to the club channel.
func (s *Notifier) SendGroupingNotification(ctx context.Context, announcement notifier.GroupingAnnouncement, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, s.formatGrouping(announcement), dryRun)
	return err
}

// FormatGroupingResponse returns the Block Kit message without posting it.
func (s *Notifier) FormatGroupingResponse(announcement notifier.GroupingAnnouncement) (any, error) {
	return s.formatGrouping(announcement), nil
}

var pairingTypeLabels = map[string]string{
	"like":      "similar skill",
	"different": "mixed skill",
	"strategic": "strategic mix",
}

// formatGrouping creates the Slack message listing every group using Block Kit.
func (s *Notifier) formatGrouping(a notifier.GroupingAnnouncement) slack.Message {
	blocks := make([]slack.Block, 0, len(a.Groups)+3)

	title := a.GameTitle
	if title == "" {
		title = fmt.Sprintf("Game %d", a.GameID)
	}
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🎾 Groups for %s", title), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	label, ok := pairingTypeLabels[a.PairingType]
	if !ok {
		label = a.PairingType
	}
	summary := fmt.Sprintf("*%d groups* · %s", len(a.Groups), label)
	if a.DayToPlay != "" {
		summary += fmt.Sprintf(" · playing %s", a.DayToPlay)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", summary, false, false), nil, nil))
	blocks = append(blocks, slack.NewDividerBlock())

	if len(a.Groups) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No groups were formed.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for _, g := range a.Groups {
		lines := make([]string, len(g.Members))
		for i, m := range g.Members {
			name := m.Name
			if strings.TrimSpace(name) == "" {
				name = fmt.Sprintf("Member %d", m.UserID)
			}
			lines[i] = fmt.Sprintf("• %s (%s)", name, m.Skill)
		}
		text := fmt.Sprintf("*Group %d*\n%s", g.Number, strings.Join(lines, "\n"))
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil))
	}

	footer := slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("Run `%s`", a.RunID), false, false)
	blocks = append(blocks, slack.NewContextBlock("", footer))

	return slack.NewBlockMessage(blocks...)
}
