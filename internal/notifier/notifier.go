package notifier

import "context"

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For committed auto-pairing runs
	SendGroupingNotification(ctx context.Context, announcement GroupingAnnouncement, dryRun bool) error
	// For previewing a message without posting it
	FormatGroupingResponse(announcement GroupingAnnouncement) (any, error)
}

// GroupingAnnouncement is a committed grouping resolved to member names.
type GroupingAnnouncement struct {
	GameID      int64
	GameTitle   string
	DayToPlay   string
	PairingType string
	RunID       string
	Groups      []AnnouncedGroup
}

// AnnouncedGroup is one group of a GroupingAnnouncement.
type AnnouncedGroup struct {
	Number  int
	Members []AnnouncedMember
}

// AnnouncedMember is a group member as shown to the club.
type AnnouncedMember struct {
	UserID int64
	Name   string
	Skill  string
}
