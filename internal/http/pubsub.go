package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-pairing/internal/club"
	"github.com/mauv0809/club-pairing/internal/grouping"
	"github.com/mauv0809/club-pairing/internal/notifier"
	"github.com/mauv0809/club-pairing/internal/pairing"
	"github.com/mauv0809/club-pairing/internal/pubsub"
	"github.com/samber/lo"
)

// GroupingReplacedHandler is the push endpoint of the grouping-replaced
// subscription. It posts the committed groups to Slack.
func (s *Server) GroupingReplacedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received grouping-replaced message", "body", string(bodyBytes))

		var push pubsub.PushRequest
		if err := json.Unmarshal(bodyBytes, &push); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		var event grouping.Event
		if err := s.PubSub.ProcessMessage(push.Message.Data, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		if s.Notifier == nil {
			log.Info("Slack is not configured, skipping grouping announcement", "gameID", event.GameID, "runID", event.RunID)
			w.Write([]byte("OK"))
			return
		}

		announcement, err := s.announcement(r, event)
		if err != nil {
			log.Error("Failed to build grouping announcement", "error", err, "gameID", event.GameID)
			http.Error(w, "Failed to build announcement", http.StatusInternalServerError)
			return
		}
		if err := s.Notifier.SendGroupingNotification(r.Context(), announcement, isDryRunFromContext(r)); err != nil {
			// A non-2xx status makes Pub/Sub redeliver the message.
			http.Error(w, "Failed to send notification", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) announcement(r *http.Request, event grouping.Event) (notifier.GroupingAnnouncement, error) {
	a := notifier.GroupingAnnouncement{
		GameID:      event.GameID,
		PairingType: event.PairingType,
		RunID:       event.RunID,
	}

	day, err := s.Store.GetGameDay(r.Context(), event.GameID)
	switch {
	case err == nil:
		a.GameTitle = day.Title
		a.DayToPlay = day.DayToPlay
	case errors.Is(err, club.ErrNotFound):
		log.Warn("Announcing grouping of unknown game day", "gameID", event.GameID)
	default:
		return a, fmt.Errorf("failed to load game day: %w", err)
	}

	for _, g := range event.Groups {
		members := s.resolveMembers(r.Context(), g.PlayerIDs())
		skills := lo.SliceToMap(g.Members, func(p pairing.Player) (int64, string) { return p.UserID, string(p.Skill) })
		a.Groups = append(a.Groups, notifier.AnnouncedGroup{
			Number: g.Number,
			Members: lo.Map(members, func(m club.Member, _ int) notifier.AnnouncedMember {
				return notifier.AnnouncedMember{
					UserID: m.ID,
					Name:   fullName(m),
					Skill:  skills[m.ID],
				}
			}),
		})
	}
	return a, nil
}

func fullName(m club.Member) string {
	switch {
	case m.FirstName == "":
		return m.LastName
	case m.LastName == "":
		return m.FirstName
	default:
		return m.FirstName + " " + m.LastName
	}
}
