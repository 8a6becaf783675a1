package http

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mauv0809/club-pairing/internal/auth"
	"github.com/mauv0809/club-pairing/internal/club"
	"github.com/mauv0809/club-pairing/internal/grouping"
	"github.com/mauv0809/club-pairing/internal/metrics"
	"github.com/mauv0809/club-pairing/internal/notifier"
	"github.com/mauv0809/club-pairing/internal/pubsub"
)

// Pairer runs auto-pairing for a game day.
type Pairer interface {
	Run(ctx context.Context, req grouping.Request) (*grouping.Result, error)
}

type Server struct {
	Store          club.ClubStore
	Pairer         Pairer
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Stats          metrics.MetricsStore
	Auth           *auth.Manager
	Notifier       notifier.Notifier
	PubSub         pubsub.PubSubClient
	Router         *http.ServeMux

	validate *validator.Validate
}

// Response is the JSON envelope of every API reply.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

const (
	statusSuccess = "Success"
	statusFailed  = "Failed"
)

type autoPairRequest struct {
	GameID      int64  `json:"gameId" validate:"required,gt=0"`
	PairingType string `json:"pairingType" validate:"required"`
}

type groupPlayersRequest struct {
	UserIDs []int64 `json:"userIds" validate:"required,min=1,max=5,dive,gt=0"`
}

type memberRequest struct {
	ID         int64  `json:"id" validate:"required,gt=0"`
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"max=100"`
	Email      string `json:"email" validate:"omitempty,email"`
	SkillLevel string `json:"skill_level" validate:"required"`
	Role       string `json:"role" validate:"omitempty,oneof=Member Admin Super_Admin"`
}

type gameDayRequest struct {
	Name             string `json:"name" validate:"required,max=100"`
	Title            string `json:"title" validate:"required,max=200"`
	DayToPlay        string `json:"day_to_play" validate:"required,datetime=2006-01-02"`
	InterestDeadline string `json:"interest_deadline" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

type interestRequest struct {
	Interest string `json:"interest" validate:"required,oneof=yes no"`
}

// groupView is a group resolved to member details.
type groupView struct {
	GroupNumber int           `json:"group_number"`
	Members     []club.Member `json:"members"`
}

type autoPairResponse struct {
	RunID       string      `json:"run_id"`
	GameID      int64       `json:"game_id"`
	PairingType string      `json:"pairing_type"`
	Groups      []groupView `json:"groups"`
}

type groupEditResponse struct {
	GameID      int64         `json:"game_id"`
	GroupNumber int           `json:"group_number"`
	Members     []club.Member `json:"members"`
}
