package club

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/club-pairing/internal/pairing"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicate      = errors.New("already exists")
	ErrInterestClosed = errors.New("interest deadline has passed")
	ErrNotInterested  = errors.New("one or more users are not interested in this game")
	ErrAlreadyInGroup = errors.New("all selected players are already in this group")
	ErrGroupFull      = errors.New("a group cannot have more than 5 players")
)

// store handles all database operations for the club.
type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// Roles recognised by the API.
const (
	RoleMember     = "Member"
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "Super_Admin"
)

// Member is a registered club member.
type Member struct {
	ID         int64              `json:"id"`
	FirstName  string             `json:"first_name"`
	LastName   string             `json:"last_name"`
	Email      string             `json:"email"`
	SkillLevel pairing.SkillLevel `json:"skill_level"`
	Role       string             `json:"role"`
}

// GameDay is a scheduled play day members can express interest in.
type GameDay struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Title            string    `json:"title"`
	DayToPlay        string    `json:"day_to_play"`
	InterestDeadline time.Time `json:"interest_deadline"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}

// GroupRecord is one persisted group of a game day.
type GroupRecord struct {
	GameID      int64   `json:"game_id"`
	GroupNumber int     `json:"group_number"`
	PlayerIDs   []int64 `json:"player_ids"`
	RunID       string  `json:"run_id"`
}
