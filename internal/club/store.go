package club

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-pairing/internal/pairing"
	"github.com/samber/lo"
)

// Option configures the store.
type Option func(*store)

// WithClock overrides the time source used for deadlines and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *store) { s.now = now }
}

// New creates a new ClubStore.
func New(db *sql.DB, opts ...Option) ClubStore {
	s := &store{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpsertMember inserts a member or updates the profile of an existing one.
func (s *store) UpsertMember(ctx context.Context, member Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	skill, err := pairing.ParseSkillLevel(string(member.SkillLevel))
	if err != nil {
		return err
	}
	role := member.Role
	if role == "" {
		role = RoleMember
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO members (id, first_name, last_name, email, skill_level, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email,
			skill_level = excluded.skill_level,
			role = excluded.role
	`, member.ID, member.FirstName, member.LastName, member.Email, skill, role, s.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert member %d: %w", member.ID, err)
	}
	return nil
}

// GetMembers returns every member ordered by id.
func (s *store) GetMembers(ctx context.Context) ([]Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, first_name, last_name, email, skill_level, role FROM members ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()
	return scanMembers(rows)
}

// GetMembersByIDs returns the members with the given ids. Unknown ids are skipped.
func (s *store) GetMembersByIDs(ctx context.Context, userIDs []int64) ([]Member, error) {
	if len(userIDs) == 0 {
		return []Member{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, first_name, last_name, email, skill_level, role FROM members WHERE id IN (` + placeholders(len(userIDs)) + `) ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, int64Args(userIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query members by ids: %w", err)
	}
	defer rows.Close()
	return scanMembers(rows)
}

func scanMembers(rows *sql.Rows) ([]Member, error) {
	members := []Member{}
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.SkillLevel, &m.Role); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// CreateGameDay stores a new game day. Names are unique.
func (s *store) CreateGameDay(ctx context.Context, day GameDay) (*GameDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM game_days WHERE name = ?`, day.Name).Scan(&existing)
	switch {
	case err == nil:
		return nil, fmt.Errorf("game day %q: %w", day.Name, ErrDuplicate)
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("failed to check game day name: %w", err)
	}

	day.CreatedAt = s.now().UTC().Truncate(time.Second)
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO game_days (name, title, day_to_play, interest_deadline, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, day.Name, day.Title, day.DayToPlay, day.InterestDeadline.Unix(), day.CreatedBy, day.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert game day: %w", err)
	}
	day.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read game day id: %w", err)
	}
	day.InterestDeadline = day.InterestDeadline.UTC().Truncate(time.Second)
	log.Debug("Created game day", "id", day.ID, "name", day.Name)
	return &day, nil
}

const gameDayColumns = `id, name, title, day_to_play, interest_deadline, created_by, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGameDay(row rowScanner) (*GameDay, error) {
	var (
		day                 GameDay
		deadline, createdAt int64
	)
	if err := row.Scan(&day.ID, &day.Name, &day.Title, &day.DayToPlay, &deadline, &day.CreatedBy, &createdAt); err != nil {
		return nil, err
	}
	day.InterestDeadline = time.Unix(deadline, 0).UTC()
	day.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &day, nil
}

// GetGameDay returns the game day with the given id.
func (s *store) GetGameDay(ctx context.Context, gameID int64) (*GameDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getGameDay(ctx, s.db, gameID)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *store) getGameDay(ctx context.Context, q querier, gameID int64) (*GameDay, error) {
	day, err := scanGameDay(q.QueryRowContext(ctx, `SELECT `+gameDayColumns+` FROM game_days WHERE id = ?`, gameID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("game day %d: %w", gameID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game day %d: %w", gameID, err)
	}
	return day, nil
}

// ListGameDays returns all game days, newest first.
func (s *store) ListGameDays(ctx context.Context) ([]GameDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT `+gameDayColumns+` FROM game_days ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query game days: %w", err)
	}
	defer rows.Close()

	days := []GameDay{}
	for rows.Next() {
		day, err := scanGameDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game day: %w", err)
		}
		days = append(days, *day)
	}
	return days, rows.Err()
}

// RecordInterest stores a member's yes/no answer for a game day. Answers can
// be changed until the interest deadline.
func (s *store) RecordInterest(ctx context.Context, gameID, userID int64, interested bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, err := s.getGameDay(ctx, s.db, gameID)
	if err != nil {
		return err
	}
	now := s.now()
	if now.After(day.InterestDeadline) {
		return fmt.Errorf("game day %d closed at %s: %w", gameID, day.InterestDeadline.Format(time.RFC3339), ErrInterestClosed)
	}

	var exists int
	err = s.db.QueryRowContext(ctx, `SELECT 1 FROM members WHERE id = ?`, userID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("member %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to look up member %d: %w", userID, err)
	}

	answer := "no"
	if interested {
		answer = "yes"
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO game_interests (game_id, user_id, interest, responded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(game_id, user_id) DO UPDATE SET
			interest = excluded.interest,
			responded_at = excluded.responded_at
	`, gameID, userID, answer, now.Unix())
	if err != nil {
		return fmt.Errorf("failed to record interest: %w", err)
	}
	return nil
}

// LoadInterestedPlayers returns every member who answered yes for the game,
// with their current skill level.
func (s *store) LoadInterestedPlayers(ctx context.Context, gameID int64) ([]pairing.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.skill_level
		FROM game_interests gi
		JOIN members m ON m.id = gi.user_id
		WHERE gi.game_id = ? AND gi.interest = 'yes'
		ORDER BY gi.responded_at, m.id
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query interested players: %w", err)
	}
	defer rows.Close()

	players := []pairing.Player{}
	for rows.Next() {
		var p pairing.Player
		if err := rows.Scan(&p.UserID, &p.Skill); err != nil {
			return nil, fmt.Errorf("failed to scan interested player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// ReplaceGrouping swaps the stored grouping of a game for groups in a single
// transaction. On error the previous grouping is left untouched.
func (s *store) ReplaceGrouping(ctx context.Context, gameID int64, runID string, groups []pairing.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM game_groups WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("failed to delete previous grouping: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO game_groups (game_id, group_number, player_ids, run_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare group insert: %w", err)
	}
	defer stmt.Close()

	now := s.now().Unix()
	for _, g := range groups {
		ids, err := json.Marshal(g.PlayerIDs())
		if err != nil {
			return fmt.Errorf("failed to marshal group %d: %w", g.Number, err)
		}
		if _, err := stmt.ExecContext(ctx, gameID, g.Number, string(ids), runID, now); err != nil {
			return fmt.Errorf("failed to insert group %d: %w", g.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit grouping: %w", err)
	}
	return nil
}

// GetGrouping returns the stored groups of a game ordered by group number.
func (s *store) GetGrouping(ctx context.Context, gameID int64) ([]GroupRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return loadGroups(ctx, s.db, gameID)
}

type rowsQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func loadGroups(ctx context.Context, q rowsQuerier, gameID int64) ([]GroupRecord, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT game_id, group_number, player_ids, run_id
		FROM game_groups WHERE game_id = ? ORDER BY group_number
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	groups := []GroupRecord{}
	for rows.Next() {
		var (
			g   GroupRecord
			raw string
		)
		if err := rows.Scan(&g.GameID, &g.GroupNumber, &raw, &g.RunID); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &g.PlayerIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal players of group %d: %w", g.GroupNumber, err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// AddPlayersToGroup moves the given users into an existing group, taking
// them out of any other group of the same game. It returns the group's
// resulting player ids.
func (s *store) AddPlayersToGroup(ctx context.Context, gameID int64, groupNumber int, userIDs []int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userIDs = lo.Uniq(userIDs)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var interested int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM game_interests
		WHERE game_id = ? AND interest = 'yes' AND user_id IN (`+placeholders(len(userIDs))+`)
	`, append([]any{gameID}, int64Args(userIDs)...)...).Scan(&interested)
	if err != nil {
		return nil, fmt.Errorf("failed to check interest: %w", err)
	}
	if interested != len(userIDs) {
		return nil, ErrNotInterested
	}

	groups, err := loadGroups(ctx, tx, gameID)
	if err != nil {
		return nil, err
	}
	target, ok := lo.Find(groups, func(g GroupRecord) bool { return g.GroupNumber == groupNumber })
	if !ok {
		return nil, fmt.Errorf("group %d of game %d: %w", groupNumber, gameID, ErrNotFound)
	}

	added := lo.Without(userIDs, target.PlayerIDs...)
	if len(added) == 0 {
		return nil, ErrAlreadyInGroup
	}
	result := append(append([]int64{}, target.PlayerIDs...), added...)
	if len(result) > pairing.MaxGroupSize {
		return nil, ErrGroupFull
	}

	for _, g := range groups {
		if g.GroupNumber == groupNumber {
			continue
		}
		remaining := lo.Without(g.PlayerIDs, added...)
		if len(remaining) == len(g.PlayerIDs) {
			continue
		}
		if err := updateGroupPlayers(ctx, tx, gameID, g.GroupNumber, remaining); err != nil {
			return nil, err
		}
	}
	if err := updateGroupPlayers(ctx, tx, gameID, groupNumber, result); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit group change: %w", err)
	}
	log.Info("Added players to group", "gameID", gameID, "group", groupNumber, "added", added)
	return result, nil
}

// RemovePlayersFromGroup takes the given users out of a group and returns the
// group's remaining player ids.
func (s *store) RemovePlayersFromGroup(ctx context.Context, gameID int64, groupNumber int, userIDs []int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	groups, err := loadGroups(ctx, tx, gameID)
	if err != nil {
		return nil, err
	}
	target, ok := lo.Find(groups, func(g GroupRecord) bool { return g.GroupNumber == groupNumber })
	if !ok {
		return nil, fmt.Errorf("group %d of game %d: %w", groupNumber, gameID, ErrNotFound)
	}

	remaining := lo.Without(target.PlayerIDs, userIDs...)
	if len(remaining) == len(target.PlayerIDs) {
		return nil, fmt.Errorf("none of the players are in group %d: %w", groupNumber, ErrNotFound)
	}
	if err := updateGroupPlayers(ctx, tx, gameID, groupNumber, remaining); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit group change: %w", err)
	}
	log.Info("Removed players from group", "gameID", gameID, "group", groupNumber, "remaining", len(remaining))
	return remaining, nil
}

func updateGroupPlayers(ctx context.Context, tx *sql.Tx, gameID int64, groupNumber int, playerIDs []int64) error {
	raw, err := json.Marshal(playerIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal players of group %d: %w", groupNumber, err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE game_groups SET player_ids = ? WHERE game_id = ? AND group_number = ?`, string(raw), gameID, groupNumber); err != nil {
		return fmt.Errorf("failed to update group %d: %w", groupNumber, err)
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func int64Args(ids []int64) []any {
	return lo.Map(ids, func(id int64, _ int) any { return id })
}
