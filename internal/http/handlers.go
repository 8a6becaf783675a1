package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-pairing/internal/club"
	"github.com/mauv0809/club-pairing/internal/grouping"
	"github.com/samber/lo"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StatsHandler returns the persisted run and notification counters.
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Stats.GetAll()
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, "Stats fetched.", stats)
	}
}

func (s *Server) AutoPairHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req autoPairRequest
		if err := s.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}

		result, err := s.Pairer.Run(r.Context(), grouping.Request{GameID: req.GameID, PairingType: req.PairingType})
		if err != nil {
			writeError(w, err)
			return
		}

		groups := make([]groupView, len(result.Groups))
		for i, g := range result.Groups {
			groups[i] = groupView{GroupNumber: g.Number, Members: s.resolveMembers(r.Context(), g.PlayerIDs())}
		}
		writeSuccess(w, http.StatusOK, "Players grouped successfully.", autoPairResponse{
			RunID:       result.RunID,
			GameID:      result.GameID,
			PairingType: string(result.PairingType),
			Groups:      groups,
		})
	}
}

func (s *Server) GetGroupsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := pathInt64(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}
		if _, err := s.Store.GetGameDay(r.Context(), gameID); err != nil {
			writeError(w, err)
			return
		}
		records, err := s.Store.GetGrouping(r.Context(), gameID)
		if err != nil {
			writeError(w, err)
			return
		}

		groups := lo.Map(records, func(g club.GroupRecord, _ int) groupView {
			return groupView{GroupNumber: g.GroupNumber, Members: s.resolveMembers(r.Context(), g.PlayerIDs)}
		})
		writeSuccess(w, http.StatusOK, "Groups fetched.", groups)
	}
}

func (s *Server) AddPlayersHandler() http.HandlerFunc {
	return s.groupEditHandler("Players added to group.", s.Store.AddPlayersToGroup)
}

func (s *Server) RemovePlayersHandler() http.HandlerFunc {
	return s.groupEditHandler("Players removed from group.", s.Store.RemovePlayersFromGroup)
}

type groupEdit func(ctx context.Context, gameID int64, groupNumber int, userIDs []int64) ([]int64, error)

func (s *Server) groupEditHandler(message string, edit groupEdit) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := pathInt64(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}
		number, err := strconv.Atoi(r.PathValue("number"))
		if err != nil || number <= 0 {
			writeError(w, fmt.Errorf("%w: group number must be a positive integer", errBadRequest))
			return
		}
		var req groupPlayersRequest
		if err := s.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}

		playerIDs, err := edit(r.Context(), gameID, number, req.UserIDs)
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, message, groupEditResponse{
			GameID:      gameID,
			GroupNumber: number,
			Members:     s.resolveMembers(r.Context(), playerIDs),
		})
	}
}

// resolveMembers returns member details in the order of ids. Members that
// cannot be loaded are returned with their id only.
func (s *Server) resolveMembers(ctx context.Context, ids []int64) []club.Member {
	members, err := s.Store.GetMembersByIDs(ctx, ids)
	if err != nil {
		log.Warn("Failed to load member details", "error", err, "ids", ids)
		members = nil
	}
	byID := lo.KeyBy(members, func(m club.Member) int64 { return m.ID })
	return lo.Map(ids, func(id int64, _ int) club.Member {
		if m, ok := byID[id]; ok {
			return m
		}
		return club.Member{ID: id}
	})
}
