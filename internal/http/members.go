package http

import (
	"net/http"
	"time"

	"github.com/mauv0809/club-pairing/internal/club"
	"github.com/mauv0809/club-pairing/internal/pairing"
)

func (s *Server) UpsertMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req memberRequest
		if err := s.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		member := club.Member{
			ID:         req.ID,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      req.Email,
			SkillLevel: pairing.SkillLevel(req.SkillLevel),
			Role:       req.Role,
		}
		if err := s.Store.UpsertMember(r.Context(), member); err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, "Member saved.", nil)
	}
}

func (s *Server) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := s.Store.GetMembers(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, "Members fetched.", members)
	}
}

func (s *Server) CreateGameDayHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req gameDayRequest
		if err := s.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		// The layout has already been checked by the validator.
		deadline, _ := time.Parse(time.RFC3339, req.InterestDeadline)

		createdBy := ""
		if claims := claimsFromContext(r); claims != nil {
			createdBy = claims.Subject
		}
		day, err := s.Store.CreateGameDay(r.Context(), club.GameDay{
			Name:             req.Name,
			Title:            req.Title,
			DayToPlay:        req.DayToPlay,
			InterestDeadline: deadline,
			CreatedBy:        createdBy,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, http.StatusCreated, "Game day created.", day)
	}
}

func (s *Server) ListGameDaysHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := s.Store.ListGameDays(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, "Game days fetched.", days)
	}
}

// RecordInterestHandler stores the caller's own answer for a game day.
func (s *Server) RecordInterestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := pathInt64(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}
		var req interestRequest
		if err := s.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		claims := claimsFromContext(r)
		if err := s.Store.RecordInterest(r.Context(), gameID, claims.UserID, req.Interest == "yes"); err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, "Interest recorded.", nil)
	}
}
