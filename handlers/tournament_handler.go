package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tournament-engine/services"
	"github.com/go-chi/chi/v5"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts}
}

// RegenerateHandler handles POST /tournaments/{tournamentID}/structure
func (h *TournamentHandler) RegenerateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	structure, err := h.tournamentService.RegenerateStructure(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"structure": structure}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ScheduleHandler handles GET /tournaments/{tournamentID}/schedule
func (h *TournamentHandler) ScheduleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.tournamentService.GetSchedule(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StandingsHandler handles GET /tournaments/{tournamentID}/groups/{group}/standings
func (h *TournamentHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	group := chi.URLParam(r, "group")
	if group == "" {
		badRequestResponse(w, r, errors.New("missing group in URL path"))
		return
	}

	table, err := h.tournamentService.GetStandings(r.Context(), id, group)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// QualifiersHandler handles GET /tournaments/{tournamentID}/qualifiers
func (h *TournamentHandler) QualifiersHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	qualifiers, err := h.tournamentService.GetQualifiers(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"qualifiers": qualifiers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
