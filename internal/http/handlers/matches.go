package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-matrimony/internal/errors"
	"github.com/pribylovaa/go-matrimony/internal/service"
)

func (h *Handlers) ListMatches(w http.ResponseWriter, r *http.Request) {
	p, err := pageParams(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	profileID, err := queryID(r, "profile_id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	q := r.URL.Query()
	resp, err := h.Service.ListMatches(r.Context(), service.MatchFilter{
		PageParams: p,
		Status:     q.Get("status"),
		Band:       q.Get("band"),
		ProfileID:  profileID,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) SuggestMatch(w http.ResponseWriter, r *http.Request) {
	var in SuggestMatchRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	resp, err := h.Service.SuggestMatch(r.Context(), service.SuggestMatchInput{
		Profile1ID: in.Profile1ID,
		Profile2ID: in.Profile2ID,
		Score:      in.Score,
		Breakdown:  in.Breakdown,
		Notes:      in.Notes,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handlers) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.Service.GetMatch(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) UpdateMatchNotes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in MatchNotesRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	resp, err := h.Service.UpdateMatchNotes(r.Context(), service.UpdateMatchNotesInput{
		ID:              id,
		Notes:           in.Notes,
		ExpectedVersion: in.ExpectedVersion,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) DecideMatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in DecisionRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	resp, err := h.Service.DecideMatch(r.Context(), service.DecideMatchInput{
		ID:              id,
		Decision:        in.Decision,
		Note:            in.Note,
		ExpectedVersion: in.ExpectedVersion,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
