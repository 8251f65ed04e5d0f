package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-matrimony/internal/errors"
	"github.com/pribylovaa/go-matrimony/internal/service"
)

// ComposeIntroduction — черновик текста знакомства; состояние не меняется.
func (h *Handlers) ComposeIntroduction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.Service.ComposeIntroduction(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// SendIntroduction — знакомство по паре {id}; тело необязательно.
func (h *Handlers) SendIntroduction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in SendIntroductionRequest
	if err := decodeOptional(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	req := service.SendIntroductionInput{
		MatchID:         id,
		Message:         in.Message,
		ExpectedVersion: in.ExpectedVersion,
	}

	send := h.Service.SendIntroduction
	if in.Queue {
		send = h.Service.QueueIntroduction
	}

	resp, err := send(r.Context(), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handlers) ListIntroductions(w http.ResponseWriter, r *http.Request) {
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

	resp, err := h.Service.ListIntroductions(r.Context(), service.IntroductionFilter{
		PageParams: p,
		Status:     r.URL.Query().Get("status"),
		ProfileID:  profileID,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) GetIntroduction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.Service.GetIntroduction(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) RespondIntroduction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in RespondIntroductionRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	resp, err := h.Service.RespondIntroduction(r.Context(), service.RespondIntroductionInput{
		ID:              id,
		ProfileID:       in.ProfileID,
		Response:        in.Response,
		ExpectedVersion: in.ExpectedVersion,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) CompleteIntroduction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in CompleteIntroductionRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	resp, err := h.Service.CompleteIntroduction(r.Context(), service.CompleteIntroductionInput{
		ID:              id,
		Outcome:         in.Outcome,
		ExpectedVersion: in.ExpectedVersion,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) DispatchIntroduction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in DispatchIntroductionRequest
	if err := decodeOptional(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	resp, err := h.Service.DispatchIntroduction(r.Context(), id, in.ExpectedVersion)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
