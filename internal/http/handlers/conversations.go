package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-matrimony/internal/errors"
	"github.com/pribylovaa/go-matrimony/internal/service"
)

func (h *Handlers) ListConversations(w http.ResponseWriter, r *http.Request) {
	p, err := pageParams(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.Service.ListConversations(r.Context(), p)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) StartConversation(w http.ResponseWriter, r *http.Request) {
	var in StartConversationRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	resp, err := h.Service.StartConversation(r.Context(), service.StartConversationInput{
		ProfileID: in.ProfileID,
		Title:     in.Title,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// GetConversation отдаёт переписку с сообщениями и сбрасывает счётчик непрочитанных.
func (h *Handlers) GetConversation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.Service.GetConversation(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in SendMessageRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	resp, err := h.Service.SendMessage(r.Context(), service.SendMessageInput{
		ConversationID: id,
		SenderID:       in.SenderID,
		FromMatchmaker: in.FromMatchmaker,
		Content:        in.Content,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}
