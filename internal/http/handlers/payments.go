package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-matrimony/internal/errors"
	"github.com/pribylovaa/go-matrimony/internal/service"
)

// ListPayments — ведомость платежей; stats считаются по всему фильтру, а не по странице.
func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	p, err := pageParams(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	q := r.URL.Query()
	resp, err := h.Service.ListPayments(r.Context(), service.PaymentFilter{
		PageParams: p,
		Status:     q.Get("status"),
		Type:       q.Get("type"),
		Currency:   q.Get("currency"),
		Method:     q.Get("method"),
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var in RecordPaymentRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	resp, err := h.Service.RecordPayment(r.Context(), in.toInput())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handlers) TransitionPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in PaymentStatusRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument())
		return
	}

	resp, err := h.Service.TransitionPayment(r.Context(), id, in.Status, in.Note)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
