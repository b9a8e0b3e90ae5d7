package http

import (
	"net/http"

	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/store"
	"github.com/nitesh01487/natours/models"
)

func (h *Handler) getCheckoutSession(w http.ResponseWriter, r *http.Request) {
	user, err := principal(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	tourID, err := int64Param(r, "tourId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	session, err := h.services.BookingService.CreateCheckoutIntent(r.Context(), tourID, user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("session", session.ID).Int64("tour", tourID).Msg("checkout session created")
	h.write(w, r, http.StatusOK, struct {
		Status  string                 `json:"status"`
		Session models.CheckoutSession `json:"session"`
	}{models.StatusSuccess, session})
}

func (h *Handler) getBookings(w http.ResponseWriter, r *http.Request) {
	q, err := h.listQuery(r, store.BookingSchema)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	bookings, err := h.services.BookingService.List(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeList(w, r, q, "bookings", bookings, len(bookings))
}

func (h *Handler) getBooking(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	booking, err := h.services.BookingService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, map[string]any{"booking": booking})
}

func (h *Handler) createBooking(w http.ResponseWriter, r *http.Request) {
	var in models.BookingInput
	if err := readJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	booking, err := h.services.BookingService.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusCreated, map[string]any{"booking": booking})
}

func (h *Handler) updateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in models.BookingInput
	if err = readJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	booking, err := h.services.BookingService.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, map[string]any{"booking": booking})
}

func (h *Handler) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.BookingService.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
