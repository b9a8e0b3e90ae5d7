package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/internal/store"
	"github.com/nitesh01487/natours/models"
)

// reviewTourColumn scopes nested review lists to one tour.
const reviewTourColumn = "r.tour_id"

// nestedTourID returns the tour of /tours/{tourId}/reviews, or 0 when the
// review routes are reached directly.
func nestedTourID(r *http.Request) (int64, error) {
	if chi.URLParam(r, "tourId") == "" {
		return 0, nil
	}
	return int64Param(r, "tourId")
}

func (h *Handler) getReviews(w http.ResponseWriter, r *http.Request) {
	q, err := h.listQuery(r, store.ReviewSchema)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tourID, err := nestedTourID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if tourID != 0 {
		q = q.WithFilter(query.Eq(reviewTourColumn, tourID))
	}

	reviews, err := h.services.ReviewService.List(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeList(w, r, q, "reviews", reviews, len(reviews))
}

func (h *Handler) getReview(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	review, err := h.services.ReviewService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, map[string]any{"review": review})
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	author, err := principal(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in models.ReviewInput
	if err = readJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	// the nested path wins over the body
	tourID, err := nestedTourID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if tourID != 0 {
		in.TourID = &tourID
	}

	review, err := h.services.ReviewService.Create(r.Context(), author, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusCreated, map[string]any{"review": review})
}

func (h *Handler) updateReview(w http.ResponseWriter, r *http.Request) {
	user, err := principal(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := int64Param(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in models.ReviewInput
	if err = readJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	review, err := h.services.ReviewService.Update(r.Context(), user, id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, map[string]any{"review": review})
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	user, err := principal(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := int64Param(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.ReviewService.Delete(r.Context(), user, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
