package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/internal/store"
	"github.com/nitesh01487/natours/internal/utils"
	"github.com/nitesh01487/natours/models"
)

// page is the model of a rendered view, answered as JSON.
type page struct {
	Title string        `json:"title"`
	User  *models.User  `json:"user,omitempty"`
	Tour  *models.Tour  `json:"tour,omitempty"`
	Tours []models.Tour `json:"tours,omitempty"`
}

func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, p page) {
	if user, ok := utils.GetUserFromContext(r.Context()); ok {
		p.User = user
	}
	h.writeData(w, r, http.StatusOK, p)
}

// recordCheckout stores the booking announced by the checkout success
// redirect and sends the browser back to the bare URL. Anyone who knows the
// query format can create a booking this way; a payment webhook should
// replace it.
func (h *Handler) recordCheckout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		tourRaw, userRaw, priceRaw := params.Get("tour"), params.Get("user"), params.Get("price")
		if tourRaw == "" || userRaw == "" || priceRaw == "" {
			next.ServeHTTP(w, r)
			return
		}

		tourID, err := strconv.ParseInt(tourRaw, 10, 64)
		if err != nil {
			h.writeError(w, r, errInvalidParam("tour"))
			return
		}
		userID, err := strconv.ParseInt(userRaw, 10, 64)
		if err != nil {
			h.writeError(w, r, errInvalidParam("user"))
			return
		}
		price, err := strconv.ParseFloat(priceRaw, 64)
		if err != nil {
			h.writeError(w, r, errInvalidParam("price"))
			return
		}

		booking, err := h.services.BookingService.RecordBooking(r.Context(), tourID, userID, price)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		logger.FromRequest(r).Info().Int64("booking", booking.ID).Int64("tour", tourID).Int64("user", userID).Msg("booking recorded from checkout")
		http.Redirect(w, r, r.URL.Path, http.StatusFound)
	})
}

func (h *Handler) overviewPage(w http.ResponseWriter, r *http.Request) {
	q, err := query.Parse(store.TourSchema, nil)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tours, err := h.services.TourService.List(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writePage(w, r, page{Title: "All Tours", Tours: tours})
}

func (h *Handler) tourPage(w http.ResponseWriter, r *http.Request) {
	tour, err := h.services.TourService.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writePage(w, r, page{Title: tour.Name + " Tour", Tour: &tour})
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, page{Title: "Log into your account"})
}

func (h *Handler) accountPage(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, page{Title: "Your account"})
}

func (h *Handler) myToursPage(w http.ResponseWriter, r *http.Request) {
	user, err := principal(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tours, err := h.services.TourService.BookedBy(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writePage(w, r, page{Title: "My Tours", Tours: tours})
}
