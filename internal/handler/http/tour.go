package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nitesh01487/natours/internal/service"
	"github.com/nitesh01487/natours/internal/store"
	"github.com/nitesh01487/natours/models"
)

// topCheapQuery is the fixed query of GET /tours/top-5-cheap.
var topCheapQuery = url.Values{
	"limit":  {"5"},
	"sort":   {"-ratingsAverage,price"},
	"fields": {"name,price,ratingsAverage,summary,difficulty"},
}.Encode()

// aliasTopTours rewrites the query string before the list handler runs.
func aliasTopTours(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r2 := r.Clone(r.Context())
		r2.URL.RawQuery = topCheapQuery
		next(w, r2)
	}
}

func (h *Handler) getTours(w http.ResponseWriter, r *http.Request) {
	q, err := h.listQuery(r, store.TourSchema)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tours, err := h.services.TourService.List(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeList(w, r, q, "tours", tours, len(tours))
}

func (h *Handler) getTour(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tour, err := h.services.TourService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, map[string]any{"tour": tour})
}

func (h *Handler) createTour(w http.ResponseWriter, r *http.Request) {
	var in models.TourInput
	if err := readJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	tour, err := h.services.TourService.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusCreated, map[string]any{"tour": tour})
}

func (h *Handler) updateTour(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in models.TourInput
	if err = readJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	tour, err := h.services.TourService.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, map[string]any{"tour": tour})
}

func (h *Handler) deleteTour(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.TourService.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getTourStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.TourService.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, map[string]any{"stats": stats})
}

func (h *Handler) getMonthlyPlan(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.writeError(w, r, service.ErrInvalidYear)
		return
	}

	plan, err := h.services.TourService.MonthlyPlan(r.Context(), year)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, map[string]any{"plan": plan})
}

func (h *Handler) getToursWithin(w http.ResponseWriter, r *http.Request) {
	distance, err := strconv.ParseFloat(chi.URLParam(r, "distance"), 64)
	if err != nil {
		h.writeError(w, r, errInvalidParam("distance"))
		return
	}
	lat, lng, err := parseLatLng(chi.URLParam(r, "latlng"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	unit := models.DistanceUnit(chi.URLParam(r, "unit"))
	tours, err := h.services.TourService.Within(r.Context(), distance, lat, lng, unit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	n := len(tours)
	h.write(w, r, http.StatusOK, models.Envelope{
		Status:  models.StatusSuccess,
		Results: &n,
		Data:    map[string]any{"data": tours},
	})
}

func (h *Handler) getDistances(w http.ResponseWriter, r *http.Request) {
	lat, lng, err := parseLatLng(chi.URLParam(r, "latlng"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	unit := models.DistanceUnit(chi.URLParam(r, "unit"))
	distances, err := h.services.TourService.Distances(r.Context(), lat, lng, unit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, map[string]any{"data": distances})
}

// parseLatLng reads a "lat,lng" path segment.
func parseLatLng(raw string) (float64, float64, error) {
	latRaw, lngRaw, ok := strings.Cut(raw, ",")
	if !ok {
		return 0, 0, service.ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return 0, 0, service.ErrInvalidCoordinates
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil {
		return 0, 0, service.ErrInvalidCoordinates
	}
	return lat, lng, nil
}
