package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/internal/utils"
	"github.com/nitesh01487/natours/models"
)

// readJSON decodes the request body into dst. An empty body leaves dst
// untouched.
func readJSON(r *http.Request, dst any) error {
	err := utils.ReadJSON(r, dst)
	if err == nil || errors.Is(err, utils.ErrEmptyBody) {
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return ErrBodyTooLarge
	}

	logger.FromRequest(r).Debug().Err(err).Str("func", "readJSON").Msg("invalid JSON body")
	return ErrInvalidJSON
}

// int64Param reads a positive integer path parameter.
func int64Param(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidParam(name)
	}
	return id, nil
}

// listQuery parses filter, sort, fields and paging parameters of a list
// request against schema.
func (h *Handler) listQuery(r *http.Request, schema query.Schema) (query.Query, error) {
	q, err := query.Parse(schema, r.URL.Query())
	if err != nil {
		return query.Query{}, err
	}
	return q.WithStrictPaging(h.app.StrictPagination), nil
}

// writeData answers with a success envelope around data.
func (h *Handler) writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	h.write(w, r, status, models.Envelope{Status: models.StatusSuccess, Data: data})
}

// writeList answers with a success envelope carrying the result count and
// the projected documents.
func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, q query.Query, key string, docs any, n int) {
	projected, err := q.Project(docs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.write(w, r, http.StatusOK, models.Envelope{
		Status:  models.StatusSuccess,
		Results: &n,
		Data:    map[string]any{key: projected},
	})
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, status int, body any) {
	if _, err := utils.WriteJSON(w, body, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.write").Msg("error writing response")
	}
}
