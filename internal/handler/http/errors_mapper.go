package http

import (
	"errors"
	"net/http"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/utils"
	"github.com/nitesh01487/natours/models"
)

// msgUnknownError is shown in production for errors outside the apperr
// taxonomy.
const msgUnknownError = "Something went very wrong!"

// writeError renders err as an error envelope. 4xx answers carry status
// "fail", everything else "error". Unknown errors are logged; their text
// only reaches the client outside production.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		err = ErrBodyTooLarge
	}

	status, known := apperr.Status(err)
	envelope := models.ErrorEnvelope{Status: models.StatusError, Message: apperr.Message(err)}
	if status >= 400 && status < 500 {
		envelope.Status = models.StatusFail
	}

	if !known {
		log.Err(err).Str("func", "*Handler.writeError").Str("uri", r.RequestURI).Msg("unexpected error")
		envelope.Message = msgUnknownError
	} else if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", "*Handler.writeError").Int("status", status).Msg("operation failed")
	}

	if !h.app.IsProduction() {
		envelope.Error = err.Error()
		if !known {
			envelope.Message = err.Error()
		}
	}

	if _, writeErr := utils.WriteJSON(w, envelope, status); writeErr != nil {
		log.Err(writeErr).Str("func", "*Handler.writeError").Msg("error writing error response")
	}
}
