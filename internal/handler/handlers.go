package handler

import (
	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/handler/http"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if services == nil {
		return nil, errNoServices
	}
	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg.App, cfg.Server, logger),
	}, nil
}
