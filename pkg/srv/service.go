package srv

import (
	"context"
	"time"

	"github.com/sandevgo/redwan/pkg/log"
)

const shutdownTimeout = 5 * time.Second

// Service.Start blocks while the service runs.
type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices runs every Start in its own goroutine. The first Start to
// return, with or without an error, calls stop and ends the run.
func StartServices(ctx context.Context, stop context.CancelFunc, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			defer stop()
			if err := service.Start(ctx); err != nil {
				logger.Error().Err(err).Msgf("%T failed", service)
				return
			}
			logger.Debug().Msgf("%T finished", service)
		}(service)
	}
}

// ShutdownServices waits for ctx to end, then shuts services down in reverse
// order of registration.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	for i := len(services) - 1; i >= 0; i-- {
		service := services[i]
		if err := service.Shutdown(sctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", service)
		}
	}
}
