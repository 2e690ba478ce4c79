package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/user/recipefinder-go/logging"
)

// ShutdownTimeout bounds how long in-flight requests get once a stop is requested.
const ShutdownTimeout = 30 * time.Second

// Run serves handler on :port until ctx is cancelled, then shuts the server down
// gracefully. It returns nil after a clean shutdown.
func Run(ctx context.Context, port string, handler http.Handler, log logging.Logger) error {
	// `http.Server` provides more control over server behavior than `http.ListenAndServe`.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(context.Background(), "server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info(context.Background(), "server stopped gracefully")
	return nil
}
