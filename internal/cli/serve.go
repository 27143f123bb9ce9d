package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/hexfield/booking/devserver"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	var (
		addr string
		tz   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an in-memory calendar API for local development",
		Long: `Serve GET /api/availability and POST /api/meetings from memory.

Weekdays are bookable 9:00-12:00 and 13:00-17:00 in --tz. Bookings are lost
when the server stops.`,
		Example: `  meetchase serve --addr :8080
  meetchase availability --base-url http://localhost:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			loc, err := time.LoadLocation(tz)
			if err != nil {
				return fmt.Errorf("invalid --tz: %w", err)
			}
			s := devserver.New(loc, nil)
			s.Logger = logger.WithPrefix("devserver")

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			logger.Info("serving calendar API", "addr", ln.Addr().String(), "tz", loc.String())
			return serve(ctx, &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}, ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().StringVar(&tz, "tz", "UTC", "IANA time zone of the working hours")
	return cmd
}

// serve runs srv on ln until ctx is cancelled, then shuts it down.
func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
