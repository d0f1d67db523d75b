package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/NathanReed/tempsentry/config"
	"github.com/NathanReed/tempsentry/services/health"
	"github.com/NathanReed/tempsentry/services/mgmt"
	"github.com/NathanReed/tempsentry/services/setup"
	"github.com/NathanReed/tempsentry/services/status"
	"github.com/NathanReed/tempsentry/services/statuspage"
	"github.com/NathanReed/tempsentry/services/temperatures"
)

func main() {
	flag.BoolVar(&mockSensor, "mock", false, "use the mock sensor bus")
	flag.BoolVar(&setupMode, "setup", false, "start in setup mode and serve the configuration portal")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: config.DefaultLogLevel}))
	slog.SetDefault(logger)

	sc, err := initializeServerConfig()
	if err != nil {
		slog.Error("failed to initialize server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()

	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(mux)

	temperatureHandler := temperatures.NewHandler(sc.Store)
	temperatureHandler.RegisterRoutes(mux)

	mgmtHandler := mgmt.NewHandler(sc.Tree)
	mgmtHandler.RegisterRoutes(mux)

	statusHandler := status.NewHandler(sc.Store, sc.Link, sc.Start, sc.OriginPatterns)
	statusHandler.RegisterRoutes(mux)

	sc.Metrics.RegisterRoutes(mux)

	if sc.SetupMode {
		// setup mode serves the configuration portal instead of the
		// status page and does not poll; changes apply on restart
		slog.Info("starting in setup mode", "line_addr", sc.LineAddr)
		setupHandler := setup.NewHandler(sc.Settings)
		go sc.runLineServer(ctx, setupHandler.Table(), "setup")
	} else {
		sc.startHistory(ctx, mux)
		sc.startTelemetry()

		go sc.Poller.Run(ctx, sc.tickPeriod())

		statusPageHandler := statuspage.NewHandler(sc.Store, sc.Link)
		go sc.runLineServer(ctx, statusPageHandler.Table(), "status")
	}

	sc.runServer(ctx, mux)
}
