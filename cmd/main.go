package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "geiger_console/docs"
	"geiger_console/internal/config"
	"geiger_console/internal/handlers"
	"geiger_console/internal/logger"
	"geiger_console/internal/repository"
	"geiger_console/internal/repository/db"
	"geiger_console/internal/server"
	"geiger_console/internal/service"
	"geiger_console/internal/transport"

	"github.com/jonboulle/clockwork"
)

const shutdownTimeout = 10 * time.Second

// @title       MultiGeiger Console API
// @version     1.0
// @description Live dashboard and configuration console for a MultiGeiger radiation sensor.
// @BasePath    /
func main() {
	cfg, err := config.Load(os.Getenv("GEIGER_CONFIG"))
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	conn, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DBPath, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()
	repos := repository.NewRepository(conn)

	dev := newTransport(cfg, log)
	clock := clockwork.NewRealClock()

	// render sinks: websocket fan-out plus the persisted event log
	hub := handlers.NewHub()
	recorder := service.NewEventRecorder(repos.EventRepo, clock, log)
	sink := service.MultiSink{hub, recorder}

	tracker := service.NewConnectionTracker(sink)
	poller := service.NewPoller(dev, tracker, sink, clock, cfg.Telemetry.PollInterval, log)

	heartbeat := service.NewHeartbeat(dev, clock, cfg.Heartbeat.Interval, !cfg.Device.Mock, log)
	session := service.NewConfigSession(service.NewFormSync(dev, log), heartbeat, dev, recorder, log)

	services := service.NewService(repos, poller, session, service.NewDeviceService(dev, log))
	apiHandler := handlers.NewHandler(services, hub, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recorderDone := make(chan struct{})
	go func() {
		defer close(recorderDone)
		recorder.Run(ctx)
	}()
	if err := poller.Start(ctx); err != nil {
		log.Fatalw("failed to start telemetry poller", "err", err)
	}
	log.Infow("console_started",
		"port", cfg.Port,
		"device", cfg.Device.BaseURL,
		"mock", cfg.Device.Mock,
		"poll_interval", cfg.Telemetry.PollInterval,
	)

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(func() {
		poller.Stop()
		session.Close()
		cancel()
		<-recorderDone
	}, srv, log)
}

// newTransport picks the device backend: fixtures on disk or the device's HTTP API.
func newTransport(cfg *config.Config, log *logger.Logger) transport.Transport {
	if cfg.Device.Mock {
		log.Infow("device_mock_enabled", "fixtures_dir", cfg.Device.FixturesDir)
		return transport.NewFixtureClient(cfg.Device.FixturesDir, log)
	}
	return transport.NewHTTPClient(cfg.Device.BaseURL, cfg.Device.RequestTimeout, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, stops background work, then drains HTTP.
func waitForShutdown(stop func(), srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")
	stop()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
