package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/NathanReed/tempsentry/config"
	"github.com/NathanReed/tempsentry/internal/indicator"
	"github.com/NathanReed/tempsentry/internal/lineproto"
	"github.com/NathanReed/tempsentry/internal/link"
	"github.com/NathanReed/tempsentry/internal/metrics"
	"github.com/NathanReed/tempsentry/internal/mib"
	"github.com/NathanReed/tempsentry/internal/poller"
	"github.com/NathanReed/tempsentry/internal/sensor"
	"github.com/NathanReed/tempsentry/internal/settings"
	"github.com/NathanReed/tempsentry/internal/store"
	"github.com/NathanReed/tempsentry/services/history"
	"github.com/NathanReed/tempsentry/services/telemetry"
)

const (
	DEFAULT_SERVER_PORT            = "8080"
	DEFAULT_LINE_ADDR              = ":8081"
	DEFAULT_CONFIG_FILE_LOCATION   = "./config/config.json"
	DEFAULT_SETTINGS_FILE_LOCATION = "./tempsentry-settings.bin"

	SYSTEM_DESCRIPTION = "tempsentry temperature monitor"
)

// Used by "flag" to read command line arguments
var (
	mockSensor bool
	setupMode  bool
)

type serverConfig struct {
	ServerPort           string
	LineAddr             string
	DatabaseURL          string
	MQTTBroker           string
	UseMockSensor        bool
	SetupMode            bool
	ConfigFileLocation   string
	SettingsFileLocation string

	FileConfig config.Config
	Settings   *settings.Settings
	Sensors    sensor.Sensors
	Store      *store.SensorStore
	Tree       *mib.Tree
	Metrics    *metrics.Metrics
	Poller     *poller.Poller
	Link       link.Provider
	Start      time.Time

	OriginPatterns []string
}

func initializeServerConfig() (serverConfig, error) {
	sc := serverConfig{Start: time.Now()}

	sc.loadConfiguration()

	fileConfig, err := config.LoadConfigSettings(sc.ConfigFileLocation)
	if err != nil {
		slog.Warn("could not load config file, using defaults", "path", sc.ConfigFileLocation, "error", err)
	}

	sc.FileConfig = fileConfig
	sc.OriginPatterns = fileConfig.OriginPatterns

	if fileConfig.SettingsPath != "" {
		sc.SettingsFileLocation = fileConfig.SettingsPath
	}

	sc.Settings = settings.New(&settings.FileStore{Path: sc.SettingsFileLocation})
	sc.Settings.Load()

	sensors, err := sensor.NewSensors(fileConfig.SensorTimeoutSeconds, sc.UseMockSensor)
	if err != nil {
		return sc, fmt.Errorf("failed to initialize sensors: %w", err)
	}

	sc.Sensors = sensors
	sc.Metrics = metrics.New()
	sc.Link = &link.HostProvider{Identity: sc.Settings.SSID}

	sc.discoverSensors()
	sc.buildObjectTree()
	sc.buildPoller()

	return sc, nil
}

func (sc *serverConfig) loadConfiguration() {
	// load the environment
	err := godotenv.Load()
	if err != nil {
		slog.Warn("could not load .env file", "error", err)
	}

	sc.DatabaseURL = os.Getenv("DATABASE_URL")
	sc.MQTTBroker = os.Getenv("MQTT_BROKER")

	sc.ServerPort = os.Getenv("PORT")
	if len(sc.ServerPort) == 0 {
		sc.ServerPort = DEFAULT_SERVER_PORT
	}

	sc.LineAddr = os.Getenv("LINE_ADDR")
	if len(sc.LineAddr) == 0 {
		sc.LineAddr = DEFAULT_LINE_ADDR
	}

	sc.ConfigFileLocation = os.Getenv("CONFIG_FILE_LOCATION")
	if len(sc.ConfigFileLocation) == 0 {
		sc.ConfigFileLocation = DEFAULT_CONFIG_FILE_LOCATION
	}

	sc.SettingsFileLocation = os.Getenv("SETTINGS_FILE_LOCATION")
	if len(sc.SettingsFileLocation) == 0 {
		sc.SettingsFileLocation = DEFAULT_SETTINGS_FILE_LOCATION
	}

	// command line flags for debugging and boot-time setup mode
	sc.UseMockSensor = mockSensor
	sc.SetupMode = setupMode
}

func (sc *serverConfig) discoverSensors() {
	sc.Store = store.New(sc.FileConfig.SensorCapacity)

	addresses, err := sc.Sensors.Discover()
	if err != nil {
		slog.Error("sensor discovery failed, continuing with an empty table", "error", err)
		return
	}

	for _, addr := range addresses {
		if !sc.Store.Add(addr) {
			break
		}
	}

	slog.Info("sensor discovery complete", "found", len(addresses), "tracked", sc.Store.Count())
	sc.Metrics.SensorsConnected.Set(float64(sc.Store.Count()))
}

func (sc *serverConfig) buildObjectTree() {
	location := sc.FileConfig.SystemLocation
	if location == "" {
		location = "unknown"
	}

	description := sc.FileConfig.SystemDescription
	if description == "" {
		description = SYSTEM_DESCRIPTION
	}

	sc.Tree = mib.Build(sc.Store, description, location, sc.Start)
}

func (sc *serverConfig) buildPoller() {
	var driver indicator.Driver
	if sc.FileConfig.ActivityLEDPin != "" && !sc.UseMockSensor {
		driver = &indicator.GPIODriver{Pin: sc.FileConfig.ActivityLEDPin}
	}

	activity := indicator.NewActivity(driver)
	sc.Poller = poller.New(sc.Sensors, sc.Store, activity, sc.Metrics, sc.FileConfig.CycleTicks)
}

// startHistory wires the Postgres recorder when a database is
// configured; without one the monitor simply keeps no history.
func (sc *serverConfig) startHistory(ctx context.Context, mux *http.ServeMux) {
	if sc.DatabaseURL == "" {
		slog.Info("no DATABASE_URL, readings history disabled")
		return
	}

	db, err := sql.Open("postgres", sc.DatabaseURL)
	if err != nil {
		slog.Error("failed to open database connection", "error", err)
		return
	}

	pgStore := history.NewPostgresStore(db)
	if err := pgStore.EnsureSchema(ctx); err != nil {
		slog.Error("failed to prepare readings schema", "error", err)
		return
	}

	historyHandler := history.NewHandler(pgStore)
	historyHandler.RegisterRoutes(mux)
	sc.Poller.OnCycleComplete(historyHandler.RecordCycle)
}

// startTelemetry wires the MQTT publisher when a broker is configured.
func (sc *serverConfig) startTelemetry() {
	if sc.MQTTBroker == "" {
		slog.Info("no MQTT_BROKER, telemetry disabled")
		return
	}

	publisher, err := telemetry.NewPublisher(sc.MQTTBroker, "tempsentry", "tempsentry", sc.Metrics)
	if err != nil {
		slog.Error("failed to connect telemetry publisher", "error", err)
		return
	}

	sc.Poller.OnCycleComplete(publisher.PublishCycle)
}

func (sc *serverConfig) tickPeriod() time.Duration {
	if sc.FileConfig.TickPeriodMS <= 0 {
		return poller.DefaultTickPeriod
	}

	return time.Duration(sc.FileConfig.TickPeriodMS) * time.Millisecond
}

func (sc *serverConfig) idleTimeout() time.Duration {
	if sc.FileConfig.IdleTimeoutSeconds <= 0 {
		return lineproto.DefaultIdleTimeout
	}

	return time.Duration(sc.FileConfig.IdleTimeoutSeconds) * time.Second
}

// runLineServer serves one line-protocol surface until the context is
// canceled.
func (sc *serverConfig) runLineServer(ctx context.Context, table *lineproto.Table, surface string) {
	srv := lineproto.NewServer(surface, table, sc.idleTimeout(), sc.Metrics)

	ln, err := net.Listen("tcp", sc.LineAddr)
	if err != nil {
		slog.Error("failed to listen for line protocol connections", "addr", sc.LineAddr, "error", err)
		return
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	if err := srv.Serve(ln); err != nil {
		slog.Error("line protocol server failed", "surface", surface, "error", err)
	}
}

func (sc *serverConfig) runServer(ctx context.Context, mux *http.ServeMux) {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", sc.ServerPort),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	slog.Info("Starting server", "port", sc.ServerPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed", "error", err)
	}
}
