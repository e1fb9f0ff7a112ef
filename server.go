package main

import (
	"log"

	"github.com/gin-gonic/gin"
)

// ProfileService is the SUBMIT pipeline dependency.
type ProfileService interface {
	FetchProfile(symbol string) CompanyProfile
}

// Forecaster is the FORECAST pipeline dependency.
type Forecaster interface {
	Forecast(req ForecastRequest) (*ForecastResult, error)
}

type WebServer struct {
	metadata  ProfileService
	loader    BarLoader
	engine    Forecaster
	database  *Database
	scheduler *Scheduler
	router    *gin.Engine
}

// NewWebServer wires the full stack from configuration: Yahoo client,
// metadata provider, SQLite cache, forecast engine and routes.
func NewWebServer(cfg *Config, enableScheduler bool) (*WebServer, error) {
	provider, err := NewProfileProvider(cfg)
	if err != nil {
		return nil, err
	}

	database, err := NewDatabase(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	yahoo := NewYahooFinanceClient()
	loader := NewPriceLoader(yahoo, database)

	server := newWebServerWith(
		NewMetadataFetcher(yahoo, provider),
		loader,
		NewForecastEngine(loader),
		database,
	)

	if enableScheduler {
		scheduler, err := NewScheduler(loader, database)
		if err != nil {
			log.Printf("Warning: Failed to initialize scheduler: %v", err)
		} else {
			server.scheduler = scheduler
			scheduler.Start()
		}
	}

	return server, nil
}

// newWebServerWith assembles a server from explicit collaborators.
func newWebServerWith(metadata ProfileService, loader BarLoader, engine Forecaster, database *Database) *WebServer {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	server := &WebServer{
		metadata: metadata,
		loader:   loader,
		engine:   engine,
		database: database,
		router:   router,
	}

	server.setupRoutes()
	return server
}

func (ws *WebServer) setupRoutes() {
	// Serve the dashboard frontend
	ws.router.Static("/static", "./static")
	ws.router.StaticFile("/", "./static/index.html")
	ws.router.StaticFile("/index.html", "./static/index.html")

	// API routes, one per dashboard action
	api := ws.router.Group("/api")
	{
		api.GET("/profile", ws.getProfile)
		api.GET("/prices", ws.getPriceChart)
		api.GET("/indicator", ws.getIndicatorChart)
		api.GET("/forecast", ws.getForecast)
		api.GET("/symbols", ws.getSymbols)
	}
}

func (ws *WebServer) Run(addr string) error {
	log.Printf("Web server starting on %s", addr)
	return ws.router.Run(addr)
}

func (ws *WebServer) Close() {
	if ws.scheduler != nil {
		ws.scheduler.Stop()
	}
	if ws.database != nil {
		ws.database.Close()
	}
}
