package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	server "github.com/BrunoKrugel/brevo-mcp"
	"github.com/BrunoKrugel/brevo-mcp/internal/config"
	"github.com/BrunoKrugel/brevo-mcp/pkg/brevo"
	"github.com/BrunoKrugel/brevo-mcp/pkg/swagger"
	"github.com/BrunoKrugel/brevo-mcp/pkg/tools"
	"github.com/BrunoKrugel/brevo-mcp/pkg/transport"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to the YAML config file (optional)")
	transportFlag := flag.String("transport", "", "Transport to serve: stdio or http (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	if *transportFlag != "" {
		cfg.Server.Transport = *transportFlag
		if err := cfg.Validate(); err != nil {
			log.WithError(err).Fatal("Invalid transport")
		}
	}

	if err := config.SetupLogging(cfg.Log); err != nil {
		log.WithError(err).Fatal("Failed to configure logging")
	}

	if cfg.Brevo.APIKey == "" {
		log.Warn("BREVO_API_KEY is not set, tools can be listed but calls will fail")
	}

	client := brevo.NewClient(&brevo.Config{
		APIKey:     cfg.Brevo.APIKey,
		BaseURL:    cfg.Brevo.BaseURL,
		Timeout:    cfg.Brevo.Timeout,
		MaxRetries: cfg.Brevo.MaxRetries,
	})

	mcp := server.NewWithConfig(&server.Config{
		Name:         cfg.Server.Name,
		Version:      cfg.Server.Version,
		Description:  cfg.Server.Description,
		Instructions: cfg.Server.Instructions,
	})
	if err := tools.Register(mcp, client); err != nil {
		log.WithError(err).Fatal("Failed to register tools")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Server.Transport {
	case config.TransportHTTP:
		err = serveHTTP(ctx, cfg, mcp, client)
	default:
		err = mcp.ServeStdio(ctx, os.Stdin, os.Stdout)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("Server stopped")
	}
	log.Info("Server stopped")
}

func serveHTTP(ctx context.Context, cfg *config.Config, mcp *server.BrevoMCP, client *brevo.Client) error {
	doc, err := swagger.Build(swagger.SwaggerInfo{
		Title:       cfg.Server.Name,
		Version:     cfg.Server.Version,
		Description: cfg.Server.Description,
	}, tools.Routes())
	if err != nil {
		return err
	}
	swagger.Publish(doc)

	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = transport.SonicSerializer{}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Skipper: func(c echo.Context) bool {
			return strings.Contains(c.Request().URL.Path, "swagger") || c.Request().URL.Path == cfg.Server.MountPath
		},
	}))

	tools.RegisterRoutes(e, client)

	// Register Swagger
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler())

	// Mount the MCP server endpoint
	if err := mcp.Mount(e, cfg.Server.MountPath); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("[HTTP] listening")
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
