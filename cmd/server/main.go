package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/outreach-copy-agent/internal/a2a"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/api"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/config"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/copyengine"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/logger"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/profiler"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/website"
)

func main() {
	config.LoadDotEnv()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := config.Load(log)
	if cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []copyengine.Option{
		copyengine.WithWebsite(website.NewAnalyzer(cfg.SiteTimeout, log)),
		copyengine.WithLLMTimeout(cfg.LLMTimeout),
	}

	if cfg.LLMEnabled() {
		geminiClient, err := profiler.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn("gemini client unavailable, using templates only", "error", err)
		} else {
			defer geminiClient.Close()
			opts = append(opts, copyengine.WithLLM(geminiClient))
			log.Info("gemini enabled", "model", cfg.GeminiModel)
		}
	} else {
		log.Info("GEMINI_API_KEY not set, using templates only")
	}

	engine := copyengine.NewEngine(log, opts...)

	router := api.NewRouter(api.RouterConfig{
		Handler:     api.NewHandler(engine, cfg.DefaultCount, log),
		A2AHandler:  a2a.NewHandler(engine, cfg.DefaultCount, log),
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     api.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Outreach Copywriter Agent starting", "port", cfg.Port)
		log.Info("Agent card available", "url", fmt.Sprintf("http://localhost:%s/.well-known/agent.json", cfg.Port))
		log.Info("A2A endpoint available", "url", fmt.Sprintf("http://localhost:%s/a2a/copywriter", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed to start", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return
	}
	log.Info("server exited properly")
}
