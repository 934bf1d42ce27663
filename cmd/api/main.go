package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketsmith/internal/analysis"
	"ticketsmith/internal/cache"
	"ticketsmith/internal/cache/disk"
	"ticketsmith/internal/config"
	"ticketsmith/internal/figma"
	"ticketsmith/internal/llm"
	"ticketsmith/internal/orchestrator"
	"ticketsmith/internal/server"
	"ticketsmith/internal/strategy"
	"ticketsmith/internal/template"
)

func main() {
	port := flag.String("port", "", "server port")
	flag.Parse()

	cfg, err := config.Load(config.Overrides{Port: *port})
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	var textClient llm.TextClient
	if cfg.LLM.APIKey != "" {
		cli, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			RPS:     cfg.LLM.RPS,
			Burst:   cfg.LLM.Burst,
			Timeout: cfg.LLM.Timeout,
		})
		if err != nil {
			log.Printf("llm: client init failed, running without AI: %v", err)
		} else {
			textClient = llm.Chain(cli, llm.WithLogging(nil))
			defer textClient.Close()
		}
	} else {
		log.Printf("llm: no API key configured, running without AI")
	}

	engine, err := template.NewEngine()
	if err != nil {
		log.Fatalf("template engine: %v", err)
	}

	durable := buildDurableStore(cfg)
	cacheSvc := cache.NewService(cache.ServiceConfig{
		MemoryEntries: cfg.Cache.MemoryEntries,
		TTL:           cfg.Cache.TTL,
		Durable:       durable,
	})
	defer cacheSvc.Close()

	registry := strategy.NewRegistry(strategy.Deps{LLM: textClient, Templates: engine})
	orch := orchestrator.New(orchestrator.Config{
		Aggregator: analysis.NewAggregator(),
		Registry:   registry,
		Cache:      cacheSvc,
		Capabilities: strategy.Capabilities{
			AIService:      textClient != nil,
			TemplateEngine: true,
		},
		TierTimeout: cfg.LLM.Timeout,
	})

	figmaClient := figma.NewClient(figma.Config{
		Token:   cfg.Figma.Token,
		BaseURL: cfg.Figma.BaseURL,
		Timeout: cfg.Figma.Timeout,
	})

	api := newAPIServer(orch, figmaClient)
	srv := server.New(cfg.Port, server.CORS(buildMux(api)))

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// buildDurableStore picks the first configured durable backend:
// Postgres > S3 > disk > none. A backend that fails to initialize degrades
// to the next option rather than aborting startup.
func buildDurableStore(cfg *config.Config) cache.Store {
	if dsn := cfg.Cache.PostgresDSN; dsn != "" {
		store, err := cache.NewPostgresStore(dsn)
		if err == nil {
			log.Printf("cache: durable backend postgres")
			return store
		}
		log.Printf("cache: postgres backend unavailable: %v", err)
	}
	if cfg.Cache.S3.Endpoint != "" {
		store, err := cache.NewS3Store(cache.S3Config{
			Endpoint:  cfg.Cache.S3.Endpoint,
			Region:    cfg.Cache.S3.Region,
			AccessKey: cfg.Cache.S3.AccessKey,
			SecretKey: cfg.Cache.S3.SecretKey,
			Bucket:    cfg.Cache.S3.Bucket,
			UseSSL:    cfg.Cache.S3.UseSSL,
		})
		if err == nil {
			log.Printf("cache: durable backend s3")
			return store
		}
		log.Printf("cache: s3 backend unavailable: %v", err)
	}
	if root := cfg.Cache.DiskRoot; root != "" {
		store, err := disk.NewStore(disk.Config{Root: root})
		if err == nil {
			log.Printf("cache: durable backend disk at %s", root)
			return store
		}
		log.Printf("cache: disk backend unavailable: %v", err)
	}
	log.Printf("cache: memory-only, no durable backend configured")
	return nil
}
