package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ticketsmith/internal/cache/memory"
	"ticketsmith/internal/types"
)

// Service is the two-tier ticket cache: a FIFO-bounded in-process map in
// front of an optional durable store. Durable failures degrade to
// memory-only for that operation and never surface to the caller.
type Service struct {
	mem     *memory.FIFOTTL[string, types.GenerationResult]
	durable Store
	ttl     time.Duration
	log     *log.Logger
}

type ServiceConfig struct {
	MemoryEntries int
	TTL           time.Duration
	Durable       Store // may be nil for memory-only caching
	Logger        *log.Logger
}

func NewService(cfg ServiceConfig) *Service {
	if cfg.MemoryEntries <= 0 {
		cfg.MemoryEntries = 256
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		mem:     memory.NewFIFOTTL[string, types.GenerationResult](cfg.MemoryEntries, cfg.TTL),
		durable: cfg.Durable,
		ttl:     cfg.TTL,
		log:     logger,
	}
}

// Get checks the memory tier first, then the durable store. A durable hit
// is backfilled into memory.
func (s *Service) Get(ctx context.Context, key string) (types.GenerationResult, bool) {
	if s == nil {
		return types.GenerationResult{}, false
	}
	if res, ok := s.mem.Get(key); ok {
		return res, true
	}
	if s.durable == nil {
		return types.GenerationResult{}, false
	}
	raw, ok, err := s.durable.Get(ctx, key)
	if err != nil {
		s.log.Printf("cache: durable get failed (%s): %v", s.durable.Name(), err)
		return types.GenerationResult{}, false
	}
	if !ok {
		return types.GenerationResult{}, false
	}
	var res types.GenerationResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		s.log.Printf("cache: durable entry corrupt (%s): %v", s.durable.Name(), err)
		return types.GenerationResult{}, false
	}
	s.mem.Set(key, res)
	return res, true
}

// Set populates both tiers. The durable write is best-effort.
func (s *Service) Set(ctx context.Context, key string, res types.GenerationResult) {
	if s == nil {
		return
	}
	s.mem.Set(key, res)
	if s.durable == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		s.log.Printf("cache: marshal result: %v", err)
		return
	}
	if err := s.durable.SetWithExpiry(ctx, key, string(raw), s.ttl); err != nil {
		s.log.Printf("cache: durable set failed (%s): %v", s.durable.Name(), err)
	}
}

// Size reports the memory-tier occupancy.
func (s *Service) Size() int {
	if s == nil {
		return 0
	}
	return s.mem.Len()
}

// DurableName identifies the configured durable backend, or "none".
func (s *Service) DurableName() string {
	if s == nil || s.durable == nil {
		return "none"
	}
	return s.durable.Name()
}

// TTL exposes the configured entry lifetime.
func (s *Service) TTL() time.Duration {
	if s == nil {
		return 0
	}
	return s.ttl
}

// Close releases the durable backend, if any.
func (s *Service) Close() error {
	if s == nil || s.durable == nil {
		return nil
	}
	return s.durable.Close()
}
