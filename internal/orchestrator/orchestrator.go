package orchestrator

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"ticketsmith/internal/analysis"
	"ticketsmith/internal/cache"
	"ticketsmith/internal/strategy"
	"ticketsmith/internal/types"
)

// Orchestrator owns the generate path: context aggregation, cache lookup,
// strategy selection, and the fallback cascade. It is the only component a
// caller talks to.
type Orchestrator struct {
	agg         *analysis.Aggregator
	registry    *strategy.Registry
	cache       *cache.Service
	caps        strategy.Capabilities
	tierTimeout time.Duration
	log         *log.Logger
	sf          singleflight.Group
}

type Config struct {
	Aggregator   *analysis.Aggregator
	Registry     *strategy.Registry
	Cache        *cache.Service
	Capabilities strategy.Capabilities
	TierTimeout  time.Duration
	Logger       *log.Logger
}

func New(cfg Config) *Orchestrator {
	if cfg.TierTimeout <= 0 {
		cfg.TierTimeout = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		agg:         cfg.Aggregator,
		registry:    cfg.Registry,
		cache:       cfg.Cache,
		caps:        cfg.Capabilities,
		tierTimeout: cfg.TierTimeout,
		log:         logger,
	}
}

// GenerateTicket always returns a usable result for a valid request. Only a
// ValidationError can surface as an error; every downstream failure is
// absorbed by the cascade.
func (o *Orchestrator) GenerateTicket(ctx context.Context, req *types.GenerationRequest) (types.GenerationResult, error) {
	if err := req.Validate(); err != nil {
		return types.GenerationResult{}, err
	}
	progress := progressFrom(ctx)

	bundle := o.agg.BuildContext(designDataFrom(req), fileContextFrom(req))
	selected := o.registry.Select(req, &bundle, o.caps)
	progress(ProgressEvent{Stage: "selected", Strategy: selected.Name(), Tier: selected.Tier()})

	key := cache.RequestKey(selected.Name(), req)
	if res, ok := o.cache.Get(ctx, key); ok {
		res.Metadata.Cached = true
		progress(ProgressEvent{Stage: "done", Strategy: res.Metadata.StrategyUsed, Cached: true})
		return res, nil
	}

	// One generation per key; concurrent identical requests share the flight.
	v, _, _ := o.sf.Do(key, func() (any, error) {
		res := o.runCascade(ctx, req, &bundle, selected)
		o.cache.Set(ctx, key, res)
		return res, nil
	})
	res := v.(types.GenerationResult)
	progress(ProgressEvent{Stage: "done", Strategy: res.Metadata.StrategyUsed})
	return res, nil
}

// runCascade walks tiers from the selected strategy down. Tier errors are
// retained for logging only; the terminal tier cannot fail.
func (o *Orchestrator) runCascade(ctx context.Context, req *types.GenerationRequest, bundle *types.ContextBundle, selected strategy.Strategy) types.GenerationResult {
	progress := progressFrom(ctx)
	degraded := false

	for _, tier := range o.registry.CascadeFrom(selected) {
		if !tier.Available(o.caps, req, bundle) {
			o.log.Printf("cascade: %s unavailable, advancing", tier.Name())
			degraded = true
			continue
		}
		progress(ProgressEvent{Stage: "attempting", Strategy: tier.Name(), Tier: tier.Tier()})

		tctx, cancel := context.WithTimeout(ctx, o.tierTimeout)
		res, err := tier.Generate(tctx, req, bundle)
		cancel()
		if err != nil {
			o.log.Printf("cascade: %s failed: %v", tier.Name(), err)
			progress(ProgressEvent{Stage: "tier-failed", Strategy: tier.Name(), Tier: tier.Tier(), Error: err.Error()})
			degraded = true
			continue
		}
		res.Metadata.Degraded = degraded
		return res
	}

	// The loop always ends at the emergency tier, which never errors. Keep a
	// literal terminal result in case the registry was constructed empty.
	res, _ := (&strategy.Emergency{}).Generate(ctx, req, bundle)
	res.Metadata.Degraded = true
	return res
}

func designDataFrom(req *types.GenerationRequest) types.DesignData {
	d := types.DesignData{Screenshot: req.Screenshot}
	switch {
	case req.EnhancedFrameData != nil:
		d.Document = req.EnhancedFrameData
	case len(req.FrameData) == 1:
		d.Document = req.FrameData[0]
	case len(req.FrameData) > 1:
		d.Document = &types.FrameNode{Name: "selection", Children: req.FrameData}
	}
	return d
}

func fileContextFrom(req *types.GenerationRequest) types.FileContext {
	if req.FileContext != nil {
		return *req.FileContext
	}
	return types.FileContext{}
}
