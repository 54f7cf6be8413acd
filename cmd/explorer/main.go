// Command explorer drives a scripted browse session against a backend,
// logging every state transition the render layer would observe. Useful
// for watching the debounce, cache and prefetch behavior live against
// cmd/mockbackend.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/example/contract-explorer/internal/api"
	"github.com/example/contract-explorer/internal/cache"
	"github.com/example/contract-explorer/internal/config"
	"github.com/example/contract-explorer/internal/domain"
	"github.com/example/contract-explorer/internal/explorer"
	"github.com/example/contract-explorer/internal/sched"
	"github.com/example/contract-explorer/internal/urlstate"
)

func main() {
	cfg, err := config.LoadEngine()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, logger)
	store := urlstate.NewHistory("")
	qc := cache.New(cfg.StaleTime, cfg.Retention, sched.NewClock(), logger)

	eng := explorer.New(ctx, explorer.Options{
		Entity:         domain.EntityVendors,
		Store:          store,
		Fetcher:        client,
		Cache:          qc,
		DebounceWindow: cfg.DebounceWindow,
		MinSearchLen:   cfg.MinSearchLen,
		PrefetchDelay:  cfg.PrefetchDelay,
		PageSize:       cfg.PageSize,
		NewTimer:       sched.NewTimer,
		Logger:         logger,
	})
	defer eng.Close()

	eng.OnChange(func() {
		snap := eng.Snapshot()
		total := 0
		if snap.Pagination != nil {
			total = snap.Pagination.Total
		}
		logger.Info("snapshot",
			zap.String("key", string(snap.Key)),
			zap.Int("rows", len(snap.Rows)),
			zap.Int("total", total),
			zap.Bool("loading", snap.Loading),
			zap.Bool("revalidating", snap.Revalidating),
			zap.String("search_live", snap.Search.Live),
			zap.String("preset", snap.ActivePreset),
			zap.Error(snap.Err),
		)
	})

	// Scripted session: deep-link mount, a typing burst, a preset, a
	// hover that fires, pagination, then a manual tweak that drops the
	// preset highlight.
	eng.Hydrate()
	step(ctx, 500*time.Millisecond)

	for _, partial := range []string{"g", "gr", "gru", "grup", "grupo"} {
		eng.Keystroke(partial)
		step(ctx, 80*time.Millisecond)
	}
	step(ctx, cfg.DebounceWindow+200*time.Millisecond)

	if err := eng.ApplyPreset("highest_risk"); err != nil {
		logger.Warn("preset", zap.Error(err))
	}
	step(ctx, 500*time.Millisecond)

	cancelHover := eng.HoverPage(2)
	step(ctx, cfg.PrefetchDelay+100*time.Millisecond)
	cancelHover() // already fired; no-op

	eng.SetPage(2)
	step(ctx, 500*time.Millisecond)

	if err := eng.SetFilter("min_contracts", "10"); err != nil {
		logger.Warn("filter", zap.Error(err))
	}
	step(ctx, 500*time.Millisecond)

	if store.Back() {
		logger.Info("navigated back", zap.String("address", store.Raw()))
	}
	step(ctx, 500*time.Millisecond)

	logger.Info("session complete", zap.Int("history_entries", store.Len()), zap.Int("cached_keys", qc.Len()))
}

func step(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
