package sim

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/magefree/goldfish-go/internal/card"
	"github.com/magefree/goldfish-go/internal/game"
	"github.com/magefree/goldfish-go/internal/game/rng"
)

// Batch is the output of one runner invocation: every game result in run
// order, tagged with a fresh batch id for persistence.
type Batch struct {
	ID       uuid.UUID
	BaseSeed uint64
	Results  []game.Result
	Elapsed  time.Duration
}

// Runner maps a seed range over a goroutine worker pool, one full game per
// task. Games share only the read-only deck and catalog, so results are
// independent of worker count and scheduling.
type Runner struct {
	Deck    []card.Card
	Catalog *card.Catalog

	BaseSeed uint64
	Runs     int
	// Workers is the pool size; values below 1 use GOMAXPROCS.
	Workers   int
	TurnLimit int

	Logger *zap.Logger
	// Progress, when set, is called after every finished game with the
	// completed and total counts. It may run on any worker goroutine.
	Progress func(done, total int)
}

// Run executes the batch. Results are ordered by run index regardless of
// which worker finished first, so a batch is a pure function of
// (deck, base seed, run count).
func (r *Runner) Run(ctx context.Context) (*Batch, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := r.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > r.Runs {
		workers = r.Runs
	}

	logger.Info("starting batch",
		zap.Int("runs", r.Runs),
		zap.Uint64("base_seed", r.BaseSeed),
		zap.Int("workers", workers),
	)

	start := time.Now()
	results := make([]game.Result, r.Runs)
	jobs := make(chan int)
	var done atomic.Int64

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				seed := rng.DeriveSeed(r.BaseSeed, i)
				results[i] = game.RunGame(r.Deck, seed, r.Catalog, game.Options{
					TurnLimit: r.TurnLimit,
				})
				if r.Progress != nil {
					r.Progress(int(done.Add(1)), r.Runs)
				} else {
					done.Add(1)
				}
			}
		}()
	}

	var err error
feed:
	for i := 0; i < r.Runs; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}

	batch := &Batch{
		ID:       uuid.New(),
		BaseSeed: r.BaseSeed,
		Results:  results,
		Elapsed:  time.Since(start),
	}
	logger.Info("batch finished",
		zap.String("batch_id", batch.ID.String()),
		zap.Duration("elapsed", batch.Elapsed),
	)
	return batch, nil
}
