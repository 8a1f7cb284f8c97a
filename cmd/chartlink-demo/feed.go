package main

import (
	"context"
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/chartlink/chartlink/internal/memcube"
)

var feedStates = []string{"CA", "NY", "TX", "WA", "OR"}

// runFeed pushes simulated records into the program at the given rate
// until the context is canceled, exercising live-data redraws.
func runFeed(ctx context.Context, p *tea.Program, perSecond float64) error {
	limiter := rate.NewLimiter(rate.Limit(perSecond), 1)
	rng := rand.New(rand.NewSource(rand.Int63()))

	for {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		p.Send(feedMsg{record: memcube.Record{
			"state":  feedStates[rng.Intn(len(feedStates))],
			"year":   int64(2023 + rng.Intn(2)),
			"amount": 1 + rng.Float64()*10,
		}})
	}
}
