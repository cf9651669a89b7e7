package monitor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/quantfeld/ironcondor/internal/marketdata"
	"github.com/quantfeld/ironcondor/internal/util"
)

// batchConcurrency caps concurrent provider lookups during a batch refresh.
const batchConcurrency = 8

// BatchPosition identifies one position in a batch refresh. ID is optional;
// positions submitted without one get a generated identifier.
type BatchPosition struct {
	ID         string  `json:"id"`
	Symbol     string  `json:"symbol"`
	EntryPrice float64 `json:"entry_price"`
}

// BatchUpdate is the refreshed state of one position.
type BatchUpdate struct {
	PositionID   string    `json:"position_id"`
	Symbol       string    `json:"symbol"`
	CurrentPrice float64   `json:"current_price"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BatchResult collects all updates from one refresh.
type BatchResult struct {
	Updates      []BatchUpdate `json:"updates"`
	TotalUpdated int           `json:"total_updated"`
}

// BatchUpdatePositions refreshes current prices for a book of positions.
// Prices come from the supplied market data map first; symbols missing from
// the map fall back to the provider, and to the position's entry price when
// no provider is configured. Lookups fan out concurrently, and results keep
// the input order.
func (m *Monitor) BatchUpdatePositions(
	ctx context.Context,
	positions []BatchPosition,
	marketPrices map[string]float64,
	provider marketdata.Provider,
) (*BatchResult, error) {
	updates := make([]BatchUpdate, len(positions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, pos := range positions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			price, ok := marketPrices[pos.Symbol]
			if !ok && provider != nil {
				fetched, err := provider.CurrentPrice(pos.Symbol)
				if err != nil {
					return err
				}
				price = fetched
				ok = true
			}
			if !ok {
				price = pos.EntryPrice
			}

			id := pos.ID
			if id == "" {
				id = uuid.NewString()
			}

			updates[i] = BatchUpdate{
				PositionID:   id,
				Symbol:       pos.Symbol,
				CurrentPrice: util.Round4(price),
				UpdatedAt:    m.now(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &BatchResult{Updates: updates, TotalUpdated: len(updates)}, nil
}
