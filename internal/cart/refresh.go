package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/nmorales/distromart-storefront/pkg/db/models"
	pkgerrors "github.com/nmorales/distromart-storefront/pkg/errors"
	"github.com/nmorales/distromart-storefront/pkg/quantity"
)

const refreshWorkers = 8

// Refresh re-reads the catalog record behind every line and updates the stored
// snapshot (price, name, stock and backorder fields). Lookup failures are
// isolated: the line keeps its stale snapshot and the rest of the cart still
// refreshes. A line whose held quantity now exceeds its cap gets a limit
// notice but is never silently re-clamped; the user resolves it.
func (s *service) Refresh(ctx context.Context, customerID uuid.UUID) (*View, error) {
	cart, err := s.find(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Lines) == 0 {
		return emptyView(), nil
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		sem     = make(chan struct{}, refreshWorkers)
		lookups error
		changed []*models.CartLine
	)

	for i := range cart.Lines {
		line := &cart.Lines[i]
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			product, err := s.products.GetProduct(ctx, line.ProductID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				lookups = multierr.Append(lookups, fmt.Errorf("product %s: %w", line.ProductID, err))
				return
			}
			snapshotLine(line, product)
			changed = append(changed, line)
		}()
	}
	wg.Wait()

	if lookups != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", lookups.Error()), "cart snapshot refresh had stale lines")
	}

	if len(changed) > 0 {
		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			for _, line := range changed {
				if err := repo.SaveLine(ctx, line); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist refreshed snapshots")
		}
	}

	notices := map[uuid.UUID]string{}
	for i := range cart.Lines {
		line := &cart.Lines[i]
		if max, bounded := quantity.Max(lineLimits(line)); bounded && line.Quantity > max {
			notices[line.ProductID] = fmt.Sprintf("Maximum allowed quantity is %d", max)
		}
	}

	return buildView(cart, notices), nil
}
