// Package reconcile holds the product↔tag association reconciler: given a
// product's desired tag set, it computes the minimal delta against the
// persisted product_tags rows and applies it atomically.
package reconcile

import (
	"context"
	"fmt"
	"slices"

	"github.com/Sam-Cowman/E-Commerce/internal/model"
	"github.com/Sam-Cowman/E-Commerce/internal/repository"

	"github.com/rs/zerolog"
)

// Delta is the minimal set of writes that turns one association set into
// another. Identifiers present in both sets appear in neither slice.
type Delta struct {
	Add    []int64
	Remove []int64
}

// Empty reports whether applying the delta would issue zero writes.
func (d Delta) Empty() bool {
	return len(d.Add) == 0 && len(d.Remove) == 0
}

// Diff computes the delta from current to desired. The comparison is
// set-based: duplicates in either input collapse, and the result slices are
// sorted ascending.
func Diff(current, desired []int64) Delta {
	currentSet := toSet(current)
	desiredSet := toSet(desired)

	var d Delta
	for id := range desiredSet {
		if _, ok := currentSet[id]; !ok {
			d.Add = append(d.Add, id)
		}
	}
	for id := range currentSet {
		if _, ok := desiredSet[id]; !ok {
			d.Remove = append(d.Remove, id)
		}
	}

	slices.Sort(d.Add)
	slices.Sort(d.Remove)
	return d
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Reconciler applies tag-set deltas to the product_tags table.
type Reconciler struct {
	repo   repository.ProductTagRepository
	logger zerolog.Logger
}

// New creates a reconciler on top of the given product_tags repository.
func New(repo repository.ProductTagRepository, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		repo:   repo,
		logger: logger.With().Str("component", "reconciler").Logger(),
	}
}

// Reconcile makes the product's persisted tag associations equal the desired
// set. Removals and insertions happen in one transaction: either the full
// delta lands or the persisted set is left exactly as it was. The product
// row is locked for the duration, so reconciliations for the same product
// run one at a time and the current set cannot change under our feet.
//
// Reconcile is idempotent: a second call with the same desired set reads an
// up-to-date current set, computes an empty delta and issues zero writes.
// An empty desired set is a valid request meaning "remove every tag".
func (r *Reconciler) Reconcile(ctx context.Context, productID int64, desiredTagIDs []int64) (err error) {
	tx, err := r.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to reconcile product tags: %w", err)
	}

	// Roll back unless the transaction committed.
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				r.logger.Error().Err(rbErr).Msg("failed to rollback reconciliation")
			}
		}
	}()

	found, err := r.repo.LockProduct(ctx, tx, productID)
	if err != nil {
		return fmt.Errorf("failed to reconcile product tags: %w", err)
	}
	if !found {
		err = model.ErrProductNotFound
		return err
	}

	current, err := r.repo.ListTagIDs(ctx, tx, productID)
	if err != nil {
		return fmt.Errorf("failed to reconcile product tags: %w", err)
	}

	delta := Diff(current, desiredTagIDs)
	if delta.Empty() {
		r.logger.Debug().
			Int64("product_id", productID).
			Int("tag_count", len(current)).
			Msg("tag associations already match, no writes issued")
		err = tx.Commit(ctx)
		return err
	}

	if _, err = r.repo.DeleteByTagIDs(ctx, tx, productID, delta.Remove); err != nil {
		return fmt.Errorf("failed to reconcile product tags: %w", err)
	}

	if err = r.repo.BulkInsert(ctx, tx, productID, delta.Add); err != nil {
		return fmt.Errorf("failed to reconcile product tags: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit tag reconciliation: %w", err)
	}

	r.logger.Info().
		Int64("product_id", productID).
		Int("added", len(delta.Add)).
		Int("removed", len(delta.Remove)).
		Int("unchanged", len(current)-len(delta.Remove)).
		Msg("tag associations reconciled")

	return nil
}
