package experience

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/SLearnTribe/learntribe-resume-processor/internal/domain"
)

// Reconcile merges the requested items of c with its existing items.
//
// Existing ids that no requested item carries are deleted right away through the context's
// deleter. When nothing was persisted for the kind yet, requested ids are reset so that every
// item is inserted. The requested items then become the context's result. The only error
// returned is one raised by the deleter; in that case no result is set.
func Reconcile[T domain.Experience](ctx context.Context, c *Context[T]) ([]int64, error) {
	existing := c.ExistingItems()
	requested := c.RequestedItems()

	deleted := DeletedIDs(existing, requested)
	if len(deleted) > 0 {
		log.Debug().
			Str("kind", string(c.Kind())).
			Ints64("ids", deleted).
			Msg("deleting experiences missing from request")

		if err := c.DeleteByIDs(ctx, deleted); err != nil {
			return nil, fmt.Errorf("failed to delete %s rows: %w", c.Kind(), err)
		}
	}

	if len(deleted) == 0 && len(existing) == 0 {
		for _, item := range requested {
			item.ResetID()
		}
	}

	result := make([]T, 0, len(requested))
	result = append(result, requested...)
	c.setResult(result)

	return deleted, nil
}

// DeletedIDs returns ids(existing) minus the non-zero ids of requested, ascending.
// An existing id survives only if some requested item carries exactly that id.
func DeletedIDs[T domain.Experience](existing, requested []T) []int64 {
	kept := make(map[int64]struct{}, len(requested))
	for _, item := range requested {
		if id := item.GetID(); id != 0 {
			kept[id] = struct{}{}
		}
	}

	deleted := make([]int64, 0)
	seen := make(map[int64]struct{}, len(existing))
	for _, item := range existing {
		id := item.GetID()
		if id == 0 {
			continue
		}
		if _, ok := kept[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		deleted = append(deleted, id)
	}

	slices.Sort(deleted)
	return deleted
}
