package composition

import (
	"context"
	"errors"
	"fmt"

	"cms-app/internal/domain/pages"

	"go.uber.org/zap"
)

// RelationSynchronizer keeps the related-pages graph symmetric. It only adds
// missing inverse edges and never touches edges it finds.
type RelationSynchronizer struct {
	log *zap.Logger
}

func NewRelationSynchronizer(log *zap.Logger) *RelationSynchronizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &RelationSynchronizer{log: log}
}

// OnSave creates X -> page for every page -> X edge that has no inverse.
// It does not follow edges of edges. It returns the number of edges created.
func (s *RelationSynchronizer) OnSave(ctx context.Context, store RelationStore, page *pages.Page) (int, error) {
	rels, err := store.RelationsFrom(ctx, page.ID)
	if err != nil {
		return 0, fmt.Errorf("load relations of page %d: %w", page.ID, err)
	}

	created := 0
	for _, rel := range rels {
		target := rel.RelatedPageID

		exists, err := store.RelationExists(ctx, target, page.ID)
		if err != nil {
			return created, fmt.Errorf("check relation %d -> %d: %w", target, page.ID, err)
		}
		if exists {
			continue
		}

		inverse := &pages.PageRelated{PageID: target, RelatedPageID: page.ID, IsActive: true}
		if err := store.InsertRelation(ctx, inverse); err != nil {
			if !errors.Is(err, ErrConstraintViolation) {
				return created, fmt.Errorf("mirror relation %d -> %d: %w", page.ID, target, err)
			}
			// A concurrent save may have inserted the same edge; the
			// unique pair rejected ours. Fine as long as the edge is there.
			exists, checkErr := store.RelationExists(ctx, target, page.ID)
			if checkErr != nil {
				return created, fmt.Errorf("recheck relation %d -> %d: %w", target, page.ID, checkErr)
			}
			if !exists {
				return created, fmt.Errorf("mirror relation %d -> %d: %w", page.ID, target, err)
			}
			continue
		}

		created++
		s.log.Info("mirrored related page",
			zap.Uint("page_id", target),
			zap.Uint("related_page_id", page.ID),
		)
	}
	return created, nil
}

// OnDelete removes the edges pointing at the page. It must run before the
// page row is deleted.
func (s *RelationSynchronizer) OnDelete(ctx context.Context, store RelationStore, pageID uint) error {
	if err := store.DeleteRelationsTo(ctx, pageID); err != nil {
		return fmt.Errorf("delete relations to page %d: %w", pageID, err)
	}
	return nil
}
