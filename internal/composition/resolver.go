package composition

import (
	"context"
	"fmt"
	"sort"

	"cms-app/internal/domain/pages"
	"cms-app/internal/domain/templates"

	"go.uber.org/zap"
)

// BlockResolver merges page overrides with template defaults. It holds no
// state; caching belongs to the PageInstance.
type BlockResolver struct {
	store BlockStore
	log   *zap.Logger
}

func NewBlockResolver(store BlockStore, log *zap.Logger) *BlockResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &BlockResolver{store: store, log: log}
}

// Resolve returns the effective blocks of p in section, sorted by (order, id).
// An empty section merges every section into one sequence ordered by the
// numeric order only.
func (r *BlockResolver) Resolve(ctx context.Context, p *pages.Page, section string) ([]templates.TemplateBlock, error) {
	overrides, err := r.store.ActivePageBlocks(ctx, p.ID, section)
	if err != nil {
		return nil, fmt.Errorf("load page blocks of page %d: %w", p.ID, err)
	}

	inactive, err := r.store.InactivePageBlockIDs(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("load excluded blocks of page %d: %w", p.ID, err)
	}

	exclude := make([]uint, 0, len(overrides)+len(inactive))
	for _, a := range overrides {
		exclude = append(exclude, a.BlockID)
	}
	exclude = append(exclude, inactive...)

	defaults, err := r.store.TemplateDefaultBlocks(ctx, p.BaseTemplateID, section, exclude)
	if err != nil {
		return nil, fmt.Errorf("load template %d blocks: %w", p.BaseTemplateID, err)
	}

	ordered := mergeAssignments(overrides, defaults, inactive)

	out := make([]templates.TemplateBlock, 0, len(ordered))
	for _, a := range ordered {
		b, err := r.store.TemplateBlock(ctx, a.BlockID)
		if err != nil {
			return nil, fmt.Errorf("load template block %d: %w", a.BlockID, err)
		}
		out = append(out, *b)
	}

	r.log.Debug("resolved page blocks",
		zap.Uint("page_id", p.ID),
		zap.String("section", section),
		zap.Int("overrides", len(overrides)),
		zap.Int("defaults", len(defaults)),
		zap.Int("blocks", len(out)),
	)
	return out, nil
}

// mergeAssignments unions both lists, sorts by (order, block id) and keeps the
// first position of every block. Blocks listed in inactive never survive, even
// if a store returned them as defaults.
func mergeAssignments(overrides, defaults []BlockAssignment, inactive []uint) []BlockAssignment {
	excluded := make(map[uint]struct{}, len(inactive))
	for _, id := range inactive {
		excluded[id] = struct{}{}
	}
	overridden := make(map[uint]struct{}, len(overrides))
	for _, a := range overrides {
		overridden[a.BlockID] = struct{}{}
	}

	pairs := make(map[BlockAssignment]struct{}, len(overrides)+len(defaults))
	for _, a := range overrides {
		pairs[a] = struct{}{}
	}
	for _, a := range defaults {
		if _, ok := overridden[a.BlockID]; ok {
			continue
		}
		if _, ok := excluded[a.BlockID]; ok {
			continue
		}
		pairs[a] = struct{}{}
	}

	sorted := make([]BlockAssignment, 0, len(pairs))
	for a := range pairs {
		sorted = append(sorted, a)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].BlockID < sorted[j].BlockID
	})

	seen := make(map[uint]struct{}, len(sorted))
	out := sorted[:0]
	for _, a := range sorted {
		if _, ok := seen[a.BlockID]; ok {
			continue
		}
		seen[a.BlockID] = struct{}{}
		out = append(out, a)
	}
	return out
}
