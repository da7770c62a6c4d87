package composition

import (
	"fmt"

	"cms-app/internal/domain/templates"
)

// PlaceholderTypes reports block type capability. *templates.Registry
// satisfies it.
type PlaceholderTypes interface {
	IsPlaceholderType(t templates.BlockType) (bool, error)
}

// FilterPlaceholders keeps the placeholder blocks of blocks, in order. An
// unregistered type fails the whole call.
func FilterPlaceholders(types PlaceholderTypes, blocks []templates.TemplateBlock) ([]templates.TemplateBlock, error) {
	out := make([]templates.TemplateBlock, 0, len(blocks))
	for _, b := range blocks {
		ok, err := types.IsPlaceholderType(b.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", ErrConfiguration, b.ID, err)
		}
		if ok {
			out = append(out, b)
		}
	}
	return out, nil
}
