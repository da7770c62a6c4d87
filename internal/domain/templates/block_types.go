package templates

import (
	"errors"
	"fmt"
	"sort"
)

// RegistryVersion is bumped whenever a block type is added, removed or
// changes capability.
const RegistryVersion = 1

type BlockType string

const (
	BlockPublicationContentPlaceholder BlockType = "publication_content_placeholder"
	BlockHTML                          BlockType = "html"
	BlockJSON                          BlockType = "json"
)

// ErrUnknownBlockType is returned for a type tag outside the registry.
var ErrUnknownBlockType = errors.New("unknown block type")

// BlockKind describes one registered block type.
type BlockKind struct {
	Type  BlockType
	Label string
	// Placeholder blocks get their content from outside the block row,
	// e.g. from the publications attached to the page.
	Placeholder bool
}

// Registry is a closed set of block kinds.
type Registry struct {
	kinds map[BlockType]BlockKind
}

// DefaultRegistry holds every block type the CMS ships with.
var DefaultRegistry = NewRegistry(
	BlockKind{Type: BlockPublicationContentPlaceholder, Label: "Publication Content Placeholder", Placeholder: true},
	BlockKind{Type: BlockHTML, Label: "HTML Block"},
	BlockKind{Type: BlockJSON, Label: "JSON Block"},
)

func NewRegistry(kinds ...BlockKind) *Registry {
	r := &Registry{kinds: make(map[BlockType]BlockKind, len(kinds))}
	for _, k := range kinds {
		r.kinds[k.Type] = k
	}
	return r
}

func (r *Registry) Lookup(t BlockType) (BlockKind, error) {
	k, ok := r.kinds[t]
	if !ok {
		return BlockKind{}, fmt.Errorf("%w: %q", ErrUnknownBlockType, string(t))
	}
	return k, nil
}

// IsPlaceholderType reports whether blocks of type t are placeholders.
func (r *Registry) IsPlaceholderType(t BlockType) (bool, error) {
	k, err := r.Lookup(t)
	if err != nil {
		return false, err
	}
	return k.Placeholder, nil
}

// Kinds returns the registered kinds sorted by type tag.
func (r *Registry) Kinds() []BlockKind {
	out := make([]BlockKind, 0, len(r.kinds))
	for _, k := range r.kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
