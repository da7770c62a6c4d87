package templates

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var ErrInvalidContent = errors.New("invalid block content")

var htmlPolicy = bluemonday.UGCPolicy()

// NormalizeContent checks and cleans block content for its type before the
// block is stored. HTML is sanitized, JSON must parse, placeholders carry no
// inline content.
func NormalizeContent(r *Registry, b *TemplateBlock) error {
	kind, err := r.Lookup(b.Type)
	if err != nil {
		return err
	}

	if kind.Placeholder {
		b.Content = ""
		return nil
	}

	switch b.Type {
	case BlockHTML:
		b.Content = htmlPolicy.Sanitize(b.Content)
	case BlockJSON:
		raw := strings.TrimSpace(b.Content)
		if raw == "" {
			raw = "{}"
		}
		if !json.Valid([]byte(raw)) {
			return fmt.Errorf("%w: block %q is not valid JSON", ErrInvalidContent, b.Name)
		}
		b.Content = raw
	}
	return nil
}
