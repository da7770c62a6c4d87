package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeContent(t *testing.T) {
	html := TemplateBlock{Type: BlockHTML, Content: `<p>hi</p><script>alert(1)</script>`}
	require.NoError(t, NormalizeContent(DefaultRegistry, &html))
	assert.Equal(t, "<p>hi</p>", html.Content)

	js := TemplateBlock{Type: BlockJSON, Content: ` {"a": 1} `}
	require.NoError(t, NormalizeContent(DefaultRegistry, &js))
	assert.Equal(t, `{"a": 1}`, js.Content)

	empty := TemplateBlock{Type: BlockJSON}
	require.NoError(t, NormalizeContent(DefaultRegistry, &empty))
	assert.Equal(t, "{}", empty.Content)

	bad := TemplateBlock{Name: "broken", Type: BlockJSON, Content: "{nope"}
	assert.ErrorIs(t, NormalizeContent(DefaultRegistry, &bad), ErrInvalidContent)

	ph := TemplateBlock{Type: BlockPublicationContentPlaceholder, Content: "ignored"}
	require.NoError(t, NormalizeContent(DefaultRegistry, &ph))
	assert.Empty(t, ph.Content)

	unknown := TemplateBlock{Type: "video"}
	assert.ErrorIs(t, NormalizeContent(DefaultRegistry, &unknown), ErrUnknownBlockType)
}
