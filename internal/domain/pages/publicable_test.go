package pages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsPublicable(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	base := Page{IsActive: true, State: StatePublished, DateStart: yesterday}

	tests := []struct {
		name string
		mut  func(p *Page)
		want bool
	}{
		{"open window", func(p *Page) {}, true},
		{"ended yesterday", func(p *Page) { p.DateEnd = &yesterday }, false},
		{"ends tomorrow", func(p *Page) { p.DateEnd = &tomorrow }, true},
		{"ends exactly now", func(p *Page) { p.DateEnd = &now }, false},
		{"starts exactly now", func(p *Page) { p.DateStart = now }, true},
		{"starts tomorrow", func(p *Page) { p.DateStart = tomorrow }, false},
		{"inactive", func(p *Page) { p.IsActive = false }, false},
		{"inactive with open end", func(p *Page) { p.IsActive = false; p.DateEnd = &tomorrow }, false},
		{"draft", func(p *Page) { p.State = StateDraft }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mut(&p)
			assert.Equal(t, tt.want, IsPublicable(now, p))
		})
	}
}

func TestPublicableUsesCurrentTime(t *testing.T) {
	p := Page{IsActive: true, State: StatePublished, DateStart: time.Now().Add(-time.Hour)}
	assert.True(t, p.Publicable())
}
