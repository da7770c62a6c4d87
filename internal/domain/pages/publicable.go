package pages

import "time"

// IsPublicable reports whether p is visible to end users at now.
// Both window bounds are checked against the same instant.
func IsPublicable(now time.Time, p Page) bool {
	if !p.IsActive || p.State != StatePublished {
		return false
	}
	if now.Before(p.DateStart) {
		return false
	}
	if p.DateEnd != nil && !now.Before(*p.DateEnd) {
		return false
	}
	return true
}

// Publicable is IsPublicable evaluated at the current time.
func (p Page) Publicable() bool {
	return IsPublicable(time.Now(), p)
}
