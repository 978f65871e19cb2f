package entity

import "time"

// ShareLink enlace de solo lectura para los visores.
type ShareLink struct {
	ID        string
	Token     string
	Name      string
	Active    bool
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// ValidAt indica si el enlace autoriza acceso en el instante now.
func (s *ShareLink) ValidAt(now time.Time) bool {
	if s == nil || !s.Active {
		return false
	}
	if s.ExpiresAt != nil && !now.Before(*s.ExpiresAt) {
		return false
	}
	return true
}
