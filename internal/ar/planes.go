package ar

import (
	"github.com/google/uuid"
)

// PlaneSet is an in-memory PlaneProvider. Order of Planes is insertion order.
type PlaneSet struct {
	planes  []*Plane
	enabled bool
}

// NewPlaneSet returns an enabled provider holding planes.
func NewPlaneSet(planes ...*Plane) *PlaneSet {
	return &PlaneSet{planes: planes, enabled: true}
}

// Add appends a detected plane. Ignored once detection is disabled.
func (s *PlaneSet) Add(p *Plane) {
	if !s.enabled {
		return
	}
	s.planes = append(s.planes, p)
}

// Planes returns the detected planes.
func (s *PlaneSet) Planes() []*Plane { return s.planes }

// Plane looks up a plane by ID.
func (s *PlaneSet) Plane(id uuid.UUID) (*Plane, bool) {
	for _, p := range s.planes {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// SetEnabled turns plane detection on or off.
func (s *PlaneSet) SetEnabled(enabled bool) { s.enabled = enabled }

// Enabled reports whether detection is on.
func (s *PlaneSet) Enabled() bool { return s.enabled }
