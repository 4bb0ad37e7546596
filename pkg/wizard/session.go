package wizard

import (
	"slices"

	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
)

// Session is what a flow has collected so far. The zero value is the state
// of a freshly started flow.
type Session struct {
	// Releases is nil until the release list has been fetched.
	Releases []gizmo.Release
	Release  *gizmo.Release

	Variants []Variant
	Variant  *Variant

	// ArtifactPath is the downloaded asset in the scratch cache.
	ArtifactPath string

	// Devices is nil until drives have been listed for the current target.
	Devices []gizmo.Device
	Device  *gizmo.Device

	Installed bool

	TeamNumbersText string
	TeamNumbers     []string
	TeamIndex       int
	Validation      string
}

// target is the team the current card is prepared for.
func (s Session) target() string {
	if s.TeamIndex < len(s.TeamNumbers) {
		return s.TeamNumbers[s.TeamIndex]
	}
	return ""
}

// clone copies s so that nothing in the result aliases s. Nil slices stay
// nil because nil means "not fetched yet".
func (s Session) clone() Session {
	c := s

	if s.Releases != nil {
		c.Releases = make([]gizmo.Release, len(s.Releases))
		for i, r := range s.Releases {
			c.Releases[i] = cloneRelease(r)
		}
	}
	if s.Release != nil {
		r := cloneRelease(*s.Release)
		c.Release = &r
	}

	c.Variants = slices.Clone(s.Variants)
	if s.Variant != nil {
		v := *s.Variant
		c.Variant = &v
	}

	c.Devices = slices.Clone(s.Devices)
	if s.Device != nil {
		d := *s.Device
		c.Device = &d
	}

	c.TeamNumbers = slices.Clone(s.TeamNumbers)
	return c
}

func cloneRelease(r gizmo.Release) gizmo.Release {
	r.Assets = slices.Clone(r.Assets)
	return r
}
