package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/rspecgen/internal/params"
	"golang.org/x/exp/slices"
)

// ErrUnknownProfile is returned for a profile name the catalog lacks.
var ErrUnknownProfile = errors.New("unknown profile")

// Catalog is a loaded, validated set of profiles. It is never mutated after
// loading.
type Catalog struct {
	profiles []*Profile
	byName   map[string]*Profile
}

// Profiles returns the profiles in load order.
func (c *Catalog) Profiles() []*Profile {
	return slices.Clone(c.profiles)
}

// Names returns the profile names in load order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.profiles))
	for i, p := range c.profiles {
		names[i] = p.Name
	}
	return names
}

// Default is the first profile loaded.
func (c *Catalog) Default() *Profile {
	return c.profiles[0]
}

// Profile looks a profile up by name. An empty name selects the default.
func (c *Catalog) Profile(name string) (*Profile, error) {
	if name == "" {
		return c.Default(), nil
	}
	p, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownProfile, name, strings.Join(c.Names(), ", "))
	}
	return p, nil
}

// Profile is one experiment profile.
type Profile struct {
	Name          string
	Description   string
	Schema        *params.Schema
	BaseImage     string
	PrebuiltImage string
	Strategy      Strategy
	Overrides     []OverrideDef
	Tour          TourDef

	runAs string
}

// RunAs is the shell expression naming the experiment user. Command
// templates see it as the `user` variable.
func (p *Profile) RunAs() string { return p.runAs }

// OverrideDef is a role variable emitted when When holds.
type OverrideDef struct {
	Name  string
	Value string
	When  params.Predicate
}

// TourDef is the tour text of a profile.
type TourDef struct {
	Description string
	Steps       []TourStepDef
}

// TourStepDef is one instructional block, included when When holds.
type TourStepDef struct {
	Name string
	When params.Predicate
	Text string
}
