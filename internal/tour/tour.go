// Package tour assembles the instructions shipped with a request from the
// step records of a profile. Steps are selected by the same predicates the
// topology compiler uses for overrides, so a step about a feature appears
// exactly when the request enables it.
package tour

import (
	"strings"

	"github.com/vk/rspecgen/internal/catalog"
	"github.com/vk/rspecgen/internal/params"
	"golang.org/x/exp/slices"
)

// Tour is the rendered documentation of one request.
type Tour struct {
	Description  string
	Instructions string
	// Steps names the included steps in order.
	Steps []string
}

// Builder renders tours for one profile.
type Builder struct {
	def catalog.TourDef
}

// NewBuilder creates a builder for the profile's tour.
func NewBuilder(profile *catalog.Profile) *Builder {
	return &Builder{def: profile.Tour}
}

// Build selects the steps whose predicate holds and joins them, separated
// by a blank line, into the instructions.
func (b *Builder) Build(cfg *params.Configuration) *Tour {
	t := &Tour{Description: b.def.Description}

	texts := make([]string, 0, len(b.def.Steps))
	for _, step := range b.def.Steps {
		if !cfg.Holds(step.When) {
			continue
		}
		texts = append(texts, step.Text)
		t.Steps = append(t.Steps, step.Name)
	}
	t.Instructions = strings.Join(texts, "\n\n")
	return t
}

// Includes reports whether the named step made it into the tour.
func (t *Tour) Includes(step string) bool {
	return slices.Contains(t.Steps, step)
}
