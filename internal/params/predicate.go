package params

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Predicate names a condition over a Configuration. Catalog entries carry a
// predicate in their `when` attribute.
type Predicate string

const (
	// Always holds for every configuration.
	Always            Predicate = ""
	WhenRICxApp       Predicate = "ric_xapp"
	WhenFromSource    Predicate = "from_source"
	WhenPrebuilt      Predicate = "prebuilt"
	WhenRemoteDisplay Predicate = "remote_display"
)

var predicates = map[Predicate]func(*Configuration) bool{
	Always:            func(*Configuration) bool { return true },
	WhenRICxApp:       func(c *Configuration) bool { return c.Bool(EnableRICxApp) },
	WhenFromSource:    func(c *Configuration) bool { return c.Bool(DeployFromSource) },
	WhenPrebuilt:      func(c *Configuration) bool { return !c.Bool(DeployFromSource) },
	WhenRemoteDisplay: func(c *Configuration) bool { return c.Bool(EnableRemoteDisplay) },
}

// dependsOn maps each predicate to the parameter it reads.
var dependsOn = map[Predicate]string{
	WhenRICxApp:       EnableRICxApp,
	WhenFromSource:    DeployFromSource,
	WhenPrebuilt:      DeployFromSource,
	WhenRemoteDisplay: EnableRemoteDisplay,
}

// Parameter names the parameter p reads, or "" for Always.
func (p Predicate) Parameter() string {
	return dependsOn[p]
}

// Known reports whether p is in the predicate table.
func (p Predicate) Known() bool {
	_, ok := predicates[p]
	return ok
}

// KnownPredicates lists the named predicates, sorted.
func KnownPredicates() []Predicate {
	out := make([]Predicate, 0, len(predicates))
	for p := range predicates {
		if p != Always {
			out = append(out, p)
		}
	}
	slices.Sort(out)
	return out
}

// Holds evaluates p. An unknown predicate is a programming error: catalogs
// are checked against the table when they are loaded.
func (c *Configuration) Holds(p Predicate) bool {
	fn, ok := predicates[p]
	if !ok {
		panic(fmt.Sprintf("params: unknown predicate %q", p))
	}
	return fn(c)
}
