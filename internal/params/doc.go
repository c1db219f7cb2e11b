// Package params declares the configuration knobs a profile accepts and
// turns user-supplied raw values into an immutable Configuration.
//
// A Schema is an ordered set of Definitions. Each Definition has a cty type
// (bool or string), a default, and, for enum strings, the exhaustive set of
// legal values. Schema.Validate substitutes defaults for anything the caller
// left out and reports every problem it finds in a single ValidationError.
//
// The named Predicates in this package are the one decision table shared by
// the topology compiler and the tour builder. Both ask a Configuration
// whether a predicate holds instead of reading toggles directly, so the
// request and its documentation cannot disagree.
package params
