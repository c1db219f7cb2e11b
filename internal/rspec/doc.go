// Package rspec serializes a compiled request. The primary format is a GENI
// RSpec v3 request document with the emulab, ansible and apt-tour
// extensions, which is what the provisioning portal consumes. The same
// request can also be written as yaml or json for inspection and diffing.
//
// The emitter performs no validation: node, overrides and tour are trusted
// to come from the topology compiler and tour builder.
package rspec
