// Package topology compiles a validated parameter configuration into the
// single-node resource request of a profile: disk image, ordered bootstrap
// commands, role binding, remote display flag and role variable overrides.
//
// Compilation cannot fail for a configuration that passed its schema. Any
// branch the compiler cannot take is a programming error and panics with a
// *Defect.
package topology
