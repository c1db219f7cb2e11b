// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the generate pipeline (validate, compile,
// build the tour, emit), decoupled from any specific entrypoint like a CLI.
package app
