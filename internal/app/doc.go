// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary lifecycle (load records, build
// the plan, hand it to the scheduler engine), decoupled from any specific
// entrypoint like a CLI.
package app
