// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// All module state is owned by a single Workspace. Services share one
// Workspace and never hand out references into its collections. Every
// state change is offered to a SnapshotSink, normally the Persister,
// which writes it in the background.
package services
