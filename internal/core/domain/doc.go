// Package domain defines the core business entities for Recordbook.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Module: A business domain from the built-in catalog
//   - FieldDefinition: One schema entry of a module
//   - Record: One entity instance, a field id to string value mapping
//   - DuplicateGroup: Advisory cluster of records sharing a key value
//   - Snapshot: The complete persisted state of every module
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
