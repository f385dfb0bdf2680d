// Package domain defines the core business entities for commserver.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Community: A platform community fed by upstream source configs
//   - RawContentItem: A normalized item fetched from an upstream platform
//   - ContentRecord: A published platform post
//   - PlatformUser: A synthetic account that owns ingested posts
//   - RunResult: The structured outcome of an ingestion sweep
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
