// Package domain defines the core business types for the PPC optimizer.
//
// Types in this package are pure value objects with no behavior beyond small
// conversions, no storage dependencies, and no HTTP concerns. They are the
// shared language between the schema normalizer, the rule engine, the identity
// resolver and the bulk-sheet builders.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No *redis.Client, no http.Request, no context.Context in struct fields
//   - JSON tags are allowed (they're metadata, not behavior)
//   - Validation and conversion methods are allowed (pure functions on the type)
//   - Constants and enums belong here
package domain
