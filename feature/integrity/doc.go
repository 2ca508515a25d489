// Package integrity provides health checks for every store the service touches.
//
// # Checks Provided
//
//   - Schema: resolves each logical printing field against the upstream snapshot and lists drift.
//   - Index: verifies index tables, printings per card, representatives and search documents.
//   - App: compares the collection and status tables with their GORM models.
//   - Storage: checks the publication bucket and the published index object.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema
//   - GET /integrity/index
//   - GET /integrity/app
//   - GET /integrity/storage
package integrity
