// Package services implements the core application logic: the
// ingestion pipeline, the retrieval ranker and the grounded answer
// generator. Services receive their dependencies by constructor
// injection and never reach for ambient global state.
package services
