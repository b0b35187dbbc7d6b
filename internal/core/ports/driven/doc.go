// Package driven defines the outbound ports of the sync engine: the place
// provider, the directory store, the sync-log sink, the run-history store
// and the pacer. Adapters implement these; the core services depend only on
// the interfaces.
package driven
