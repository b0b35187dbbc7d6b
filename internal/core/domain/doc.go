// Package domain holds the core types of the directory synchronization
// engine: raw provider listings, canonical restaurant records, match and
// change outcomes, and the per-run summary. Types here carry no behaviour
// that touches the network or disk; adapters own that.
package domain
