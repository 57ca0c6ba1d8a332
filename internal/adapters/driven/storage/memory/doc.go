// Package memory provides in-memory implementations of driven port
// interfaces. They hold no state across runs.
package memory
