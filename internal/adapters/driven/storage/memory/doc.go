// Package memory provides in-memory implementations of the driven
// storage ports. They are used as test fixtures and for running the
// engine without a database.
package memory
