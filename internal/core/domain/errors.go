package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	// Storage adapters return it on unique index violations; the
	// orchestrator counts the item as skipped rather than failing.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedPlatform indicates no scraper is registered for a
	// source config's platform.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// Authentication Errors.

	// ErrAuthConfig indicates upstream credentials are missing or
	// incomplete. Raised before any network call is attempted.
	ErrAuthConfig = errors.New("auth configuration incomplete")

	// ErrRateLimited indicates the upstream API rate limit was exceeded.
	// Scrapers absorb it with backoff; it never reaches callers.
	ErrRateLimited = errors.New("rate limited")

	// Ingestion Errors.

	// ErrNoPlatformUsers indicates no synthetic platform users exist to
	// own ingested content. Ingestion for the community cannot proceed.
	ErrNoPlatformUsers = errors.New("no platform users available")

	// ErrSweepInProgress indicates a sweep is already running.
	ErrSweepInProgress = errors.New("sweep in progress")
)
