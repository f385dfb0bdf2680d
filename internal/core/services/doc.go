// Package services implements the driving port interfaces: the
// ingestion orchestrator, the sweep scheduler, and their supporting
// pieces (scraper registry, deduplicator). Services hold the business
// rules and reach infrastructure only through the driven ports.
package services
