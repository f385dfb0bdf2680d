package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/MdHasib01/commserver/internal/core/domain"
	"github.com/MdHasib01/commserver/internal/core/ports/driven"
)

// ScraperRegistry dispatches source configs to platform scrapers.
// The platform set is closed and registered at startup; lookups for
// anything else fail with domain.ErrUnsupportedPlatform.
type ScraperRegistry struct {
	mu       sync.RWMutex
	scrapers map[string]driven.Scraper
}

// NewScraperRegistry creates an empty registry.
func NewScraperRegistry() *ScraperRegistry {
	return &ScraperRegistry{
		scrapers: make(map[string]driven.Scraper),
	}
}

// Register adds a scraper under its platform key. Registering the same
// platform twice replaces the earlier scraper.
func (r *ScraperRegistry) Register(scraper driven.Scraper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scrapers[scraper.Platform()] = scraper
}

// Get returns the scraper for a platform.
func (r *ScraperRegistry) Get(platform string) (driven.Scraper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scraper, ok := r.scrapers[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, platform)
	}
	return scraper, nil
}

// Platforms returns the registered platform keys, sorted.
func (r *ScraperRegistry) Platforms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	platforms := make([]string, 0, len(r.scrapers))
	for p := range r.scrapers {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	return platforms
}
