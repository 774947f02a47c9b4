package store

import "sync"

// FetchFunc resolves a canonical logical key into data
type FetchFunc func(key string) (any, error)

// invalidationRules is the declarative invalidation table: a mutation of
// the left-hand resource stales every cached key - collection, single-item
// and filtered variants alike - of each resource on the right. Call sites
// invoke InvalidateFor once per mutated resource instead of reasoning
// per-key; cross-entity dependencies get added here, in one place.
var invalidationRules = map[Resource][]Resource{
	ResourceClients:     {ResourceClients},
	ResourcePractices:   {ResourcePractices},
	ResourceLawyers:     {ResourceLawyers},
	ResourceReminders:   {ResourceReminders},
	ResourceDocuments:   {ResourceDocuments},
	ResourceLetters:     {ResourceLetters},
	ResourceQuotes:      {ResourceQuotes},
	ResourceTimeEntries: {ResourceTimeEntries},
	ResourceFirmProfile: {ResourceFirmProfile},
	ResourceProfiles:    {ResourceProfiles},
}

// AffectedResources returns the resources whose cached keys a mutation of
// res stales, per the invalidation table.
func AffectedResources(res Resource) []Resource {
	if affected, ok := invalidationRules[res]; ok {
		return affected
	}
	return []Resource{res}
}

type cacheEntry struct {
	resource Resource
	value    any
}

// Cache is a keyed fetch-through cache. Keys are canonicalized before use,
// so "/api/documents?practiceId=9" and "documents?practiceId=9" share one
// entry while differently-filtered keys stay independent. Reads of a
// cached key never touch storage until the key is invalidated.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	fetch   FetchFunc
}

func NewCache(fetch FetchFunc) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		fetch:   fetch,
	}
}

// Get returns the cached value for the key, fetching it on a miss. Fetch
// errors are not cached. Two concurrent misses on the same key may both
// fetch; sharing identical in-flight requests is the caller's concern and
// a duplicate read is harmless.
func (c *Cache) Get(rawKey string) (any, error) {
	key, err := ParseKey(rawKey)
	if err != nil {
		return nil, err
	}
	canonical := key.Canonical()

	c.mu.RLock()
	e, ok := c.entries[canonical]
	c.mu.RUnlock()
	if ok {
		return e.value, nil
	}

	value, err := c.fetch(canonical)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[canonical] = cacheEntry{resource: key.Resource, value: value}
	c.mu.Unlock()
	return value, nil
}

// Invalidate drops the exact keys given. Unknown or unparseable keys are
// ignored: there is nothing cached under them.
func (c *Cache) Invalidate(rawKeys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, raw := range rawKeys {
		key, err := ParseKey(raw)
		if err != nil {
			continue
		}
		delete(c.entries, key.Canonical())
	}
}

// InvalidateFor drops every cached key of every resource the invalidation
// table names for the mutated resource. This is the one function mutation
// call sites invoke after a successful write.
func (c *Cache) InvalidateFor(mutated Resource) {
	affected := AffectedResources(mutated)

	c.mu.Lock()
	defer c.mu.Unlock()
	for canonical, e := range c.entries {
		for _, res := range affected {
			if e.resource == res {
				delete(c.entries, canonical)
				break
			}
		}
	}
}

// Size returns the number of cached keys
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
