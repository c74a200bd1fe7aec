package items

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ErrItemNotFound is returned by lookups that find no matching item.
var ErrItemNotFound = errors.New("item not found")

// Lookup resolves an item by name, optionally restricted to a type.
type Lookup interface {
	FindItem(ctx context.Context, name string, itemType ItemType) (*Item, error)
}

func notFound(name string, itemType ItemType) error {
	if itemType == AnyType {
		return fmt.Errorf("%w: %s", ErrItemNotFound, name)
	}
	return fmt.Errorf("%w: %s [%s]", ErrItemNotFound, name, itemType)
}

// NotFound builds an ErrItemNotFound error for lookups outside this package.
func NotFound(name string, itemType ItemType) error {
	return notFound(name, itemType)
}

type lookupKey struct {
	name     string
	itemType ItemType
}

// CachedLookup memoizes successful lookups of another Lookup in a bounded
// LRU cache with expiry. Misses are not cached.
type CachedLookup struct {
	next  Lookup
	cache *expirable.LRU[lookupKey, *Item]
}

// NewCachedLookup wraps next with a cache of at most size entries, each
// kept for ttl. A zero ttl keeps entries until evicted.
func NewCachedLookup(next Lookup, size int, ttl time.Duration) *CachedLookup {
	return &CachedLookup{
		next:  next,
		cache: expirable.NewLRU[lookupKey, *Item](size, nil, ttl),
	}
}

// FindItem implements Lookup.
func (c *CachedLookup) FindItem(ctx context.Context, name string, itemType ItemType) (*Item, error) {
	key := lookupKey{name: name, itemType: itemType}
	if item, ok := c.cache.Get(key); ok {
		return item.Clone(), nil
	}

	item, err := c.next.FindItem(ctx, name, itemType)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, item.Clone())
	return item, nil
}

// Len returns the number of cached items.
func (c *CachedLookup) Len() int {
	return c.cache.Len()
}

// Purge empties the cache.
func (c *CachedLookup) Purge() {
	c.cache.Purge()
}
