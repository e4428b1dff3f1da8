package sealpay

import (
	"context"
	"encoding/json"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/sealpay/sealpay/schema"
)

// Cache keeps hot item records out of the db read path. Items are immutable
// once created so stale entries cannot lie; expiry is always recomputed
// from the ambient time.
type Cache struct {
	items *bigcache.BigCache
}

func NewCache(keysExpTime time.Duration) (*Cache, error) {
	items, err := bigcache.New(context.Background(), bigcache.DefaultConfig(keysExpTime))
	if err != nil {
		return nil, err
	}
	return &Cache{items: items}, nil
}

func (c *Cache) SetItem(item schema.Item) {
	data, err := json.Marshal(item)
	if err != nil {
		return
	}
	_ = c.items.Set(item.Fingerprint, data)
}

func (c *Cache) GetItem(fingerprint string) (schema.Item, bool) {
	data, err := c.items.Get(fingerprint)
	if err != nil {
		return schema.Item{}, false
	}
	item := schema.Item{}
	if err := json.Unmarshal(data, &item); err != nil {
		return schema.Item{}, false
	}
	return item, true
}
