package memcache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/licheck/internal/adapters/memcache"
	"go.trai.ch/licheck/internal/core/domain"
)

func TestCache_PutGet(t *testing.T) {
	c := memcache.New()

	_, ok := c.Get("requests")
	assert.False(t, ok)

	c.Put(domain.PackageRecord{Name: "requests", Version: "2.31.0", License: "Apache 2.0"})

	rec, ok := c.Get("requests")
	assert.True(t, ok)
	assert.Equal(t, "2.31.0", rec.Version)
	assert.Equal(t, 1, c.Len())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := memcache.New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Put(domain.PackageRecord{Name: "idna", Version: "3.6"})
			_, _ = c.Get("idna")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, c.Len())
}
