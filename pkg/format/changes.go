package format

import (
	"slices"
	"sync"
)

const changeShards = 16

// changeSet is a sparse overlay of changed trivia keyed by pair index. It is
// sharded so concurrent writers on different pairs rarely contend.
type changeSet struct {
	shards [changeShards]changeShard
}

type changeShard struct {
	mu      sync.RWMutex
	entries map[int]TriviaData
}

func (c *changeSet) shard(key int) *changeShard {
	return &c.shards[uint(key)%changeShards]
}

func (c *changeSet) get(key int) (TriviaData, bool) {
	shard := c.shard(key)
	shard.mu.RLock()
	data, ok := shard.entries[key]
	shard.mu.RUnlock()
	return data, ok
}

func (c *changeSet) set(key int, data TriviaData) {
	shard := c.shard(key)
	shard.mu.Lock()
	if shard.entries == nil {
		shard.entries = make(map[int]TriviaData)
	}
	shard.entries[key] = data
	shard.mu.Unlock()
}

func (c *changeSet) remove(key int) {
	shard := c.shard(key)
	shard.mu.Lock()
	delete(shard.entries, key)
	shard.mu.Unlock()
}

func (c *changeSet) len() int {
	total := 0
	for idx := range c.shards {
		shard := &c.shards[idx]
		shard.mu.RLock()
		total += len(shard.entries)
		shard.mu.RUnlock()
	}
	return total
}

// keys returns every changed key in ascending order.
func (c *changeSet) keys() []int {
	var keys []int
	for idx := range c.shards {
		shard := &c.shards[idx]
		shard.mu.RLock()
		for key := range shard.entries {
			keys = append(keys, key)
		}
		shard.mu.RUnlock()
	}
	slices.Sort(keys)
	return keys
}
