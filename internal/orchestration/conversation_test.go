package orchestration

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationCacheEviction(t *testing.T) {
	cache := NewConversationCache(10)

	for i := 1; i <= 11; i++ {
		cache.Append("ws", "user", Turn{
			UserInput:  fmt.Sprintf("input %d", i),
			AIResponse: fmt.Sprintf("response %d", i),
			Timestamp:  time.Now(),
		})
	}

	history := cache.History("ws", "user")
	require.Len(t, history, 10)

	// The oldest turn was evicted; the remaining ten are chronological.
	assert.Equal(t, "input 2", history[0].UserInput)
	assert.Equal(t, "input 11", history[9].UserInput)
	for i := 0; i < len(history)-1; i++ {
		assert.False(t, history[i].Timestamp.After(history[i+1].Timestamp))
	}
}

func TestConversationCacheKeysIsolated(t *testing.T) {
	cache := NewConversationCache(10)

	cache.Append("ws1", "alice", Turn{UserInput: "hello"})
	cache.Append("ws1", "bob", Turn{UserInput: "hi"})
	cache.Append("ws2", "alice", Turn{UserInput: "hey"})

	assert.Equal(t, 1, cache.Len("ws1", "alice"))
	assert.Equal(t, 1, cache.Len("ws1", "bob"))
	assert.Equal(t, 1, cache.Len("ws2", "alice"))
	assert.Equal(t, 0, cache.Len("ws2", "bob"))
}

func TestConversationCacheRecent(t *testing.T) {
	cache := NewConversationCache(10)
	for i := 1; i <= 7; i++ {
		cache.Append("ws", "user", Turn{UserInput: fmt.Sprintf("turn %d", i)})
	}

	recent := cache.Recent("ws", "user", 5)
	require.Len(t, recent, 5)
	assert.Equal(t, "turn 3", recent[0].UserInput)
	assert.Equal(t, "turn 7", recent[4].UserInput)

	all := cache.Recent("ws", "user", 0)
	assert.Len(t, all, 7)
}

func TestConversationCacheHistoryIsCopy(t *testing.T) {
	cache := NewConversationCache(10)
	cache.Append("ws", "user", Turn{UserInput: "original"})

	history := cache.History("ws", "user")
	history[0].UserInput = "mutated"

	assert.Equal(t, "original", cache.History("ws", "user")[0].UserInput)
}
