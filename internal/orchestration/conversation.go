package orchestration

import (
	"sync"
	"time"
)

// Turn is one exchange in a conversation: what the user sent and what
// the orchestrator answered.
type Turn struct {
	UserInput  string    `json:"user_input"`
	AIResponse string    `json:"ai_response"`
	Timestamp  time.Time `json:"timestamp"`
}

// ConversationCache retains recent conversation turns per workspace and
// user so the language-model prompts can carry context. Each key holds
// at most limit turns; appending beyond that evicts the oldest turn
// first. Safe for concurrent use.
type ConversationCache struct {
	mu    sync.Mutex
	limit int
	turns map[string][]Turn
}

// NewConversationCache returns a cache retaining up to limit turns per
// conversation. A non-positive limit falls back to 10.
func NewConversationCache(limit int) *ConversationCache {
	if limit <= 0 {
		limit = 10
	}
	return &ConversationCache{
		limit: limit,
		turns: make(map[string][]Turn),
	}
}

func conversationKey(workspaceID, userID string) string {
	return workspaceID + ":" + userID
}

// Append records a turn for the given workspace and user, evicting the
// oldest turn when the conversation is at capacity.
func (c *ConversationCache) Append(workspaceID, userID string, t Turn) {
	key := conversationKey(workspaceID, userID)

	c.mu.Lock()
	defer c.mu.Unlock()

	history := c.turns[key]
	if len(history) >= c.limit {
		history = history[len(history)-(c.limit-1):]
	}
	c.turns[key] = append(history, t)
}

// History returns a copy of all retained turns for the conversation,
// oldest first.
func (c *ConversationCache) History(workspaceID, userID string) []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()

	history := c.turns[conversationKey(workspaceID, userID)]
	out := make([]Turn, len(history))
	copy(out, history)
	return out
}

// Recent returns up to n of the most recent turns, oldest first.
func (c *ConversationCache) Recent(workspaceID, userID string, n int) []Turn {
	history := c.History(workspaceID, userID)
	if n <= 0 || len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// Len reports how many turns are retained for the conversation.
func (c *ConversationCache) Len(workspaceID, userID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns[conversationKey(workspaceID, userID)])
}
