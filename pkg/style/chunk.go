package style

import (
	"context"
	"strings"
)

// Pair binds a rule to the class attribute value elements carry for it.
type Pair struct {
	Class string
	Rule  Rule
}

// Chunk collects the rules used by one render pass, in first-use order.
// A Chunk belongs to a single render call and is not safe for concurrent use.
type Chunk struct {
	rules []Rule
	seen  map[string]struct{}
}

// NewChunk returns an empty chunk.
func NewChunk() *Chunk {
	return &Chunk{seen: make(map[string]struct{})}
}

// Add records rules, ignoring zero rules and rules already present.
func (c *Chunk) Add(rules ...Rule) {
	for _, r := range rules {
		if r.IsZero() {
			continue
		}
		if _, ok := c.seen[r.class]; ok {
			continue
		}
		c.seen[r.class] = struct{}{}
		c.rules = append(c.rules, r)
	}
}

// Len returns the number of collected rules. A nil chunk is empty.
func (c *Chunk) Len() int {
	if c == nil {
		return 0
	}
	return len(c.rules)
}

// Rules returns the collected rules.
func (c *Chunk) Rules() []Rule {
	if c == nil {
		return nil
	}
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Pairs returns the flat (class, rule) list the inliner works from.
func (c *Chunk) Pairs() []Pair {
	if c == nil {
		return nil
	}
	out := make([]Pair, 0, len(c.rules))
	for _, r := range c.rules {
		out = append(out, Pair{Class: r.class, Rule: r})
	}
	return out
}

// Stylesheet serializes every collected rule, one per line.
func (c *Chunk) Stylesheet() string {
	if c.Len() == 0 {
		return ""
	}
	lines := make([]string, 0, len(c.rules))
	for _, r := range c.rules {
		lines = append(lines, r.CSS())
	}
	return strings.Join(lines, "\n")
}

type chunkKey struct{}

// WithChunk scopes chunk to ctx. Components rendered with the returned
// context record the rules they use into it.
func WithChunk(ctx context.Context, chunk *Chunk) context.Context {
	return context.WithValue(ctx, chunkKey{}, chunk)
}

// ChunkFrom returns the chunk stored in ctx or nil.
func ChunkFrom(ctx context.Context) *Chunk {
	if ctx == nil {
		return nil
	}
	c, _ := ctx.Value(chunkKey{}).(*Chunk)
	return c
}

// Class records rules into the chunk found in ctx and returns the value for
// the class attribute. Without a chunk the class names are still returned.
func Class(ctx context.Context, rules ...Rule) string {
	if c := ChunkFrom(ctx); c != nil {
		c.Add(rules...)
	}
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		if !r.IsZero() {
			names = append(names, r.class)
		}
	}
	return strings.Join(names, " ")
}
