package quickanswer

import "strings"

// Cache maps known entity names to canned one-sentence answers. A hit
// bypasses retrieval and generation entirely, guaranteeing a bounded-latency
// answer for a small enumerated set of entities regardless of corpus or
// model availability.
type Cache struct {
	answers map[string]string
}

// New builds a cache from the given mapping. Keys are matched
// case-insensitively and exactly.
func New(answers map[string]string) *Cache {
	m := make(map[string]string, len(answers))
	for k, v := range answers {
		m[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Cache{answers: m}
}

// NewDefault builds a cache with the built-in entity answers.
func NewDefault() *Cache {
	return New(map[string]string{
		"shark":  "Sharks are apex predators with cartilaginous skeletons, vital to marine ecosystems.",
		"coral":  "Corals form reefs that support thousands of marine species.",
		"turtle": "Sea turtles are migratory reptiles essential to ocean health.",
	})
}

// Lookup returns the canned answer for the entity name, if present.
func (c *Cache) Lookup(name string) (string, bool) {
	answer, ok := c.answers[strings.ToLower(strings.TrimSpace(name))]
	return answer, ok
}
