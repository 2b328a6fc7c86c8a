/*
PURPOSE:
  Determinant matching: does any token in a determinant list match a pattern,
  case-insensitively.

REQUIREMENTS:
  - Unanchored regular-expression search, case-insensitive.
  - Empty token list never matches.
  - An invalid pattern is a programming error.

  Implementation-discovered:
  - Engines test the same handful of patterns for every isolate; compiled
    expressions are kept in a bounded LRU shared by all goroutines.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine (every rule engine)
  - Dependencies: github.com/hashicorp/golang-lru/v2

ERROR HANDLING:
  - Panics on an invalid pattern, like regexp.MustCompile.

USAGE:
  matcher.Matches([]string{"ermB"}, "ERM") // true
*/

package matcher

import (
	"fmt"
	"regexp"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the compiled pattern capacity of the default matcher.
const DefaultCacheSize = 128

// Matcher matches determinant tokens against case-insensitive patterns.
// It is safe for concurrent use.
type Matcher struct {
	cache *lru.Cache[string, *regexp.Regexp]
}

// New creates a Matcher holding at most size compiled patterns.
func New(size int) (*Matcher, error) {
	cache, err := lru.New[string, *regexp.Regexp](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create pattern cache: %w", err)
	}
	return &Matcher{cache: cache}, nil
}

// Matches reports whether any token matches pattern.
func (m *Matcher) Matches(tokens []string, pattern string) bool {
	if len(tokens) == 0 {
		return false
	}
	re := m.compile(pattern)
	for _, tok := range tokens {
		if re.MatchString(tok) {
			return true
		}
	}
	return false
}

// Len returns the number of cached patterns.
func (m *Matcher) Len() int {
	return m.cache.Len()
}

func (m *Matcher) compile(pattern string) *regexp.Regexp {
	if re, ok := m.cache.Get(pattern); ok {
		return re
	}
	re := regexp.MustCompile("(?i)" + pattern)
	m.cache.Add(pattern, re)
	return re
}

var (
	defaultOnce    sync.Once
	defaultMatcher *Matcher
)

// Default returns the process-wide matcher.
func Default() *Matcher {
	defaultOnce.Do(func() {
		m, err := New(DefaultCacheSize)
		if err != nil {
			panic(err)
		}
		defaultMatcher = m
	})
	return defaultMatcher
}

// Matches reports whether any token matches pattern using the default matcher.
func Matches(tokens []string, pattern string) bool {
	return Default().Matches(tokens, pattern)
}
