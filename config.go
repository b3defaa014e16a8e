// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

import (
	"strings"
	"sync"
)

// Repository configuration keys read or written by this package.
const (
	// KeySparseCheckout enables sparse-checkout rules.
	KeySparseCheckout = "core.sparseCheckout"
	// KeyIgnoreCase folds rule and path case.
	KeyIgnoreCase = "core.ignoreCase"
	// KeyBare marks a repository without work tree.
	KeyBare = "core.bare"
)

// Config is the repository configuration capability used by Repository.
//
// Keys are "section.name" and compared case-insensitively.
type Config interface {
	// Bool returns a boolean value and whether key is present.
	Bool(key string) (value bool, found bool, err error)
	// SetBool stores a boolean value.
	SetBool(key string, value bool) error
}

// MemoryConfig is an in-memory Config.
type MemoryConfig struct {
	values map[string]bool
	mu     sync.RWMutex
}

// NewMemoryConfig creates in-memory config seeded with values.
func NewMemoryConfig(values map[string]bool) *MemoryConfig {
	c := &MemoryConfig{values: make(map[string]bool, len(values))}
	for k, v := range values {
		c.values[strings.ToLower(k)] = v
	}

	return c
}

// Bool implements Config.
func (c *MemoryConfig) Bool(key string) (bool, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.values[strings.ToLower(key)]
	return v, ok, nil
}

// SetBool implements Config.
func (c *MemoryConfig) SetBool(key string, value bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[strings.ToLower(key)] = value
	return nil
}
