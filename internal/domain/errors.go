package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DiscoveryError is returned when a discovery root is missing or unreadable,
// or when the discovery tool itself fails. It is always fatal.
type DiscoveryError struct {
	Root string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery failed for %s: %v", e.Root, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// UnknownShardError is returned when a selector does not name a declared shard
type UnknownShardError struct {
	Selector string
	Known    []int
}

func (e *UnknownShardError) Error() string {
	known := make([]string, 0, len(e.Known))
	for _, k := range e.Known {
		known = append(known, strconv.Itoa(k))
	}
	return fmt.Sprintf("unknown shard %q (declared shards: %s)", e.Selector, strings.Join(known, ", "))
}
