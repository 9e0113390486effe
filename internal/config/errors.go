package config

import (
	"fmt"
	"strings"
)

// LoadError is returned when the config file cannot be read or decoded
type LoadError struct {
	Op   string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("config %s failed (%s): %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ValidationError lists every problem found in a decoded config
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s", strings.Join(e.Problems, "; "))
}

// CheckLabel rejects names that cannot be used verbatim as a log file name.
// Group labels are built from the suite name and area labels, so both go
// through here.
func CheckLabel(s string) error {
	if i := strings.IndexAny(s, "/\\: \t\r\n"); i >= 0 {
		return fmt.Errorf("%q contains %q", s, s[i])
	}
	return nil
}
