package cli

import (
	"errors"
	"fmt"

	"shardctl/internal/config"
	"shardctl/internal/domain"
	"shardctl/internal/planning"
)

const (
	// ExitFailed is returned when a group did not pass
	ExitFailed = 1
	// ExitUsage is returned for structural errors: bad config, unknown
	// shard or unreadable discovery root
	ExitUsage = 2
)

// ExitError carries the exit status of a completed run whose groups did not
// all pass. The summary has already been printed.
type ExitError struct {
	Code   int
	Failed int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%d group(s) did not pass", e.Failed)
}

// ExitCode maps an error returned by a command to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var (
		discoveryErr *domain.DiscoveryError
		shardErr     *domain.UnknownShardError
		tableErr     *planning.TableError
		loadErr      *config.LoadError
		invalidErr   *config.ValidationError
	)
	if errors.As(err, &discoveryErr) || errors.As(err, &shardErr) || errors.As(err, &tableErr) ||
		errors.As(err, &loadErr) || errors.As(err, &invalidErr) {
		return ExitUsage
	}
	return ExitFailed
}

// Silent reports whether err needs no further message.
func Silent(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}
