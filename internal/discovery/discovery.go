package discovery

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"shardctl/internal/domain"
)

// Lister lists the test identifiers under root without executing them.
// Roots are relative to the lister's working directory.
type Lister interface {
	List(ctx context.Context, root string) iter.Seq2[string, error]
}

// Sequence is a lazy, restartable sequence of identifiers. Iterating it again
// re-runs the lister, so unchanged filesystem state yields the same order.
type Sequence = iter.Seq2[domain.TestIdentifier, error]

// Discoverer validates discovery roots and wraps a Lister
type Discoverer struct {
	lister Lister
	dir    string
}

// NewDiscoverer creates a Discoverer resolving roots against dir
func NewDiscoverer(lister Lister, dir string) *Discoverer {
	return &Discoverer{lister: lister, dir: dir}
}

// Dir returns the directory relative roots are resolved against
func (d *Discoverer) Dir() string {
	return d.dir
}

// Discover returns the identifiers under root. A root that is missing, not a
// directory or not readable fails immediately with a *domain.DiscoveryError;
// it never yields an empty sequence in that case. Failures of the lister
// itself surface as a *domain.DiscoveryError from the sequence.
func (d *Discoverer) Discover(ctx context.Context, root string) (Sequence, error) {
	if err := d.checkRoot(root); err != nil {
		return nil, &domain.DiscoveryError{Root: root, Err: err}
	}

	return func(yield func(domain.TestIdentifier, error) bool) {
		seen := make(map[string]bool)
		for id, err := range d.lister.List(ctx, root) {
			if err != nil {
				yield("", &domain.DiscoveryError{Root: root, Err: err})
				return
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			if !yield(domain.TestIdentifier(id), nil) {
				return
			}
		}
	}, nil
}

func (d *Discoverer) checkRoot(root string) error {
	path := root
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.dir, root)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("test path does not exist: %s", path)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("test path is not a directory: %s", path)
	}
	if _, err := os.ReadDir(path); err != nil {
		return fmt.Errorf("test path is not readable: %w", err)
	}
	return nil
}

// Collect drains a sequence into a slice, stopping at the first error.
func Collect(seq Sequence) ([]domain.TestIdentifier, error) {
	var ids []domain.TestIdentifier
	for id, err := range seq {
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
