package planning

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"shardctl/internal/config"
)

// Table is the declarative mapping of functional areas to shard indexes.
// Areas keep their declaration order, which is also their order within a shard.
type Table struct {
	areas      []config.Area
	shardCount int
}

// NewTable creates a Table for shards 1..shardCount
func NewTable(areas []config.Area, shardCount int) *Table {
	return &Table{areas: append([]config.Area(nil), areas...), shardCount: shardCount}
}

// TableError lists every problem found by Validate
type TableError struct {
	Problems []string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("invalid shard table: %s", strings.Join(e.Problems, "; "))
}

// Validate checks that labels are unique and file-name safe, no static label
// has the shape of a fan-out group label, area paths are disjoint (no path
// equal to or nested inside another), every area maps to a declared shard and
// every declared shard has at least one area.
func (t *Table) Validate() error {
	var problems []string
	if t.shardCount <= 0 {
		problems = append(problems, fmt.Sprintf("shard count must be positive, got %d", t.shardCount))
	}

	labels := make(map[string]bool)
	used := make(map[int]bool)
	for i, a := range t.areas {
		switch {
		case strings.TrimSpace(a.Label) == "":
			problems = append(problems, fmt.Sprintf("area #%d has no label", i+1))
		case labels[a.Label]:
			problems = append(problems, fmt.Sprintf("area label %q is declared twice", a.Label))
		default:
			if err := config.CheckLabel(a.Label); err != nil {
				problems = append(problems, fmt.Sprintf("area label %v", err))
			}
		}
		labels[a.Label] = true

		if strings.TrimSpace(a.Path) == "" {
			problems = append(problems, fmt.Sprintf("area %q has no path", a.Label))
		}
		if a.Shard < 1 || a.Shard > t.shardCount {
			problems = append(problems, fmt.Sprintf("area %q maps to shard %d, outside 1..%d", a.Label, a.Shard, t.shardCount))
		}
		used[a.Shard] = true
	}

	for _, fan := range t.areas {
		if !fan.FanOut || fan.Label == "" {
			continue
		}
		for _, a := range t.areas {
			if !a.FanOut && isFanOutLabel(a.Label, fan.Label) {
				problems = append(problems, fmt.Sprintf("area label %q collides with a group of fan-out area %q", a.Label, fan.Label))
			}
		}
	}

	for i := 0; i < len(t.areas); i++ {
		for j := i + 1; j < len(t.areas); j++ {
			a, b := t.areas[i], t.areas[j]
			if a.Path == "" || b.Path == "" {
				continue
			}
			if overlaps(a.Path, b.Path) {
				problems = append(problems, fmt.Sprintf("areas %q and %q overlap (%s, %s)", a.Label, b.Label, a.Path, b.Path))
			}
		}
	}

	for _, s := range t.Shards() {
		if !used[s] {
			problems = append(problems, fmt.Sprintf("shard %d has no areas", s))
		}
	}

	if len(problems) > 0 {
		return &TableError{Problems: problems}
	}
	return nil
}

// Shards returns the declared shard indexes in ascending order
func (t *Table) Shards() []int {
	shards := make([]int, 0, t.shardCount)
	for i := 1; i <= t.shardCount; i++ {
		shards = append(shards, i)
	}
	return shards
}

// Declared reports whether shard is a declared index
func (t *Table) Declared(shard int) bool {
	return shard >= 1 && shard <= t.shardCount
}

// Areas returns every area in declaration order
func (t *Table) Areas() []config.Area {
	return append([]config.Area(nil), t.areas...)
}

// AreasFor returns the areas of one shard in declaration order
func (t *Table) AreasFor(shard int) []config.Area {
	var areas []config.Area
	for _, a := range t.areas {
		if a.Shard == shard {
			areas = append(areas, a)
		}
	}
	return areas
}

// Area looks an area up by label
func (t *Table) Area(label string) (config.Area, bool) {
	for _, a := range t.areas {
		if a.Label == label {
			return a, true
		}
	}
	return config.Area{}, false
}

// FanOutAreas returns the areas expanded per identifier, in declaration order
func (t *Table) FanOutAreas() []config.Area {
	var areas []config.Area
	for _, a := range t.areas {
		if a.FanOut {
			areas = append(areas, a)
		}
	}
	return areas
}

// isFanOutLabel reports whether label equals fan-<n> for some n >= 1
func isFanOutLabel(label, fan string) bool {
	n, ok := strings.CutPrefix(label, fan+"-")
	if !ok || n == "" || n[0] == '0' {
		return false
	}
	for _, c := range n {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func overlaps(a, b string) bool {
	a = cleanPath(a)
	b = cleanPath(b)
	if a == b || a == "." || b == "." {
		return true
	}
	return strings.HasPrefix(b, a+"/") || strings.HasPrefix(a, b+"/")
}

func cleanPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}
