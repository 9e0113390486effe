package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"

	"shardctl/internal/config"
	"shardctl/internal/domain"
	"shardctl/internal/envprofile"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintPlan prints the groups of every plan in execution order
func (f *Formatter) PrintPlan(plans []domain.ShardPlan) {
	for i, plan := range plans {
		if i > 0 {
			fmt.Fprintln(f.out)
		}
		cyan.Fprintf(f.out, "Shard %d (%d group(s))\n", plan.Shard, len(plan.Groups))
		if len(plan.Groups) == 0 {
			yellow.Fprintln(f.out, "  (no groups)")
			continue
		}
		for _, g := range plan.Groups {
			fmt.Fprintf(f.out, "  %2d. %-32s ", g.Ordinal, g.Label)
			yellow.Fprintf(f.out, "%-10s ", g.Kind)
			fmt.Fprintln(f.out, g.Target)
		}
	}
}

// PrintSummary prints the statistics table for a saved run, followed by the
// non-passing groups per shard.
func (f *Formatter) PrintSummary(output *domain.ShardResultsOutput) {
	meta := output.Meta

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                    Shard Execution Summary                    ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	f.row("Run ID", meta.RunID, white)
	f.separator()
	f.row("Shards", joinInts(meta.Shards), white)
	f.separator()
	f.row("Total Groups", meta.TotalGroups, white)
	f.separator()
	f.row("Passed Groups", meta.PassedGroups, green)
	f.separator()
	f.row("Failed Groups", meta.FailedGroups, red)
	f.separator()
	f.row("Errored Groups", meta.ErroredGroups, red)
	f.separator()
	f.row("Passed Cases", meta.PassedCases, green)
	f.separator()
	f.row("Failed Cases", meta.FailedCases, red)
	f.separator()
	f.row("Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white)
	f.separator()
	f.row("Timestamp", meta.Timestamp, white)
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if len(output.Details) == 0 {
		green.Fprintln(f.out, "✓ All groups passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d group(s) did not pass\n\n", len(output.Details))
	f.printFailures(output.Details)
}

func (f *Formatter) row(name string, value any, c *color.Color) {
	fmt.Fprintf(f.out, "│ %-31s │ ", name)
	c.Fprintf(f.out, "%-27v", value)
	fmt.Fprintln(f.out, " │")
}

func (f *Formatter) separator() {
	fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
}

func (f *Formatter) printFailures(failures []domain.GroupFailure) {
	byShard := make(map[int][]domain.GroupFailure)
	var shards []int
	for _, failure := range failures {
		if _, ok := byShard[failure.Shard]; !ok {
			shards = append(shards, failure.Shard)
		}
		byShard[failure.Shard] = append(byShard[failure.Shard], failure)
	}
	sort.Ints(shards)

	for _, shard := range shards {
		cyan.Fprintf(f.out, "shard %d\n", shard)
		group := byShard[shard]
		for i, failure := range group {
			connector, indent := "├── ", "│   "
			if i == len(group)-1 {
				connector, indent = "└── ", "    "
			}
			fmt.Fprint(f.out, connector)
			yellow.Fprintf(f.out, "%s", failure.Label)
			red.Fprintf(f.out, " [%s]\n", failure.Status)
			line := failure.Summary
			if line == "" {
				line = firstLine(failure.Diagnostic)
			}
			if line != "" {
				fmt.Fprintf(f.out, "%s└── %s\n", indent, line)
			}
		}
	}
}

// TreeNode is one path segment of the identifier tree
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	IsCase   bool
}

// BuildTree splits identifiers into directory, file and case segments.
func BuildTree(ids []domain.TestIdentifier) *TreeNode {
	root := &TreeNode{Children: make(map[string]*TreeNode)}
	for _, id := range ids {
		file, test, hasCase := strings.Cut(string(id), "::")
		parts := strings.Split(strings.TrimPrefix(file, "./"), "/")
		if hasCase {
			parts = append(parts, test)
		}

		current := root
		for i, part := range parts {
			if part == "" {
				continue
			}
			child := current.Children[part]
			if child == nil {
				child = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsCase:   hasCase && i == len(parts)-1,
				}
				current.Children[part] = child
			}
			current = child
		}
	}
	return root
}

// PrintIdentifierTree prints the discovered identifiers of one root as a tree.
func (f *Formatter) PrintIdentifierTree(title string, ids []domain.TestIdentifier) {
	green.Fprintf(f.out, "%s: %d test identifier(s)\n", title, len(ids))
	if len(ids) == 0 {
		return
	}
	f.printTreeNode(BuildTree(ids), "")
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string) {
	keys := make([]string, 0, len(node.Children))
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		last := i == len(keys)-1

		connector, next := "├── ", "│   "
		if last {
			connector, next = "└── ", "    "
		}

		switch {
		case child.IsCase:
			fmt.Fprintf(f.out, "%s%s%s\n", prefix, connector, yellow.Sprint(child.Name))
		default:
			fmt.Fprintf(f.out, "%s%s%s\n", prefix, connector, cyan.Sprint(child.Name))
		}
		f.printTreeNode(child, prefix+next)
	}
}

// PrintEnv prints the environment profile, one KEY=value per line.
func (f *Formatter) PrintEnv(profile *envprofile.Profile) {
	for _, kv := range profile.Environ() {
		key, value, _ := strings.Cut(kv, "=")
		cyan.Fprint(f.out, key)
		fmt.Fprintf(f.out, "=%s\n", value)
	}
}

// PrintAreas writes areas as a TOML [[areas]] table ready to paste into the
// config file.
func (f *Formatter) PrintAreas(areas []config.Area) error {
	doc := struct {
		Areas []config.Area `toml:"areas"`
	}{Areas: areas}
	if err := toml.NewEncoder(f.out).Encode(doc); err != nil {
		return fmt.Errorf("encode areas: %w", err)
	}
	return nil
}

// PrintCoverage reports the outcome of a plan coverage check.
func (f *Formatter) PrintCoverage(plans []domain.ShardPlan, err error) {
	if err != nil {
		red.Fprintf(f.out, "✗ %v\n", err)
		return
	}
	var groups int
	for _, p := range plans {
		groups += len(p.Groups)
	}
	green.Fprintf(f.out, "✓ %d group(s) across %d shard(s), each planned exactly once\n", groups, len(plans))
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
