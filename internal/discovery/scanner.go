package discovery

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// Scanner finds Python test files and lists their test cases as node ids.
// It is the Lister used when no discovery command is configured.
type Scanner struct {
	skipDirs map[string]bool
	parser   *Parser
	dir      string
}

// NewScanner creates a new Scanner with the given directories to skip.
// Node ids are made relative to dir.
func NewScanner(skipDirs []string, parser *Parser, dir string) *Scanner {
	skipMap := make(map[string]bool)
	for _, d := range skipDirs {
		skipMap[d] = true
	}
	return &Scanner{skipDirs: skipMap, parser: parser, dir: dir}
}

// IsTestFile reports whether name follows the test_*.py or *_test.py convention
func IsTestFile(name string) bool {
	if !strings.HasSuffix(name, ".py") {
		return false
	}
	return strings.HasPrefix(name, "test_") || strings.HasSuffix(name, "_test.py")
}

// List yields file::[Class::]case ids, file by file, in lexical order.
func (s *Scanner) List(ctx context.Context, root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		err := s.walk(root, func(path string) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cases, err := s.parser.FindTestCases(path)
			if err != nil {
				return err
			}
			file := s.nodePath(path)
			for _, c := range cases {
				if !yield(file+"::"+c, nil) {
					stopped = true
					return filepath.SkipAll
				}
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", err)
		}
	}
}

func (s *Scanner) walk(root string, visit func(path string) error) error {
	root = filepath.Clean(s.resolve(root))
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return fmt.Errorf("test path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if IsTestFile(d.Name()) {
			return visit(path)
		}
		return nil
	})
	if errors.Is(err, filepath.SkipAll) {
		return nil
	}
	return err
}

func (s *Scanner) resolve(root string) string {
	if filepath.IsAbs(root) || s.dir == "" {
		return root
	}
	return filepath.Join(s.dir, root)
}

// nodePath returns path relative to the scanner's dir, slash separated
func (s *Scanner) nodePath(path string) string {
	base := s.dir
	if base == "" {
		base = "."
	}
	if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
		path = rel
	}
	return filepath.ToSlash(path)
}
