package discovery

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
)

var (
	// def test_x( / async def test_x( at module level
	moduleTestPattern = regexp.MustCompile(`^(?:async\s+)?def\s+(test\w*)\s*\(`)
	// indented def test_x( inside a class body
	methodTestPattern = regexp.MustCompile(`^\s+(?:async\s+)?def\s+(test\w*)\s*\(`)
	classPattern      = regexp.MustCompile(`^class\s+(\w+)\s*[(:]`)
	// any other top-level statement ends the current class
	topLevelPattern = regexp.MustCompile(`^[^\s#@)\]}]`)
)

// Parser parses Python test files to extract test cases
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// FindTestCases returns the test functions of a file as "test_x" and the test
// methods of Test* classes as "TestClass::test_x", sorted.
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}
	defer f.Close()

	testCases := make(map[string]bool)
	currentClass := ""

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()

		if m := classPattern.FindStringSubmatch(line); m != nil {
			currentClass = ""
			if len(m[1]) >= 4 && m[1][:4] == "Test" {
				currentClass = m[1]
			}
			continue
		}
		if m := moduleTestPattern.FindStringSubmatch(line); m != nil {
			currentClass = ""
			testCases[m[1]] = true
			continue
		}
		if topLevelPattern.MatchString(line) {
			currentClass = ""
			continue
		}
		if currentClass == "" {
			continue
		}
		if m := methodTestPattern.FindStringSubmatch(line); m != nil {
			testCases[currentClass+"::"+m[1]] = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	cases := make([]string, 0, len(testCases))
	for c := range testCases {
		cases = append(cases, c)
	}
	sort.Strings(cases)
	return cases, nil
}
