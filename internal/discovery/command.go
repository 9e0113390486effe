package discovery

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"iter"
	"os/exec"
	"strings"
)

// CommandLister runs an external collection tool (pytest --collect-only by
// default) once per root and reads one node id per stdout line.
type CommandLister struct {
	command []string
	dir     string
}

// NewCommandLister creates a CommandLister. The command may contain the
// {root} placeholder; dir is the tool's working directory.
func NewCommandLister(command []string, dir string) *CommandLister {
	return &CommandLister{command: command, dir: dir}
}

// List starts the tool when iteration begins. Stopping the iteration early
// kills the tool.
func (l *CommandLister) List(ctx context.Context, root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if len(l.command) == 0 {
			yield("", fmt.Errorf("discovery command is empty"))
			return
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		args := make([]string, len(l.command))
		for i, a := range l.command {
			args[i] = strings.ReplaceAll(a, "{root}", root)
		}
		cmd := exec.CommandContext(ctx, args[0], args[1:]...)
		cmd.Dir = l.dir
		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		stdout, err := cmd.StdoutPipe()
		if err != nil {
			yield("", fmt.Errorf("create stdout pipe: %w", err))
			return
		}
		if err := cmd.Start(); err != nil {
			yield("", fmt.Errorf("start %s: %w", args[0], err))
			return
		}

		sc := bufio.NewScanner(stdout)
		sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
		for sc.Scan() {
			id, ok := ParseNodeID(sc.Text())
			if !ok {
				continue
			}
			if !yield(id, nil) {
				cancel()
				_ = cmd.Wait()
				return
			}
		}
		scanErr := sc.Err()
		waitErr := cmd.Wait()
		if scanErr != nil {
			yield("", fmt.Errorf("read %s output: %w", args[0], scanErr))
			return
		}
		if waitErr != nil {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				yield("", fmt.Errorf("%s: %w", strings.Join(args, " "), waitErr))
				return
			}
			yield("", fmt.Errorf("%s: %w: %s", strings.Join(args, " "), waitErr, lastLine(msg)))
		}
	}
}

// ParseNodeID returns the node id on a collection output line. Summary lines,
// warnings and blank lines are rejected.
func ParseNodeID(line string) (string, bool) {
	line = strings.TrimRight(line, "\r")
	if line == "" || line != strings.TrimSpace(line) {
		return "", false
	}
	if strings.HasPrefix(line, "=") || strings.HasPrefix(line, "-") {
		return "", false
	}
	file, _, ok := strings.Cut(line, "::")
	if !ok || file == "" || strings.ContainsAny(file, " \t") {
		return "", false
	}
	return line, true
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
