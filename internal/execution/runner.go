package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"shardctl/internal/config"
	"shardctl/internal/domain"
	"shardctl/internal/parser"
)

// CommandRunner runs one group as a child process built from the configured
// command template and classifies it by exit code.
type CommandRunner struct {
	config    *config.Config
	parser    parser.Parser
	failCodes map[int]bool
	stream    io.Writer
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(cfg *config.Config, p parser.Parser) *CommandRunner {
	failCodes := make(map[int]bool, len(cfg.Runner.FailExitCodes))
	for _, code := range cfg.Runner.FailExitCodes {
		failCodes[code] = true
	}
	return &CommandRunner{
		config:    cfg,
		parser:    p,
		failCodes: failCodes,
	}
}

// SetStream copies each group's output to w while it runs
func (r *CommandRunner) SetStream(w io.Writer) {
	r.stream = w
}

// Args expands the command template for one group
func (r *CommandRunner) Args(label, target string) []string {
	replacer := strings.NewReplacer(
		"{target}", target,
		"{label}", label,
		"{results_dir}", r.config.GetResultsDir(),
		"{project}", r.config.ProjectPath,
	)
	args := make([]string, len(r.config.Runner.Command))
	for i, a := range r.config.Runner.Command {
		args[i] = replacer.Replace(a)
	}
	return args
}

// LogPath returns the file receiving a group's combined output
func (r *CommandRunner) LogPath(label string) string {
	return filepath.Join(r.config.GetResultsDir(), sanitize(label)+".log")
}

// Run executes the group and waits for it without a timeout; cancellation
// comes only from ctx.
func (r *CommandRunner) Run(ctx context.Context, label, target string) domain.RunResult {
	start := time.Now()
	result := domain.RunResult{Label: label, Target: target}
	finish := func(status domain.Status, diagnostic string) domain.RunResult {
		result.Status = status
		result.Diagnostic = diagnostic
		result.Duration = time.Since(start)
		return result
	}

	args := r.Args(label, target)
	if len(args) == 0 {
		return finish(domain.StatusError, "runner command is empty")
	}

	logPath := r.LogPath(label)
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return finish(domain.StatusError, fmt.Sprintf("create results dir: %v", err))
	}
	logFile, err := os.Create(logPath)
	if err != nil {
		return finish(domain.StatusError, fmt.Sprintf("create group log: %v", err))
	}
	defer logFile.Close()

	var output bytes.Buffer
	writers := []io.Writer{&output, logFile}
	if r.stream != nil {
		writers = append(writers, r.stream)
	}
	sink := &lockedWriter{w: io.MultiWriter(writers...)}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = os.Environ() // carries the applied environment profile
	cmd.Dir = r.config.ProjectPath

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return finish(domain.StatusError, fmt.Sprintf("failed to create stdout pipe: %v", err))
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return finish(domain.StatusError, fmt.Sprintf("failed to create stderr pipe: %v", err))
	}
	if err := cmd.Start(); err != nil {
		return finish(domain.StatusError, fmt.Sprintf("failed to start %s: %v", args[0], err))
	}

	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(sink, stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(sink, stderr)
		return err
	})
	copyErr := g.Wait()
	waitErr := cmd.Wait()

	status, reason := r.classify(waitErr)
	out := output.String()
	result.Summary = r.parser.SummaryLine(out)
	result.CasesPassed, result.CasesFailed = r.parser.ParseTestCounts(out, status == domain.StatusPassed)

	diagnostic := ""
	if status != domain.StatusPassed {
		diagnostic = joinNonEmpty(reason, r.parser.Diagnostic(out))
	}
	if copyErr != nil && status == domain.StatusPassed {
		return finish(domain.StatusError, fmt.Sprintf("read output: %v", copyErr))
	}
	return finish(status, diagnostic)
}

// classify maps the wait error to a status and a reason for non-passing runs:
// exit 0 passes, a configured failure exit code fails, anything else errors.
func (r *CommandRunner) classify(waitErr error) (domain.Status, string) {
	if waitErr == nil {
		return domain.StatusPassed, ""
	}
	var exitErr *exec.ExitError
	if !errors.As(waitErr, &exitErr) {
		return domain.StatusError, waitErr.Error()
	}
	code := exitErr.ExitCode()
	if code < 0 {
		return domain.StatusError, fmt.Sprintf("terminated: %v", exitErr)
	}
	if r.failCodes[code] {
		return domain.StatusFailed, ""
	}
	return domain.StatusError, fmt.Sprintf("exit status %d", code)
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func sanitize(label string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ', '\t', '\n':
			return '_'
		}
		return r
	}, label)
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
