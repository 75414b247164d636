package backend

import (
	"bytes"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

type gitCLI struct {
	path string
}

// OpenCLI resolves repoPath to a repository root and returns a Backend that
// shells out to the git executable for every operation.
func OpenCLI(repoPath string) (Backend, error) {
	if err := ensureMinGitVersion(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	tmp := &gitCLI{path: abs}
	root, err := tmp.run([]string{"rev-parse", "--show-toplevel"}, "git rev-parse")
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	if root == "" {
		return nil, fmt.Errorf("open repository: git rev-parse returned empty root")
	}
	return &gitCLI{path: root}, nil
}

func (g *gitCLI) RepoPath() string {
	if g == nil {
		return ""
	}
	return g.path
}

// run executes git with args inside the repository and returns trimmed stdout.
// A non-zero exit is an error carrying the captured stderr text.
func (g *gitCLI) run(args []string, context string) (string, error) {
	out, stderr, err := g.exec(args)
	if err != nil {
		if stderr != "" {
			return "", fmt.Errorf("%s: %v: %s", context, err, stderr)
		}
		return "", fmt.Errorf("%s: %w", context, err)
	}
	return out, nil
}

// runTolerant executes git with args and reports a non-zero exit as an absent
// result instead of an error. Used for queries whose failure drives branching.
func (g *gitCLI) runTolerant(args []string) (string, bool) {
	out, stderr, err := g.exec(args)
	if err != nil {
		slog.Debug("git command tolerated failure",
			slog.String("args", strings.Join(args, " ")),
			slog.String("stderr", stderr),
		)
		return "", false
	}
	return out, true
}

func (g *gitCLI) exec(args []string) (stdout, stderr string, err error) {
	if g == nil || g.path == "" {
		return "", "", fmt.Errorf("repository root not set")
	}
	cmdArgs := append([]string{"-C", g.path}, args...)
	cmd := exec.Command("git", cmdArgs...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return strings.TrimSpace(outBuf.String()), strings.TrimSpace(errBuf.String()), err
}

// splitLines turns command output into one entry per non-empty line.
func splitLines(out string) []string {
	var lines []string
	for _, rawLine := range strings.Split(out, "\n") {
		line := strings.TrimSpace(strings.TrimRight(rawLine, "\r"))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
