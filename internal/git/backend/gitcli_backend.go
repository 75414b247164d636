package backend

import (
	"fmt"
	"strings"
)

func (g *gitCLI) Remotes() ([]string, error) {
	out, err := g.run([]string{"remote"}, "git remote")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

func (g *gitCLI) AddRemote(name, url string) error {
	name = strings.TrimSpace(name)
	url = strings.TrimSpace(url)
	if name == "" || url == "" {
		return fmt.Errorf("remote name and url not specified")
	}
	_, err := g.run([]string{"remote", "add", name, url}, "git remote add")
	return err
}

func (g *gitCLI) Fetch(remote string, tags bool) error {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return fmt.Errorf("remote not specified")
	}
	args := []string{"fetch", remote}
	if tags {
		args = append(args, "--tags")
	}
	_, err := g.run(args, "git fetch")
	return err
}

// LatestReachableTag returns the nearest tag reachable from ref by commit-graph
// distance, which is how git describe orders candidates. Lexical or semver
// ordering plays no part.
func (g *gitCLI) LatestReachableTag(ref string) (string, error) {
	return g.run([]string{"describe", "--tags", "--abbrev=0", ref}, "git describe")
}

func (g *gitCLI) CommitForTag(tag string) (string, error) {
	return g.run([]string{"rev-list", "-n", "1", tag}, "git rev-list")
}

func (g *gitCLI) Head() (string, error) {
	return g.run([]string{"rev-parse", "HEAD"}, "git rev-parse")
}

// TagsAt returns the tags pointing exactly at rev, or nil when there are none
// or the lookup fails.
func (g *gitCLI) TagsAt(rev string) []string {
	out, ok := g.runTolerant([]string{"tag", "--points-at", rev})
	if !ok {
		return nil
	}
	return splitLines(out)
}

// IsAncestor reports whether hash is a proper or equal ancestor of rev.
func (g *gitCLI) IsAncestor(hash, rev string) bool {
	_, ok := g.runTolerant([]string{"merge-base", "--is-ancestor", hash, rev})
	return ok
}

func (g *gitCLI) ListTags(pattern string) ([]string, error) {
	out, err := g.run([]string{"tag", "--list", pattern}, "git tag")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CreateTag tags HEAD. Fails when the name already exists; there is no
// overwrite.
func (g *gitCLI) CreateTag(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("tag not specified")
	}
	_, err := g.run([]string{"tag", name}, "git tag")
	return err
}

func (g *gitCLI) DeleteTag(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("tag not specified")
	}
	_, err := g.run([]string{"tag", "-d", name}, "git tag -d")
	return err
}

// RebaseOnto replays the commits reachable from HEAD but not from upstreamRef
// onto newBase, rewriting history. Conflicts make the underlying command fail
// and propagate as an error; there is no automated resolution.
func (g *gitCLI) RebaseOnto(newBase, upstreamRef string) error {
	newBase = strings.TrimSpace(newBase)
	upstreamRef = strings.TrimSpace(upstreamRef)
	if newBase == "" || upstreamRef == "" {
		return fmt.Errorf("rebase target not specified")
	}
	_, err := g.run([]string{"rebase", "--onto", newBase, upstreamRef}, "git rebase")
	return err
}
