// Package sync keeps a fork's local branch aligned with an upstream
// repository and records the result as a patch tag.
package sync

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/forkpatch/forkpatch/internal/git/backend"
	"github.com/forkpatch/forkpatch/internal/tagname"
)

// Defaults mirror the fork this tool was originally written for.
const (
	DefaultRemoteName = "base"
	DefaultRemoteURL  = "https://github.com/asottile/reorder-python-imports.git"
	DefaultBranch     = "main"
)

// ErrNoLocalPatches reports that HEAD sits exactly on the latest upstream
// tag, leaving nothing to snapshot.
var ErrNoLocalPatches = errors.New("no local patches found")

// Options configures a Syncer. Zero values fall back to the defaults above.
type Options struct {
	// RemoteName is the reserved name of the upstream remote, created on
	// demand when absent.
	RemoteName string
	// RemoteURL is the upstream repository URL used when the remote is
	// created. An existing remote is never updated, even when its URL
	// differs; known gap.
	RemoteURL string
	// Branch is the upstream branch whose tip anchors tag resolution and
	// rebases.
	Branch string
	// Progress receives human-readable status lines. Discarded when nil.
	Progress io.Writer
}

// Syncer runs the synchronization algorithm against a repository Backend.
// Execution is strictly sequential; every operation is attempted exactly
// once and the first failure aborts the run.
type Syncer struct {
	backend  backend.Backend
	remote   string
	url      string
	branch   string
	progress io.Writer
}

func New(b backend.Backend, opts Options) *Syncer {
	s := &Syncer{
		backend:  b,
		remote:   opts.RemoteName,
		url:      opts.RemoteURL,
		branch:   opts.Branch,
		progress: opts.Progress,
	}
	if s.remote == "" {
		s.remote = DefaultRemoteName
	}
	if s.url == "" {
		s.url = DefaultRemoteURL
	}
	if s.branch == "" {
		s.branch = DefaultBranch
	}
	if s.progress == nil {
		s.progress = io.Discard
	}
	return s
}

func (s *Syncer) printf(format string, v ...any) {
	fmt.Fprintf(s.progress, format, v...)
}

func (s *Syncer) upstreamRef() string {
	return s.remote + "/" + s.branch
}

// Run executes the full synchronization: ensure the upstream remote, fetch,
// resolve the latest upstream tag, then either increment the patch series on
// the current base or rebase onto the new upstream tag and restart the series
// at p1. It returns the created tag name, or "" when HEAD already carries a
// patch tag for the latest upstream version and nothing was mutated.
func (s *Syncer) Run() (string, error) {
	if err := s.ensureRemote(); err != nil {
		return "", err
	}

	s.printf("Fetching from upstream\n")
	if err := s.backend.Fetch(s.remote, false); err != nil {
		return "", err
	}

	latest, err := s.latestUpstreamTag()
	if err != nil {
		return "", err
	}
	latestHash, err := s.backend.CommitForTag(latest)
	if err != nil {
		return "", err
	}
	s.printf("Latest upstream version found: %s (%s)\n", latest, latestHash)

	for _, tag := range s.backend.TagsAt("HEAD") {
		if tagname.IsPatchOf(tag, latest) {
			s.printf("Current HEAD is already up-to-date with %s\n", tag)
			return "", nil
		}
	}

	headHash, err := s.backend.Head()
	if err != nil {
		return "", err
	}
	slog.Debug("comparing positions",
		slog.String("head", headHash),
		slog.String("upstream_tag", latest),
		slog.String("upstream_hash", latestHash),
	)
	if headHash == latestHash {
		return "", fmt.Errorf("%w relative to %s", ErrNoLocalPatches, latestHash)
	}

	var newTag string
	if s.backend.IsAncestor(latestHash, "HEAD") {
		newTag, err = s.nextPatchTag(latest)
		if err != nil {
			return "", err
		}
		s.printf("New local patches detected on %s, incrementing to %s\n", latest, newTag)
	} else {
		s.printf("New upstream tag %s found, rebasing\n", latest)
		if err := s.removePatchTags(); err != nil {
			return "", err
		}
		if err := s.backend.RebaseOnto(latestHash, s.upstreamRef()); err != nil {
			return "", err
		}
		newTag = tagname.Patch(latest, 1)
	}

	if err := s.backend.CreateTag(newTag); err != nil {
		return "", err
	}
	s.printf("Successfully updated to: %s\n", newTag)
	s.printf("Run \"git push origin %s --force && git push origin --tags --prune\" when ready\n", s.branch)
	return newTag, nil
}

// ensureRemote adds the reserved upstream remote when it is not configured
// yet. An existing remote is left untouched.
func (s *Syncer) ensureRemote() error {
	remotes, err := s.backend.Remotes()
	if err != nil {
		return err
	}
	for _, remote := range remotes {
		if remote == s.remote {
			return nil
		}
	}
	s.printf("Remote %q not found, adding %s\n", s.remote, s.url)
	return s.backend.AddRemote(s.remote, s.url)
}

// latestUpstreamTag fetches upstream tags and resolves the most recent tag
// reachable from the upstream branch tip.
func (s *Syncer) latestUpstreamTag() (string, error) {
	if err := s.backend.Fetch(s.remote, true); err != nil {
		return "", err
	}
	return s.backend.LatestReachableTag(s.upstreamRef())
}

// nextPatchTag computes <base>-p<N+1> where N is the highest existing patch
// suffix for base, 0 when the series is empty.
func (s *Syncer) nextPatchTag(base string) (string, error) {
	tags, err := s.backend.ListTags(tagname.PatchPattern(base))
	if err != nil {
		return "", err
	}
	return tagname.Patch(base, tagname.HighestSuffix(tags)+1), nil
}

// removePatchTags deletes every local patch tag, across all base versions.
// Runs before a rebase onto a new upstream release starts a fresh series.
func (s *Syncer) removePatchTags() error {
	tags, err := s.backend.ListTags(tagname.PatchGlob)
	if err != nil {
		return err
	}
	for _, tag := range tags {
		slog.Debug("removing stale patch tag", slog.String("tag", tag))
		if err := s.backend.DeleteTag(tag); err != nil {
			return err
		}
	}
	return nil
}
