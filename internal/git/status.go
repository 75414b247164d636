// Package git provides read-only repository inspection for status reporting.
// It opens the repository natively instead of shelling out; mutations stay
// with the CLI backend used by the synchronizer.
package git

import (
	"fmt"
	"path/filepath"
	"sort"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/forkpatch/forkpatch/internal/tagname"
)

type Service struct {
	repo *gitlib.Repository
	path string
}

func Open(repoPath string) (*Service, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return &Service{repo: repo, path: abs}, nil
}

func (s *Service) RepoPath() string {
	return s.path
}

// Status is a snapshot of where the fork currently stands.
type Status struct {
	Head     string   // HEAD commit hash
	Branch   string   // checked-out branch short name, "" when detached
	HeadTags []string // tags pointing exactly at HEAD, sorted
	Series   []PatchSeries
}

// PatchSeries summarizes the local patch tags of one upstream version.
type PatchSeries struct {
	Base    string
	Highest int
}

// Status reports HEAD, the tags at HEAD and every patch series present in
// the repository, grouped by base version.
func (s *Service) Status() (*Status, error) {
	head, err := s.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	st := &Status{Head: head.Hash().String()}
	if head.Name().IsBranch() {
		st.Branch = head.Name().Short()
	}

	iter, err := s.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	highest := map[string]int{}
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		target := ref.Hash()
		// Annotated tags point at a tag object; peel it to the commit.
		if tagObj, tagErr := s.repo.TagObject(ref.Hash()); tagErr == nil {
			target = tagObj.Target
		} else if tagErr != plumbing.ErrObjectNotFound {
			return tagErr
		}
		if target == head.Hash() {
			st.HeadTags = append(st.HeadTags, name)
		}
		if base, n, ok := tagname.Split(name); ok && n > highest[base] {
			highest[base] = n
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	sort.Strings(st.HeadTags)
	bases := make([]string, 0, len(highest))
	for base := range highest {
		bases = append(bases, base)
	}
	sort.Strings(bases)
	for _, base := range bases {
		st.Series = append(st.Series, PatchSeries{Base: base, Highest: highest[base]})
	}
	return st, nil
}
