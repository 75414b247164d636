package sync

import "errors"

// fakeBackend scripts repository state for orchestrator tests and records
// every mutation so scenarios can assert on exactly what ran.
type fakeBackend struct {
	repoPath string

	remotesFunc            func() ([]string, error)
	fetchFunc              func(remote string, tags bool) error
	latestReachableTagFunc func(ref string) (string, error)
	commitForTagFunc       func(tag string) (string, error)
	headFunc               func() (string, error)
	tagsAtFunc             func(rev string) []string
	isAncestorFunc         func(hash, rev string) bool
	listTagsFunc           func(pattern string) ([]string, error)
	createTagFunc          func(name string) error
	deleteTagFunc          func(name string) error
	rebaseOntoFunc         func(newBase, upstreamRef string) error

	addedRemotes  [][2]string
	fetchCalls    int
	createdTags   []string
	deletedTags   []string
	rebaseTargets [][2]string
}

func (f *fakeBackend) RepoPath() string { return f.repoPath }

func (f *fakeBackend) Remotes() ([]string, error) {
	if f.remotesFunc != nil {
		return f.remotesFunc()
	}
	return []string{"origin", "base"}, nil
}

func (f *fakeBackend) AddRemote(name, url string) error {
	f.addedRemotes = append(f.addedRemotes, [2]string{name, url})
	return nil
}

func (f *fakeBackend) Fetch(remote string, tags bool) error {
	f.fetchCalls++
	if f.fetchFunc != nil {
		return f.fetchFunc(remote, tags)
	}
	return nil
}

func (f *fakeBackend) LatestReachableTag(ref string) (string, error) {
	if f.latestReachableTagFunc != nil {
		return f.latestReachableTagFunc(ref)
	}
	return "", errors.New("unexpected LatestReachableTag call")
}

func (f *fakeBackend) CommitForTag(tag string) (string, error) {
	if f.commitForTagFunc != nil {
		return f.commitForTagFunc(tag)
	}
	return "", errors.New("unexpected CommitForTag call")
}

func (f *fakeBackend) Head() (string, error) {
	if f.headFunc != nil {
		return f.headFunc()
	}
	return "", errors.New("unexpected Head call")
}

func (f *fakeBackend) TagsAt(rev string) []string {
	if f.tagsAtFunc != nil {
		return f.tagsAtFunc(rev)
	}
	return nil
}

func (f *fakeBackend) IsAncestor(hash, rev string) bool {
	if f.isAncestorFunc != nil {
		return f.isAncestorFunc(hash, rev)
	}
	return false
}

func (f *fakeBackend) ListTags(pattern string) ([]string, error) {
	if f.listTagsFunc != nil {
		return f.listTagsFunc(pattern)
	}
	return nil, nil
}

func (f *fakeBackend) CreateTag(name string) error {
	f.createdTags = append(f.createdTags, name)
	if f.createTagFunc != nil {
		return f.createTagFunc(name)
	}
	return nil
}

func (f *fakeBackend) DeleteTag(name string) error {
	f.deletedTags = append(f.deletedTags, name)
	if f.deleteTagFunc != nil {
		return f.deleteTagFunc(name)
	}
	return nil
}

func (f *fakeBackend) RebaseOnto(newBase, upstreamRef string) error {
	f.rebaseTargets = append(f.rebaseTargets, [2]string{newBase, upstreamRef})
	if f.rebaseOntoFunc != nil {
		return f.rebaseOntoFunc(newBase, upstreamRef)
	}
	return nil
}
