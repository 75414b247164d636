package backend

// Backend abstracts the repository operations the synchronizer performs.
//
// The default implementation shells out to the git executable, but the
// interface keeps the orchestration logic testable without a real repository.
//
// Operations whose failure is a normal branching outcome rather than an error
// (no tags at a revision, a hash that is not an ancestor) report absence with
// an empty result instead of returning an error.
type Backend interface {
	RepoPath() string

	Remotes() ([]string, error)
	AddRemote(name, url string) error
	Fetch(remote string, tags bool) error

	LatestReachableTag(ref string) (string, error)
	CommitForTag(tag string) (string, error)
	Head() (string, error)
	TagsAt(rev string) []string
	IsAncestor(hash, rev string) bool

	ListTags(pattern string) ([]string, error)
	CreateTag(name string) error
	DeleteTag(name string) error

	RebaseOnto(newBase, upstreamRef string) error
}
