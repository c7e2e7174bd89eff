// Package vcs answers the two version-control questions a review needs: when
// a test file was last edited, and which commit last touched a pattern.
//
// GitHistory reads the repository directly with go-git, so no git binary is
// required. NoHistory and Static stand in when history is unavailable or must
// be constant (deterministic rendering in tests).
package vcs

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DateFormat matches git's default %ad rendering
const DateFormat = "Mon Jan 2 15:04:05 2006 -0700"

// History looks up the latest commit touching a path
type History interface {
	// LastEdited returns the author date of the latest commit touching path,
	// or "" when no commit touches it
	LastEdited(path string) (string, error)
	// LastCommitLine returns "<short hash> <subject>\n" for the latest commit
	// touching path, or "" when no commit touches it
	LastCommitLine(path string) (string, error)
}

// GitHistory answers History queries from a git repository. The log is
// walked once per directory; later queries for the directory or any file
// directly inside it are answered from that walk.
type GitHistory struct {
	repo *git.Repository
	root string // Worktree root, symlinks resolved

	mu      sync.Mutex
	indexes map[string]*dirIndex // Keyed by slash-separated path relative to root
	walks   int
}

// dirIndex holds the newest commit touching a directory and, for every path
// changed under it, the newest commit touching that path
type dirIndex struct {
	latest *object.Commit
	files  map[string]*object.Commit
}

// OpenGit opens the repository containing dir, searching parent directories
// for the .git directory. It returns git.ErrRepositoryNotExists (wrapped)
// when dir is not inside a repository.
func OpenGit(dir string) (*GitHistory, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", dir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	root, err := resolvePath(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}

	return &GitHistory{repo: repo, root: root, indexes: make(map[string]*dirIndex)}, nil
}

// LastEdited implements History
func (g *GitHistory) LastEdited(file string) (string, error) {
	rel, err := g.relative(file)
	if err != nil {
		return "", err
	}

	var commit *object.Commit
	if rel == "." {
		idx, err := g.index(rel)
		if err != nil {
			return "", err
		}
		commit = idx.latest
	} else {
		idx, err := g.index(path.Dir(rel))
		if err != nil {
			return "", err
		}
		commit = idx.files[rel]

		// A directory has no entry of its own
		if commit == nil {
			if info, statErr := os.Stat(file); statErr == nil && info.IsDir() {
				dirIdx, err := g.index(rel)
				if err != nil {
					return "", err
				}
				commit = dirIdx.latest
			}
		}
	}

	if commit == nil {
		return "", nil
	}
	return commit.Author.When.Format(DateFormat), nil
}

// LastCommitLine implements History
func (g *GitHistory) LastCommitLine(dir string) (string, error) {
	rel, err := g.relative(dir)
	if err != nil {
		return "", err
	}
	idx, err := g.index(rel)
	if err != nil {
		return "", err
	}
	commit := idx.latest
	if commit == nil {
		return "", nil
	}
	return OnelineFormat(commit), nil
}

// OnelineFormat renders a commit the way git log --oneline does
func OnelineFormat(commit *object.Commit) string {
	subject := commit.Message
	if i := strings.IndexByte(subject, '\n'); i >= 0 {
		subject = subject[:i]
	}
	return commit.Hash.String()[:7] + " " + strings.TrimSpace(subject) + "\n"
}

// index walks the log touching rel once, newest first, and records the
// newest commit for rel itself and for every path changed beneath it.
// rel "." covers the whole tree. Results are cached per rel.
func (g *GitHistory) index(rel string) (*dirIndex, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if idx, ok := g.indexes[rel]; ok {
		return idx, nil
	}

	under := func(p string) bool {
		return rel == "." || p == rel || strings.HasPrefix(p, rel+"/")
	}

	opts := &git.LogOptions{Order: git.LogOrderCommitterTime}
	if rel != "." {
		opts.PathFilter = under
	}

	idx := &dirIndex{files: make(map[string]*object.Commit)}

	g.walks++
	iter, err := g.repo.Log(opts)
	if err != nil {
		// An empty repository has no HEAD yet
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			g.indexes[rel] = idx
			return idx, nil
		}
		return nil, fmt.Errorf("failed to read git log for %s: %w", rel, err)
	}
	defer iter.Close()

	err = iter.ForEach(func(commit *object.Commit) error {
		if idx.latest == nil {
			idx.latest = commit
		}
		changed, err := changedPaths(commit)
		if err != nil {
			return err
		}
		for _, p := range changed {
			if under(p) && idx.files[p] == nil {
				idx.files[p] = commit
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read git log for %s: %w", rel, err)
	}

	g.indexes[rel] = idx
	return idx, nil
}

// changedPaths lists the paths commit changes relative to its first parent.
// A root commit is compared against the empty tree.
func changedPaths(commit *object.Commit) ([]string, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree of %s: %w", commit.Hash, err)
	}

	parentTree := &object.Tree{}
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("failed to read parent of %s: %w", commit.Hash, err)
		}
		if parentTree, err = parent.Tree(); err != nil {
			return nil, fmt.Errorf("failed to read tree of %s: %w", parent.Hash, err)
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, fmt.Errorf("failed to diff %s: %w", commit.Hash, err)
	}

	paths := make([]string, 0, len(changes))
	for _, change := range changes {
		if change.From.Name != "" {
			paths = append(paths, change.From.Name)
		}
		if change.To.Name != "" && change.To.Name != change.From.Name {
			paths = append(paths, change.To.Name)
		}
	}
	return paths, nil
}

// relative converts p to a slash-separated path relative to the worktree root
func (g *GitHistory) relative(p string) (string, error) {
	abs, err := resolvePath(p)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(g.root, abs)
	if err != nil {
		return "", fmt.Errorf("failed to relate %s to repository root: %w", p, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside repository %s", p, g.root)
	}
	return filepath.ToSlash(rel), nil
}

func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	// Paths that do not exist yet are compared as given
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return abs, nil
}

// NoHistory is used when history is disabled or the tree is not a repository
type NoHistory struct{}

// LastEdited implements History
func (NoHistory) LastEdited(string) (string, error) { return "", nil }

// LastCommitLine implements History
func (NoHistory) LastCommitLine(string) (string, error) { return "", nil }

// Static returns the same answers for every path
type Static struct {
	Date       string
	CommitLine string
}

// LastEdited implements History
func (s Static) LastEdited(string) (string, error) { return s.Date, nil }

// LastCommitLine implements History
func (s Static) LastCommitLine(string) (string, error) { return s.CommitLine, nil }

// Open returns GitHistory for dir when enabled and dir is inside a repository,
// and NoHistory otherwise. Errors other than a missing repository are returned.
func Open(dir string, enabled bool) (History, error) {
	if !enabled {
		return NoHistory{}, nil
	}
	h, err := OpenGit(dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return NoHistory{}, nil
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}
