package git

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/pkg/errors"
)

// DriverName is the merge-driver identifier registered in git config and
// referenced from .gitattributes.
const DriverName = "refhist"

// DriverDescription appears as the driver's name key in git config.
const DriverDescription = "refactoring history index merger"

// Repository wraps the enclosing git repository for merge-driver setup.
type Repository struct {
	repo *git.Repository
}

// Open locates the repository enclosing the working directory.
func Open() (*Repository, error) {
	r, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.Wrap(err, "opening git repository")
	}
	return &Repository{repo: r}, nil
}

// InstallMergeDriver writes the merge-driver definition into the
// repository's local config. command is the driver invocation with git's
// %O/%A/%B placeholders; git leaves the result in %A.
func (r *Repository) InstallMergeDriver(command string) error {
	cfg, err := r.repo.Config()
	if err != nil {
		return errors.Wrap(err, "reading git config")
	}

	sub := cfg.Raw.Section("merge").Subsection(DriverName)
	sub.SetOption("name", DriverDescription)
	sub.SetOption("driver", command)

	if err := r.repo.SetConfig(cfg); err != nil {
		return errors.Wrap(err, "writing git config")
	}
	return nil
}

// EnsureAttributes makes .gitattributes route the given pattern through the
// merge driver. go-git does not model .gitattributes, so the file is edited
// directly at the worktree root.
func (r *Repository) EnsureAttributes(pattern string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return errors.Wrap(err, "resolving worktree")
	}

	path := filepath.Join(wt.Filesystem.Root(), ".gitattributes")
	line := pattern + " merge=" + DriverName

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "reading .gitattributes")
	}
	for _, existing := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(existing) == line {
			return nil
		}
	}

	content := string(data)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += line + "\n"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrap(err, "writing .gitattributes")
	}
	return nil
}
