package repo

import (
	"io"
	"os"
	"time"

	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
)

// FileState is the worktree state of one tracked path.
type FileState struct {
	Path     string
	Status   types.ItemStatus
	Size     int64
	Modified time.Time
}

// Status compares every index entry with the worktree. Untracked files are
// never considered.
func (r *Repository) Status() ([]FileState, error) {
	idx, err := r.Index()
	if err != nil {
		return nil, err
	}

	states := make([]FileState, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		st := FileState{Path: e.Name, Status: types.StatusTracked}

		fi, err := r.worktree.Lstat(e.Name)
		if os.IsNotExist(err) {
			st.Status = types.StatusDeleted
			states = append(states, st)
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrRepositoryState, "cannot stat %s", e.Name).
				WithDetail(errors.DetailVCSCategory, Category(err))
		}
		st.Size = fi.Size()
		st.Modified = fi.ModTime()

		hash, err := r.hashWorktreeFile(e.Name, fi)
		if err != nil {
			return nil, err
		}
		mode, _ := filemode.NewFromOSFileMode(fi.Mode())
		if hash != e.Hash || mode != e.Mode {
			st.Status = types.StatusModified
		}
		states = append(states, st)
	}
	return states, nil
}

func (r *Repository) hashWorktreeFile(path string, fi os.FileInfo) (plumbing.Hash, error) {
	var content []byte
	if fi.Mode()&os.ModeSymlink != 0 {
		target, err := r.worktree.Readlink(path)
		if err != nil {
			return plumbing.ZeroHash, blobError(err, path)
		}
		content = []byte(target)
	} else if fi.Mode().IsRegular() {
		f, err := r.worktree.Open(path)
		if err != nil {
			return plumbing.ZeroHash, blobError(err, path)
		}
		content, err = io.ReadAll(f)
		f.Close()
		if err != nil {
			return plumbing.ZeroHash, blobError(err, path)
		}
	} else {
		// a directory or device now sits where the file was
		return plumbing.ZeroHash, nil
	}
	return plumbing.ComputeHash(plumbing.BlobObject, content), nil
}
