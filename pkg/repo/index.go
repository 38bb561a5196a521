package repo

import (
	"io"
	"os"

	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Index reads the staging index. An unborn repository yields an empty one.
// The returned index is a private copy: changes reach the repository only
// through SetIndex.
func (r *Repository) Index() (*index.Index, error) {
	idx, err := r.storer.Index()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIndexWrite, "cannot read index").
			WithDetail(errors.DetailVCSCategory, CategoryIndexCorrupt)
	}

	cp := *idx
	cp.Entries = make([]*index.Entry, len(idx.Entries))
	for i, e := range idx.Entries {
		ec := *e
		cp.Entries[i] = &ec
	}
	return &cp, nil
}

// SetIndex persists idx.
func (r *Repository) SetIndex(idx *index.Index) error {
	if err := r.storer.SetIndex(idx); err != nil {
		return errors.Wrap(err, errors.ErrIndexWrite, "cannot write index").
			WithDetail(errors.DetailVCSCategory, Category(err))
	}
	return nil
}

// WriteBlob stores the current content of the worktree file at path as a
// blob. For symbolic links the blob holds the link target.
func (r *Repository) WriteBlob(path string) (plumbing.Hash, os.FileInfo, error) {
	fi, err := r.worktree.Lstat(path)
	if err != nil {
		return plumbing.ZeroHash, nil, blobError(err, path)
	}

	obj := r.storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, nil, blobError(err, path)
	}

	if fi.Mode()&os.ModeSymlink != 0 {
		target, err := r.worktree.Readlink(path)
		if err != nil {
			return plumbing.ZeroHash, nil, blobError(err, path)
		}
		if _, err := io.WriteString(w, target); err != nil {
			return plumbing.ZeroHash, nil, blobError(err, path)
		}
	} else {
		f, err := r.worktree.Open(path)
		if err != nil {
			return plumbing.ZeroHash, nil, blobError(err, path)
		}
		_, err = io.Copy(w, f)
		f.Close()
		if err != nil {
			return plumbing.ZeroHash, nil, blobError(err, path)
		}
	}
	if err := w.Close(); err != nil {
		return plumbing.ZeroHash, nil, blobError(err, path)
	}

	h, err := r.storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, nil, blobError(err, path)
	}
	return h, fi, nil
}

// Exists reports whether path is present in the worktree as something that
// can be tracked: a regular file or a symbolic link.
func (r *Repository) Exists(path string) (bool, error) {
	fi, err := r.worktree.Lstat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrIndexWrite, "cannot stat %s", path).
			WithDetail(errors.DetailVCSCategory, Category(err))
	}
	return fi.Mode().IsRegular() || fi.Mode()&os.ModeSymlink != 0, nil
}

// Stage records hash and fi as the index entry for path, adding the entry
// if needed. It reports whether the entry changed.
func Stage(idx *index.Index, path string, hash plumbing.Hash, fi os.FileInfo) (bool, error) {
	mode, err := filemode.NewFromOSFileMode(fi.Mode())
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrInvalidPath, "unsupported file mode for %s", path)
	}

	e, err := idx.Entry(path)
	changed := false
	if err == index.ErrEntryNotFound {
		e = idx.Add(path)
		changed = true
	} else if err != nil {
		return false, errors.Wrap(err, errors.ErrIndexWrite, "cannot read index entry").
			WithDetail("path", path)
	}
	if e.Hash != hash || e.Mode != mode {
		changed = true
	}

	e.Hash = hash
	e.Mode = mode
	e.ModifiedAt = fi.ModTime()
	e.Size = uint32(fi.Size())
	return changed, nil
}

// indexFromHead fills the index with the entries of the HEAD tree without
// touching the worktree.
func (r *Repository) indexFromHead() error {
	head, err := r.HeadCommit()
	if err != nil || head == nil {
		return err
	}
	tree, err := head.Tree()
	if err != nil {
		return errors.Wrap(err, errors.ErrRepositoryState, "cannot read head tree").
			WithDetail(errors.DetailVCSCategory, Category(err))
	}

	idx := &index.Index{Version: 2}
	err = tree.Files().ForEach(func(f *object.File) error {
		e := idx.Add(f.Name)
		e.Hash = f.Hash
		e.Mode = f.Mode
		e.Size = uint32(f.Size)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrRepositoryState, "cannot walk head tree").
			WithDetail(errors.DetailVCSCategory, Category(err))
	}
	return r.SetIndex(idx)
}

func blobError(err error, path string) error {
	code := errors.ErrIndexWrite
	if os.IsNotExist(err) {
		code = errors.ErrInvalidPath
	}
	return errors.Wrapf(err, code, "cannot store %s", path).
		WithDetail("path", path).
		WithDetail(errors.DetailVCSCategory, Category(err))
}
