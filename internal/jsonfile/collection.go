package jsonfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	cl "media-catalog/pkg/catelog"

	jsonutils "github.com/twitsprout/tools/json"
)

// collection is a JSON array of records kept in a single file.
type collection[T any] struct {
	path string
}

// listAll returns every record in file order. A missing file is an empty
// collection.
func (c collection[T]) listAll() ([]T, error) {
	f, err := os.Open(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", cl.ErrStorage, c.path, err)
	}
	defer f.Close()

	var recs []T
	if err := jsonutils.Decode(f, &recs); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", cl.ErrStorage, c.path, err)
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

// find returns the first record matching fn, or cl.ErrNotFound.
func (c collection[T]) find(fn func(T) bool) (T, error) {
	var zero T
	recs, err := c.listAll()
	if err != nil {
		return zero, err
	}
	for _, r := range recs {
		if fn(r) {
			return r, nil
		}
	}
	return zero, cl.ErrNotFound
}

// findAll returns every record matching fn, in file order.
func (c collection[T]) findAll(fn func(T) bool) ([]T, error) {
	recs, err := c.listAll()
	if err != nil {
		return nil, err
	}
	res := make([]T, 0, len(recs))
	for _, r := range recs {
		if fn(r) {
			res = append(res, r)
		}
	}
	return res, nil
}

// replaceAll overwrites the whole collection. The file is written to a
// temporary sibling and renamed into place so readers never see a partial
// write.
func (c collection[T]) replaceAll(recs []T) error {
	if recs == nil {
		recs = []T{}
	}
	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+"-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file in %s: %v", cl.ErrStorage, dir, err)
	}
	defer os.Remove(tmp.Name())

	if err := jsonutils.Encode(tmp, recs, ""); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: encode %s: %v", cl.ErrStorage, c.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", cl.ErrStorage, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("%w: rename into %s: %v", cl.ErrStorage, c.path, err)
	}
	return nil
}

// upsert replaces the first record for which same returns true with rec, or
// appends rec when there is none. Callers must hold the store's write lock.
func (c collection[T]) upsert(rec T, same func(T) bool) error {
	recs, err := c.listAll()
	if err != nil {
		return err
	}
	replaced := false
	for i, r := range recs {
		if same(r) {
			recs[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		recs = append(recs, rec)
	}
	return c.replaceAll(recs)
}

// modify applies fn to the first record matching match and, when fn reports
// a change, writes the collection back. Callers must hold the store's write
// lock for the whole call.
func (c collection[T]) modify(match func(T) bool, fn func(*T) (bool, error)) (T, error) {
	var zero T
	recs, err := c.listAll()
	if err != nil {
		return zero, err
	}
	for i := range recs {
		if !match(recs[i]) {
			continue
		}
		rec := recs[i]
		changed, err := fn(&rec)
		if err != nil {
			return zero, err
		}
		if !changed {
			return rec, nil
		}
		recs[i] = rec
		if err := c.replaceAll(recs); err != nil {
			return zero, err
		}
		return rec, nil
	}
	return zero, cl.ErrNotFound
}
