// Package jsonfile stores the catalog collections as JSON arrays in a data
// directory, one file per collection.
//
// A Store assumes it is the only writer of its directory. Writes inside one
// process are serialized, and ModifyPhoto/ModifyCourse hold the write lock
// across their read and write, so concurrent updates are not lost. Two
// processes sharing a directory can still overwrite each other.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"media-catalog/internal"
	cl "media-catalog/pkg/catelog"
)

const (
	PhotosFile  = "photos.json"
	AlbumsFile  = "albums.json"
	UsersFile   = "users.json"
	CoursesFile = "courses.json"
)

// Store represents the file-backed catalog store.
type Store struct {
	dir string
	mu  sync.Mutex

	photos  collection[cl.Photo]
	albums  collection[cl.Album]
	users   collection[cl.User]
	courses collection[cl.Course]
}

var _ internal.Store = (*Store)(nil)

// New opens the store rooted at dir, creating the directory if needed.
// Collection files that do not exist yet read as empty.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %v", cl.ErrStorage, err)
	}
	return &Store{
		dir:     dir,
		photos:  collection[cl.Photo]{path: filepath.Join(dir, PhotosFile)},
		albums:  collection[cl.Album]{path: filepath.Join(dir, AlbumsFile)},
		users:   collection[cl.User]{path: filepath.Join(dir, UsersFile)},
		courses: collection[cl.Course]{path: filepath.Join(dir, CoursesFile)},
	}, nil
}

// Close is a no-op; files are not held open between calls.
func (s *Store) Close() error {
	return nil
}

func (s *Store) ListPhotos(ctx context.Context) ([]cl.Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.photos.listAll()
}

func (s *Store) ListPhotosByOwner(ctx context.Context, ownerID int) ([]cl.Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.photos.findAll(func(p cl.Photo) bool { return p.OwnedBy(ownerID) })
}

func (s *Store) ListPhotosInAlbum(ctx context.Context, albumID int) ([]cl.Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.photos.findAll(func(p cl.Photo) bool { return p.InAlbum(albumID) })
}

func (s *Store) GetPhoto(ctx context.Context, id int) (cl.Photo, error) {
	if err := ctx.Err(); err != nil {
		return cl.Photo{}, err
	}
	return s.photos.find(func(p cl.Photo) bool { return p.ID == id })
}

// SavePhoto writes p over the stored photo with the same id.
func (s *Store) SavePhoto(ctx context.Context, p cl.Photo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photos.upsert(p, func(r cl.Photo) bool { return r.ID == p.ID })
}

// ModifyPhoto runs fn on the photo with the given id under the write lock.
func (s *Store) ModifyPhoto(ctx context.Context, id int, fn func(p *cl.Photo) (bool, error)) (cl.Photo, error) {
	if err := ctx.Err(); err != nil {
		return cl.Photo{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photos.modify(func(p cl.Photo) bool { return p.ID == id }, fn)
}

func (s *Store) ListAlbums(ctx context.Context) ([]cl.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.albums.listAll()
}

func (s *Store) GetAlbum(ctx context.Context, id int) (cl.Album, error) {
	if err := ctx.Err(); err != nil {
		return cl.Album{}, err
	}
	return s.albums.find(func(a cl.Album) bool { return a.ID == id })
}

// FindAlbumByName matches the album name case-insensitively.
func (s *Store) FindAlbumByName(ctx context.Context, name string) (cl.Album, error) {
	if err := ctx.Err(); err != nil {
		return cl.Album{}, err
	}
	return s.albums.find(func(a cl.Album) bool { return strings.EqualFold(a.Name, name) })
}

func (s *Store) ListUsers(ctx context.Context) ([]cl.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.users.listAll()
}

func (s *Store) GetUser(ctx context.Context, id int) (cl.User, error) {
	if err := ctx.Err(); err != nil {
		return cl.User{}, err
	}
	return s.users.find(func(u cl.User) bool { return u.ID == id })
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (cl.User, error) {
	if err := ctx.Err(); err != nil {
		return cl.User{}, err
	}
	return s.users.find(func(u cl.User) bool { return u.Username == username })
}

func (s *Store) ListCourses(ctx context.Context) ([]cl.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.courses.listAll()
}

func (s *Store) GetCourse(ctx context.Context, code string) (cl.Course, error) {
	if err := ctx.Err(); err != nil {
		return cl.Course{}, err
	}
	return s.courses.find(func(c cl.Course) bool { return c.Code == code })
}

// SaveCourse writes c over the stored course with the same code.
func (s *Store) SaveCourse(ctx context.Context, c cl.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.courses.upsert(c, func(r cl.Course) bool { return r.Code == c.Code })
}

// ModifyCourse runs fn on the course with the given code under the write lock.
func (s *Store) ModifyCourse(ctx context.Context, code string, fn func(c *cl.Course) (bool, error)) (cl.Course, error) {
	if err := ctx.Err(); err != nil {
		return cl.Course{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.courses.modify(func(c cl.Course) bool { return c.Code == code }, fn)
}
