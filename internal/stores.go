package internal

import (
	"context"
	cl "media-catalog/pkg/catelog"

	"gopkg.in/guregu/null.v3"
)

// PhotoStore reads photos and writes single photos back by id.
type PhotoStore interface {
	ListPhotos(ctx context.Context) ([]cl.Photo, error)
	ListPhotosByOwner(ctx context.Context, ownerID int) ([]cl.Photo, error)
	ListPhotosInAlbum(ctx context.Context, albumID int) ([]cl.Photo, error)
	GetPhoto(ctx context.Context, id int) (cl.Photo, error)
	SavePhoto(ctx context.Context, p cl.Photo) error
	// ModifyPhoto applies fn to the stored photo and writes the result back
	// when fn reports a change. The read and the write are atomic with
	// respect to every other write of the same store. An error from fn
	// aborts without writing and is returned as is.
	ModifyPhoto(ctx context.Context, id int, fn func(p *cl.Photo) (bool, error)) (cl.Photo, error)
}

type AlbumStore interface {
	ListAlbums(ctx context.Context) ([]cl.Album, error)
	GetAlbum(ctx context.Context, id int) (cl.Album, error)
	FindAlbumByName(ctx context.Context, name string) (cl.Album, error)
}

type UserStore interface {
	ListUsers(ctx context.Context) ([]cl.User, error)
	GetUser(ctx context.Context, id int) (cl.User, error)
	FindUserByUsername(ctx context.Context, username string) (cl.User, error)
}

type CourseStore interface {
	ListCourses(ctx context.Context) ([]cl.Course, error)
	GetCourse(ctx context.Context, code string) (cl.Course, error)
	SaveCourse(ctx context.Context, c cl.Course) error
	// ModifyCourse is ModifyPhoto for courses.
	ModifyCourse(ctx context.Context, code string, fn func(c *cl.Course) (bool, error)) (cl.Course, error)
}

// Store is a backing medium holding every collection. Close releases it.
type Store interface {
	PhotoStore
	AlbumStore
	UserStore
	CourseStore
	Close() error
}

// Catalog is the ownership-checked business API consumed by the access
// surfaces.
type Catalog interface {
	ListPhotos(ctx context.Context, userID null.Int) ([]cl.Photo, error)
	GetPhoto(ctx context.Context, photoID, userID int) (cl.Photo, error)
	UpdatePhoto(ctx context.Context, photoID int, upd cl.PhotoUpdate, userID int) (cl.Photo, error)
	AddTag(ctx context.Context, photoID int, tag string, userID int) (bool, error)
	ListAlbums(ctx context.Context) ([]cl.Album, error)
	PhotosInAlbum(ctx context.Context, albumName string, userID null.Int) (cl.Album, []cl.Photo, error)
	Authenticate(ctx context.Context, username, password string) (cl.User, error)
	GetUser(ctx context.Context, id int) (cl.User, error)
	ListCourses(ctx context.Context) ([]cl.Course, error)
	GetCourse(ctx context.Context, code string) (cl.Course, error)
	UpdateCourseCapacity(ctx context.Context, code string, capacity, userID int) (cl.Course, error)
}
