package mock

import (
	"context"
	"media-catalog/internal"
	cl "media-catalog/pkg/catelog"

	"gopkg.in/guregu/null.v3"
)

var _ internal.Catalog = (*Catalog)(nil)

// Catalog implements internal.Catalog for mocking purposes.
type Catalog struct {
	ListPhotosFn           func(ctx context.Context, userID null.Int) ([]cl.Photo, error)
	GetPhotoFn             func(ctx context.Context, photoID, userID int) (cl.Photo, error)
	UpdatePhotoFn          func(ctx context.Context, photoID int, upd cl.PhotoUpdate, userID int) (cl.Photo, error)
	AddTagFn               func(ctx context.Context, photoID int, tag string, userID int) (bool, error)
	ListAlbumsFn           func(ctx context.Context) ([]cl.Album, error)
	PhotosInAlbumFn        func(ctx context.Context, albumName string, userID null.Int) (cl.Album, []cl.Photo, error)
	AuthenticateFn         func(ctx context.Context, username, password string) (cl.User, error)
	GetUserFn              func(ctx context.Context, id int) (cl.User, error)
	ListCoursesFn          func(ctx context.Context) ([]cl.Course, error)
	GetCourseFn            func(ctx context.Context, code string) (cl.Course, error)
	UpdateCourseCapacityFn func(ctx context.Context, code string, capacity, userID int) (cl.Course, error)
}

// ListPhotos calls the Catalog's ListPhotosFn.
func (c *Catalog) ListPhotos(ctx context.Context, userID null.Int) ([]cl.Photo, error) {
	return c.ListPhotosFn(ctx, userID)
}

// GetPhoto calls the Catalog's GetPhotoFn.
func (c *Catalog) GetPhoto(ctx context.Context, photoID, userID int) (cl.Photo, error) {
	return c.GetPhotoFn(ctx, photoID, userID)
}

// UpdatePhoto calls the Catalog's UpdatePhotoFn.
func (c *Catalog) UpdatePhoto(ctx context.Context, photoID int, upd cl.PhotoUpdate, userID int) (cl.Photo, error) {
	return c.UpdatePhotoFn(ctx, photoID, upd, userID)
}

// AddTag calls the Catalog's AddTagFn.
func (c *Catalog) AddTag(ctx context.Context, photoID int, tag string, userID int) (bool, error) {
	return c.AddTagFn(ctx, photoID, tag, userID)
}

// ListAlbums calls the Catalog's ListAlbumsFn.
func (c *Catalog) ListAlbums(ctx context.Context) ([]cl.Album, error) {
	return c.ListAlbumsFn(ctx)
}

// PhotosInAlbum calls the Catalog's PhotosInAlbumFn.
func (c *Catalog) PhotosInAlbum(ctx context.Context, albumName string, userID null.Int) (cl.Album, []cl.Photo, error) {
	return c.PhotosInAlbumFn(ctx, albumName, userID)
}

// Authenticate calls the Catalog's AuthenticateFn.
func (c *Catalog) Authenticate(ctx context.Context, username, password string) (cl.User, error) {
	return c.AuthenticateFn(ctx, username, password)
}

// GetUser calls the Catalog's GetUserFn.
func (c *Catalog) GetUser(ctx context.Context, id int) (cl.User, error) {
	return c.GetUserFn(ctx, id)
}

// ListCourses calls the Catalog's ListCoursesFn.
func (c *Catalog) ListCourses(ctx context.Context) ([]cl.Course, error) {
	return c.ListCoursesFn(ctx)
}

// GetCourse calls the Catalog's GetCourseFn.
func (c *Catalog) GetCourse(ctx context.Context, code string) (cl.Course, error) {
	return c.GetCourseFn(ctx, code)
}

// UpdateCourseCapacity calls the Catalog's UpdateCourseCapacityFn.
func (c *Catalog) UpdateCourseCapacity(ctx context.Context, code string, capacity, userID int) (cl.Course, error) {
	return c.UpdateCourseCapacityFn(ctx, code, capacity, userID)
}
