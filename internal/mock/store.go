package mock

import (
	"context"
	"media-catalog/internal"
	cl "media-catalog/pkg/catelog"
)

var _ internal.Store = (*Store)(nil)

// Store implements internal.Store by proxying every call to the function
// injected when the mock is created.
type Store struct {
	ListPhotosFn         func(ctx context.Context) ([]cl.Photo, error)
	ListPhotosByOwnerFn  func(ctx context.Context, ownerID int) ([]cl.Photo, error)
	ListPhotosInAlbumFn  func(ctx context.Context, albumID int) ([]cl.Photo, error)
	GetPhotoFn           func(ctx context.Context, id int) (cl.Photo, error)
	SavePhotoFn          func(ctx context.Context, p cl.Photo) error
	ModifyPhotoFn        func(ctx context.Context, id int, fn func(p *cl.Photo) (bool, error)) (cl.Photo, error)
	ListAlbumsFn         func(ctx context.Context) ([]cl.Album, error)
	GetAlbumFn           func(ctx context.Context, id int) (cl.Album, error)
	FindAlbumByNameFn    func(ctx context.Context, name string) (cl.Album, error)
	ListUsersFn          func(ctx context.Context) ([]cl.User, error)
	GetUserFn            func(ctx context.Context, id int) (cl.User, error)
	FindUserByUsernameFn func(ctx context.Context, username string) (cl.User, error)
	ListCoursesFn        func(ctx context.Context) ([]cl.Course, error)
	GetCourseFn          func(ctx context.Context, code string) (cl.Course, error)
	SaveCourseFn         func(ctx context.Context, c cl.Course) error
	ModifyCourseFn       func(ctx context.Context, code string, fn func(c *cl.Course) (bool, error)) (cl.Course, error)
	CloseFn              func() error
}

// ListPhotos calls the Store's ListPhotosFn.
func (s *Store) ListPhotos(ctx context.Context) ([]cl.Photo, error) {
	return s.ListPhotosFn(ctx)
}

// ListPhotosByOwner calls the Store's ListPhotosByOwnerFn.
func (s *Store) ListPhotosByOwner(ctx context.Context, ownerID int) ([]cl.Photo, error) {
	return s.ListPhotosByOwnerFn(ctx, ownerID)
}

// ListPhotosInAlbum calls the Store's ListPhotosInAlbumFn.
func (s *Store) ListPhotosInAlbum(ctx context.Context, albumID int) ([]cl.Photo, error) {
	return s.ListPhotosInAlbumFn(ctx, albumID)
}

// GetPhoto calls the Store's GetPhotoFn.
func (s *Store) GetPhoto(ctx context.Context, id int) (cl.Photo, error) {
	return s.GetPhotoFn(ctx, id)
}

// SavePhoto calls the Store's SavePhotoFn.
func (s *Store) SavePhoto(ctx context.Context, p cl.Photo) error {
	return s.SavePhotoFn(ctx, p)
}

// ListAlbums calls the Store's ListAlbumsFn.
func (s *Store) ListAlbums(ctx context.Context) ([]cl.Album, error) {
	return s.ListAlbumsFn(ctx)
}

// GetAlbum calls the Store's GetAlbumFn.
func (s *Store) GetAlbum(ctx context.Context, id int) (cl.Album, error) {
	return s.GetAlbumFn(ctx, id)
}

// FindAlbumByName calls the Store's FindAlbumByNameFn.
func (s *Store) FindAlbumByName(ctx context.Context, name string) (cl.Album, error) {
	return s.FindAlbumByNameFn(ctx, name)
}

// ListUsers calls the Store's ListUsersFn.
func (s *Store) ListUsers(ctx context.Context) ([]cl.User, error) {
	return s.ListUsersFn(ctx)
}

// GetUser calls the Store's GetUserFn.
func (s *Store) GetUser(ctx context.Context, id int) (cl.User, error) {
	return s.GetUserFn(ctx, id)
}

// FindUserByUsername calls the Store's FindUserByUsernameFn.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (cl.User, error) {
	return s.FindUserByUsernameFn(ctx, username)
}

// ListCourses calls the Store's ListCoursesFn.
func (s *Store) ListCourses(ctx context.Context) ([]cl.Course, error) {
	return s.ListCoursesFn(ctx)
}

// GetCourse calls the Store's GetCourseFn.
func (s *Store) GetCourse(ctx context.Context, code string) (cl.Course, error) {
	return s.GetCourseFn(ctx, code)
}

// SaveCourse calls the Store's SaveCourseFn.
func (s *Store) SaveCourse(ctx context.Context, c cl.Course) error {
	return s.SaveCourseFn(ctx, c)
}

// Close calls the Store's CloseFn.
func (s *Store) Close() error {
	return s.CloseFn()
}

// ModifyPhoto calls the Store's ModifyPhotoFn.
func (s *Store) ModifyPhoto(ctx context.Context, id int, fn func(p *cl.Photo) (bool, error)) (cl.Photo, error) {
	return s.ModifyPhotoFn(ctx, id, fn)
}

// ModifyCourse calls the Store's ModifyCourseFn.
func (s *Store) ModifyCourse(ctx context.Context, code string, fn func(c *cl.Course) (bool, error)) (cl.Course, error) {
	return s.ModifyCourseFn(ctx, code, fn)
}
