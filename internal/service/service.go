// Package service implements the ownership-checked catalog operations on top
// of the stores.
//
// Every operation uses the same error policy: a missing record is
// catelog.ErrNotFound, a record owned by someone else is catelog.ErrNotOwner,
// and store faults are returned as they are.
package service

import (
	"context"
	"errors"
	"strings"

	"media-catalog/internal"
	cl "media-catalog/pkg/catelog"

	"github.com/twitsprout/tools"
	"gopkg.in/guregu/null.v3"
)

// Service is the catalog business logic.
type Service struct {
	Photos  internal.PhotoStore
	Albums  internal.AlbumStore
	Users   internal.UserStore
	Courses internal.CourseStore
	Logger  tools.Logger
}

var _ internal.Catalog = (*Service)(nil)

// New returns a Service reading and writing every collection through s.
func New(s internal.Store, logger tools.Logger) *Service {
	return &Service{
		Photos:  s,
		Albums:  s,
		Users:   s,
		Courses: s,
		Logger:  logger,
	}
}

// ListPhotos returns every photo, or only userID's photos when it is set.
func (s *Service) ListPhotos(ctx context.Context, userID null.Int) ([]cl.Photo, error) {
	if !userID.Valid {
		return s.Photos.ListPhotos(ctx)
	}
	return s.Photos.ListPhotosByOwner(ctx, int(userID.Int64))
}

// GetPhoto returns the photo if userID owns it.
func (s *Service) GetPhoto(ctx context.Context, photoID, userID int) (cl.Photo, error) {
	p, err := s.Photos.GetPhoto(ctx, photoID)
	if err != nil {
		return cl.Photo{}, err
	}
	if err := s.checkPhotoOwner(p, userID); err != nil {
		return cl.Photo{}, err
	}
	return p, nil
}

func (s *Service) checkPhotoOwner(p cl.Photo, userID int) error {
	if p.OwnedBy(userID) {
		return nil
	}
	s.Logger.Warn("[Photos] ownership check failed",
		"photo_id", p.ID,
		"user_id", userID,
	)
	return cl.ErrNotOwner
}

// UpdatePhoto merges upd into the photo owned by userID and stores it. The
// ownership check and the merge run inside one store modification, so
// concurrent updates of the same photo are applied one after the other.
func (s *Service) UpdatePhoto(ctx context.Context, photoID int, upd cl.PhotoUpdate, userID int) (cl.Photo, error) {
	if upd.IsEmpty() {
		return cl.Photo{}, cl.ErrEmptyUpdate
	}
	p, err := s.Photos.ModifyPhoto(ctx, photoID, func(p *cl.Photo) (bool, error) {
		if err := s.checkPhotoOwner(*p, userID); err != nil {
			return false, err
		}
		*p = upd.Apply(*p)
		return true, nil
	})
	if err != nil {
		return cl.Photo{}, err
	}
	s.Logger.Info("[UpdatePhoto] photo updated",
		"photo_id", photoID,
		"user_id", userID,
	)
	return p, nil
}

// AddTag adds tag to the photo owned by userID. It returns false without
// writing anything when the photo already has the tag. A true result means
// the tag is stored, even when other tags are added to the photo concurrently.
func (s *Service) AddTag(ctx context.Context, photoID int, tag string, userID int) (bool, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false, cl.ErrInvalidTag
	}
	added := false
	_, err := s.Photos.ModifyPhoto(ctx, photoID, func(p *cl.Photo) (bool, error) {
		if err := s.checkPhotoOwner(*p, userID); err != nil {
			return false, err
		}
		if p.HasTag(tag) {
			return false, nil
		}
		p.Tags = append(p.Tags, tag)
		added = true
		return true, nil
	})
	if err != nil {
		return false, err
	}
	if added {
		s.Logger.Info("[AddTag] tag added",
			"photo_id", photoID,
			"user_id", userID,
			"tag", tag,
		)
	}
	return added, nil
}

func (s *Service) ListAlbums(ctx context.Context) ([]cl.Album, error) {
	return s.Albums.ListAlbums(ctx)
}

// FindAlbum looks the album up by name, ignoring case.
func (s *Service) FindAlbum(ctx context.Context, name string) (cl.Album, error) {
	a, err := s.Albums.FindAlbumByName(ctx, strings.TrimSpace(name))
	if errors.Is(err, cl.ErrNotFound) {
		return cl.Album{}, cl.ErrAlbumNotFound
	}
	return a, err
}

// PhotosInAlbum returns the album matching albumName, ignoring case, with
// its photos, limited to userID's photos when it is set.
func (s *Service) PhotosInAlbum(ctx context.Context, albumName string, userID null.Int) (cl.Album, []cl.Photo, error) {
	a, err := s.FindAlbum(ctx, albumName)
	if err != nil {
		return cl.Album{}, nil, err
	}
	photos, err := s.Photos.ListPhotosInAlbum(ctx, a.ID)
	if err != nil {
		return cl.Album{}, nil, err
	}
	if !userID.Valid {
		return a, photos, nil
	}
	res := make([]cl.Photo, 0, len(photos))
	for _, p := range photos {
		if p.OwnedBy(int(userID.Int64)) {
			res = append(res, p)
		}
	}
	return a, res, nil
}

func (s *Service) ListCourses(ctx context.Context) ([]cl.Course, error) {
	return s.Courses.ListCourses(ctx)
}

func (s *Service) GetCourse(ctx context.Context, code string) (cl.Course, error) {
	return s.Courses.GetCourse(ctx, strings.TrimSpace(code))
}

// UpdateCourseCapacity sets the capacity of the course owned by userID.
func (s *Service) UpdateCourseCapacity(ctx context.Context, code string, capacity, userID int) (cl.Course, error) {
	if !cl.ValidCapacity(int64(capacity)) {
		return cl.Course{}, cl.ErrInvalidCapacity
	}
	c, err := s.Courses.ModifyCourse(ctx, strings.TrimSpace(code), func(c *cl.Course) (bool, error) {
		if !c.OwnedBy(userID) {
			s.Logger.Warn("[UpdateCourseCapacity] ownership check failed",
				"course_code", c.Code,
				"user_id", userID,
			)
			return false, cl.ErrNotOwner
		}
		c.Capacity = capacity
		return true, nil
	})
	if err != nil {
		return cl.Course{}, err
	}
	s.Logger.Info("[UpdateCourseCapacity] capacity updated",
		"course_code", c.Code,
		"user_id", userID,
		"capacity", capacity,
	)
	return c, nil
}
