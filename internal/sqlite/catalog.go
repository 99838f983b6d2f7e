package sqlite

import (
	"context"
	"fmt"

	cl "media-catalog/pkg/catelog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var photosColumns = []string{"id", "title", "description", "date", "filename", "resolution", "tags", "albums", "owner"}
var albumsColumns = []string{"id", "name"}
var albumsInsertColumns = []string{"id", "name", "name_key"}
var usersColumns = []string{"id", "username", "password_hash"}
var coursesColumns = []string{"code", "name", "capacity", "owner"}

type photoRow struct {
	cl.Photo
	Tags   jsonColumn[string] `db:"tags"`
	Albums jsonColumn[int]    `db:"albums"`
}

func (r photoRow) toPhoto() cl.Photo {
	p := r.Photo
	p.Tags = []string(r.Tags)
	p.Albums = []int(r.Albums)
	return p
}

func selectPhotos() sq.SelectBuilder {
	return sqlb.Select(photosColumns...).From("photos").OrderBy("id ASC")
}

func (s *Store) photos(ctx context.Context, q sq.SelectBuilder, op string) ([]cl.Photo, error) {
	rows, err := selectAll[photoRow](ctx, s.db, q, op)
	if err != nil {
		return nil, err
	}
	res := make([]cl.Photo, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.toPhoto())
	}
	return res, nil
}

func (s *Store) ListPhotos(ctx context.Context) ([]cl.Photo, error) {
	return s.photos(ctx, selectPhotos(), "list photos")
}

func (s *Store) ListPhotosByOwner(ctx context.Context, ownerID int) ([]cl.Photo, error) {
	return s.photos(ctx, selectPhotos().Where(sq.Eq{"owner": ownerID}), "list photos by owner")
}

func (s *Store) ListPhotosInAlbum(ctx context.Context, albumID int) ([]cl.Photo, error) {
	q := selectPhotos().Where(sq.Expr("EXISTS (SELECT 1 FROM json_each(photos.albums) WHERE json_each.value = ?)", albumID))
	return s.photos(ctx, q, "list photos in album")
}

func (s *Store) GetPhoto(ctx context.Context, id int) (cl.Photo, error) {
	return getPhoto(ctx, s.db, id)
}

func getPhoto(ctx context.Context, db sqlx.QueryerContext, id int) (cl.Photo, error) {
	r, err := selectOne[photoRow](ctx, db, selectPhotos().Where(sq.Eq{"id": id}), "get photo")
	if err != nil {
		return cl.Photo{}, err
	}
	return r.toPhoto(), nil
}

// SavePhoto upserts the photo keyed by its id.
func (s *Store) SavePhoto(ctx context.Context, p cl.Photo) error {
	return savePhoto(ctx, s.db, p)
}

func savePhoto(ctx context.Context, db sqlx.ExecerContext, p cl.Photo) error {
	q, args, err := sqlb.
		Insert("photos").
		Columns(photosColumns...).
		Values(p.ID, p.Title, p.Description, p.Date, p.Filename, p.Resolution,
			jsonColumn[string](p.Tags), jsonColumn[int](p.Albums), p.Owner).
		Suffix(upsertSuffix("id", photosColumns[1:])).
		ToSql()
	if err != nil {
		return fmt.Errorf("build save photo query: %w", err)
	}
	if _, err := db.ExecContext(ctx, q, args...); err != nil {
		return storageErr("save photo", err)
	}
	return nil
}

// ModifyPhoto reads, changes and writes the photo in one transaction.
func (s *Store) ModifyPhoto(ctx context.Context, id int, fn func(p *cl.Photo) (bool, error)) (cl.Photo, error) {
	var res cl.Photo
	err := s.inTx(ctx, "modify photo", func(tx *sqlx.Tx) error {
		p, err := getPhoto(ctx, tx, id)
		if err != nil {
			return err
		}
		changed, err := fn(&p)
		if err != nil {
			return err
		}
		res = p
		if !changed {
			return nil
		}
		return savePhoto(ctx, tx, p)
	})
	if err != nil {
		return cl.Photo{}, err
	}
	return res, nil
}

func selectAlbums() sq.SelectBuilder {
	return sqlb.Select(albumsColumns...).From("albums").OrderBy("id ASC")
}

func (s *Store) ListAlbums(ctx context.Context) ([]cl.Album, error) {
	return selectAll[cl.Album](ctx, s.db, selectAlbums(), "list albums")
}

func (s *Store) GetAlbum(ctx context.Context, id int) (cl.Album, error) {
	return selectOne[cl.Album](ctx, s.db, selectAlbums().Where(sq.Eq{"id": id}), "get album")
}

// FindAlbumByName matches the album name case-insensitively.
func (s *Store) FindAlbumByName(ctx context.Context, name string) (cl.Album, error) {
	q := selectAlbums().Where(sq.Eq{"name_key": nameKey(name)})
	return selectOne[cl.Album](ctx, s.db, q, "find album by name")
}

func selectUsers() sq.SelectBuilder {
	return sqlb.Select(usersColumns...).From("users").OrderBy("id ASC")
}

func (s *Store) ListUsers(ctx context.Context) ([]cl.User, error) {
	return selectAll[cl.User](ctx, s.db, selectUsers(), "list users")
}

func (s *Store) GetUser(ctx context.Context, id int) (cl.User, error) {
	return selectOne[cl.User](ctx, s.db, selectUsers().Where(sq.Eq{"id": id}), "get user")
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (cl.User, error) {
	return selectOne[cl.User](ctx, s.db, selectUsers().Where(sq.Eq{"username": username}), "find user by username")
}

func selectCourses() sq.SelectBuilder {
	return sqlb.Select(coursesColumns...).From("courses").OrderBy("code ASC")
}

func (s *Store) ListCourses(ctx context.Context) ([]cl.Course, error) {
	return selectAll[cl.Course](ctx, s.db, selectCourses(), "list courses")
}

func (s *Store) GetCourse(ctx context.Context, code string) (cl.Course, error) {
	return getCourse(ctx, s.db, code)
}

func getCourse(ctx context.Context, db sqlx.QueryerContext, code string) (cl.Course, error) {
	return selectOne[cl.Course](ctx, db, selectCourses().Where(sq.Eq{"code": code}), "get course")
}

// SaveCourse upserts the course keyed by its code.
func (s *Store) SaveCourse(ctx context.Context, c cl.Course) error {
	return saveCourse(ctx, s.db, c)
}

func saveCourse(ctx context.Context, db sqlx.ExecerContext, c cl.Course) error {
	q, args, err := sqlb.
		Insert("courses").
		Columns(coursesColumns...).
		Values(c.Code, c.Name, c.Capacity, c.Owner).
		Suffix(upsertSuffix("code", coursesColumns[1:])).
		ToSql()
	if err != nil {
		return fmt.Errorf("build save course query: %w", err)
	}
	if _, err := db.ExecContext(ctx, q, args...); err != nil {
		return storageErr("save course", err)
	}
	return nil
}

// ModifyCourse reads, changes and writes the course in one transaction.
func (s *Store) ModifyCourse(ctx context.Context, code string, fn func(c *cl.Course) (bool, error)) (cl.Course, error) {
	var res cl.Course
	err := s.inTx(ctx, "modify course", func(tx *sqlx.Tx) error {
		c, err := getCourse(ctx, tx, code)
		if err != nil {
			return err
		}
		changed, err := fn(&c)
		if err != nil {
			return err
		}
		res = c
		if !changed {
			return nil
		}
		return saveCourse(ctx, tx, c)
	})
	if err != nil {
		return cl.Course{}, err
	}
	return res, nil
}
