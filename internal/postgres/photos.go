package postgres

import (
	"context"
	cl "media-catalog/pkg/catelog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	tpg "github.com/twitsprout/tools/postgres"

	"github.com/pkg/errors"
)

const tablePhotos = "photos"

const (
	photosColumnID          = `"id"`
	photosColumnTitle       = `"title"`
	photosColumnDescription = `"description"`
	photosColumnDate        = `"date"`
	photosColumnFilename    = `"filename"`
	photosColumnResolution  = `"resolution"`
	photosColumnTags        = `"tags"`
	photosColumnAlbums      = `"albums"`
	photosColumnOwner       = `"owner"`
)

var photosColumns = []string{
	photosColumnID,
	photosColumnTitle,
	photosColumnDescription,
	photosColumnDate,
	photosColumnFilename,
	photosColumnResolution,
	photosColumnTags,
	photosColumnAlbums,
	photosColumnOwner,
}

// photoRow is a photos row; tags and albums are Postgres arrays.
type photoRow struct {
	cl.Photo
	Tags   pq.StringArray `db:"tags"`
	Albums pq.Int64Array  `db:"albums"`
}

func (r photoRow) toPhoto() cl.Photo {
	p := r.Photo
	p.Tags = []string(r.Tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.Albums = make([]int, 0, len(r.Albums))
	for _, a := range r.Albums {
		p.Albums = append(p.Albums, int(a))
	}
	return p
}

func (p *Postgres) ListPhotos(ctx context.Context) ([]cl.Photo, error) {
	qv, err := buildListPhotosQuery(nil)
	if err != nil {
		return nil, errors.Wrap(err, "build list photos query")
	}
	return p.selectPhotos(ctx, qv, "list photos")
}

func (p *Postgres) ListPhotosByOwner(ctx context.Context, ownerID int) ([]cl.Photo, error) {
	qv, err := buildListPhotosQuery(sq.Eq{tableColumn(tablePhotos, photosColumnOwner): ownerID})
	if err != nil {
		return nil, errors.Wrap(err, "build list photos by owner query")
	}
	return p.selectPhotos(ctx, qv, "list photos by owner")
}

func (p *Postgres) ListPhotosInAlbum(ctx context.Context, albumID int) ([]cl.Photo, error) {
	qv, err := buildListPhotosQuery(sq.Expr("? = ANY("+tableColumn(tablePhotos, photosColumnAlbums)+")", albumID))
	if err != nil {
		return nil, errors.Wrap(err, "build list photos in album query")
	}
	return p.selectPhotos(ctx, qv, "list photos in album")
}

func buildListPhotosQuery(pred sq.Sqlizer) (QueryValues, error) {
	b := psql.
		Select(tableColumns(tablePhotos, photosColumns)...).
		From(tablePhotos).
		OrderBy(tableColumn(tablePhotos, photosColumnID) + " ASC")
	if pred != nil {
		b = b.Where(pred)
	}
	q, args, err := b.ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "list photos build query into SQL string")
}

func (p *Postgres) GetPhoto(ctx context.Context, id int) (cl.Photo, error) {
	qv, err := buildGetPhotoQuery(id)
	if err != nil {
		return cl.Photo{}, errors.Wrap(err, "build get photo query")
	}
	r, err := p.selectPhotos(ctx, qv, "get photo")
	if err != nil {
		return cl.Photo{}, err
	}

	// If not rows are found, return a 404.
	if len(r) == 0 {
		return cl.Photo{}, cl.ErrNotFound
	}
	return r[0], nil
}

func buildGetPhotoQuery(id int) (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tablePhotos, photosColumns)...).
		From(tablePhotos).
		Where(sq.Eq{tableColumn(tablePhotos, photosColumnID): id}).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "get photo build query into SQL string")
}

// buildLockPhotoQuery selects the photo row and locks it until the end of the
// transaction.
func buildLockPhotoQuery(id int) (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tablePhotos, photosColumns)...).
		From(tablePhotos).
		Where(sq.Eq{tableColumn(tablePhotos, photosColumnID): id}).
		Suffix("FOR UPDATE").
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "lock photo build query into SQL string")
}

// ModifyPhoto locks the photo row, applies fn and writes the result in the
// same transaction.
func (p *Postgres) ModifyPhoto(ctx context.Context, id int, fn func(ph *cl.Photo) (bool, error)) (cl.Photo, error) {
	qv, err := buildLockPhotoQuery(id)
	if err != nil {
		return cl.Photo{}, errors.Wrap(err, "build lock photo query")
	}
	var res cl.Photo
	err = p.inTx(ctx, "modify photo", func(tx *sqlx.Tx) error {
		var rows []photoRow
		if err := tx.SelectContext(ctx, &rows, qv.query, qv.args...); err != nil {
			return errors.Wrap(err, "execute lock photo query")
		}
		if len(rows) == 0 {
			return cl.ErrNotFound
		}
		ph := rows[0].toPhoto()
		changed, err := fn(&ph)
		if err != nil {
			return err
		}
		res = ph
		if !changed {
			return nil
		}
		sv, err := buildSavePhotoQuery(ph)
		if err != nil {
			return errors.Wrap(err, "build save photo query")
		}
		_, err = tx.ExecContext(ctx, sv.query, sv.args...)
		return errors.Wrap(err, "execute save photo query")
	})
	if err != nil {
		return cl.Photo{}, err
	}
	return res, nil
}

func (p *Postgres) selectPhotos(ctx context.Context, qv QueryValues, label string) ([]cl.Photo, error) {
	var rows []photoRow
	err := p.sqldb.SelectContext(ctx, &rows, qv.query, qv.args...)
	if err != nil {
		return nil, errors.Wrap(err, "execute "+label+" query")
	}
	res := make([]cl.Photo, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.toPhoto())
	}
	return res, nil
}

// SavePhoto upserts the photo keyed by its id.
func (p *Postgres) SavePhoto(ctx context.Context, ph cl.Photo) error {
	qv, err := buildSavePhotoQuery(ph)
	if err != nil {
		return errors.Wrap(err, "build save photo query")
	}
	err = p.db.Do(ctx, "save_photo", func(ctx context.Context, conn tpg.Conn) error {
		_, err := conn.ExecPrepared(ctx, qv.query, qv.args...)
		return err
	})
	return errors.Wrap(err, "execute save photo query")
}

func buildSavePhotoQuery(ph cl.Photo) (QueryValues, error) {
	albums := make([]int64, 0, len(ph.Albums))
	for _, a := range ph.Albums {
		albums = append(albums, int64(a))
	}
	tags := ph.Tags
	if tags == nil {
		tags = []string{}
	}
	q, args, err := psql.
		Insert(tablePhotos).
		Columns(photosColumns...).
		Values(ph.ID, ph.Title, ph.Description, ph.Date, ph.Filename, ph.Resolution,
			pq.StringArray(tags), pq.Int64Array(albums), ph.Owner).
		Suffix(upsertSuffix(photosColumnID, photosColumns[1:])).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "save photo build query into SQL string")
}
