package postgres

import (
	"context"
	cl "media-catalog/pkg/catelog"

	sq "github.com/Masterminds/squirrel"

	"github.com/pkg/errors"
)

const tableAlbums = "albums"

const (
	albumsColumnID   = `"id"`
	albumsColumnName = `"name"`
)

var albumsColumns = []string{
	albumsColumnID,
	albumsColumnName,
}

func (p *Postgres) ListAlbums(ctx context.Context) ([]cl.Album, error) {
	r := []cl.Album{}
	qv, err := buildListAlbumsQuery()
	if err != nil {
		return nil, errors.Wrap(err, "build list albums query")
	}
	err = p.sqldb.SelectContext(ctx, &r, qv.query, qv.args...)
	if err != nil {
		return nil, errors.Wrap(err, "execute list albums query")
	}
	return r, nil
}

func buildListAlbumsQuery() (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tableAlbums, albumsColumns)...).
		From(tableAlbums).
		OrderBy(tableColumn(tableAlbums, albumsColumnID) + " ASC").
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "list albums build query into SQL string")
}

func (p *Postgres) GetAlbum(ctx context.Context, id int) (cl.Album, error) {
	qv, err := buildGetAlbumQuery(id)
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "build get album query")
	}
	return p.selectAlbum(ctx, qv, "get album")
}

func buildGetAlbumQuery(id int) (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tableAlbums, albumsColumns)...).
		From(tableAlbums).
		Where(sq.Eq{tableColumn(tableAlbums, albumsColumnID): id}).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "get album build query into SQL string")
}

// FindAlbumByName matches the album name case-insensitively.
func (p *Postgres) FindAlbumByName(ctx context.Context, name string) (cl.Album, error) {
	qv, err := buildFindAlbumByNameQuery(name)
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "build find album by name query")
	}
	return p.selectAlbum(ctx, qv, "find album by name")
}

func buildFindAlbumByNameQuery(name string) (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tableAlbums, albumsColumns)...).
		From(tableAlbums).
		Where(sq.Expr("LOWER("+tableColumn(tableAlbums, albumsColumnName)+") = LOWER(?)", name)).
		OrderBy(tableColumn(tableAlbums, albumsColumnID) + " ASC").
		Limit(1).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "find album by name build query into SQL string")
}

func (p *Postgres) selectAlbum(ctx context.Context, qv QueryValues, label string) (cl.Album, error) {
	var r []cl.Album
	err := p.sqldb.SelectContext(ctx, &r, qv.query, qv.args...)
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "execute "+label+" query")
	}

	// If not rows are found, return a 404.
	if len(r) == 0 {
		return cl.Album{}, cl.ErrNotFound
	}
	return r[0], nil
}
