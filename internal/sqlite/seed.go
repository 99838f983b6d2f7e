package sqlite

import (
	"context"

	cl "media-catalog/pkg/catelog"
)

// Seed replaces the contents of every table in a single transaction.
// Collections with duplicate keys are rejected before anything is written.
func (s *Store) Seed(ctx context.Context, photos []cl.Photo, albums []cl.Album, users []cl.User, courses []cl.Course) error {
	if err := cl.CheckCatalog(photos, albums, users, courses); err != nil {
		return err
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr("begin seed", err)
	}
	defer tx.Rollback()

	for _, t := range []string{"photos", "albums", "users", "courses"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
			return storageErr("clear "+t, err)
		}
	}

	ins := func(table string, columns []string, rows [][]interface{}) error {
		if len(rows) == 0 {
			return nil
		}
		b := sqlb.Insert(table).Columns(columns...)
		for _, r := range rows {
			b = b.Values(r...)
		}
		q, args, err := b.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return storageErr("seed "+table, err)
		}
		return nil
	}

	var rows [][]interface{}
	for _, p := range photos {
		rows = append(rows, []interface{}{p.ID, p.Title, p.Description, p.Date, p.Filename, p.Resolution,
			jsonColumn[string](p.Tags), jsonColumn[int](p.Albums), p.Owner})
	}
	if err := ins("photos", photosColumns, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, a := range albums {
		rows = append(rows, []interface{}{a.ID, a.Name, nameKey(a.Name)})
	}
	if err := ins("albums", albumsInsertColumns, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, u := range users {
		rows = append(rows, []interface{}{u.ID, u.Username, u.PasswordHash})
	}
	if err := ins("users", usersColumns, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, c := range courses {
		rows = append(rows, []interface{}{c.Code, c.Name, c.Capacity, c.Owner})
	}
	if err := ins("courses", coursesColumns, rows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit seed", err)
	}
	return nil
}
