package postgres

import (
	"context"
	cl "media-catalog/pkg/catelog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	tpg "github.com/twitsprout/tools/postgres"

	"github.com/pkg/errors"
)

const tableCourses = "courses"

const (
	coursesColumnCode     = `"code"`
	coursesColumnName     = `"name"`
	coursesColumnCapacity = `"capacity"`
	coursesColumnOwner    = `"owner"`
)

var coursesColumns = []string{
	coursesColumnCode,
	coursesColumnName,
	coursesColumnCapacity,
	coursesColumnOwner,
}

func (p *Postgres) ListCourses(ctx context.Context) ([]cl.Course, error) {
	r := []cl.Course{}
	q, args, err := psql.
		Select(tableColumns(tableCourses, coursesColumns)...).
		From(tableCourses).
		OrderBy(tableColumn(tableCourses, coursesColumnCode) + " ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build list courses query")
	}
	err = p.sqldb.SelectContext(ctx, &r, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "execute list courses query")
	}
	return r, nil
}

func (p *Postgres) GetCourse(ctx context.Context, code string) (cl.Course, error) {
	qv, err := buildGetCourseQuery(code)
	if err != nil {
		return cl.Course{}, errors.Wrap(err, "build get course query")
	}
	var r []cl.Course
	err = p.sqldb.SelectContext(ctx, &r, qv.query, qv.args...)
	if err != nil {
		return cl.Course{}, errors.Wrap(err, "execute get course query")
	}

	// If not rows are found, return a 404.
	if len(r) == 0 {
		return cl.Course{}, cl.ErrNotFound
	}
	return r[0], nil
}

func buildGetCourseQuery(code string) (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tableCourses, coursesColumns)...).
		From(tableCourses).
		Where(sq.Eq{tableColumn(tableCourses, coursesColumnCode): code}).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "get course build query into SQL string")
}

func buildLockCourseQuery(code string) (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tableCourses, coursesColumns)...).
		From(tableCourses).
		Where(sq.Eq{tableColumn(tableCourses, coursesColumnCode): code}).
		Suffix("FOR UPDATE").
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "lock course build query into SQL string")
}

// ModifyCourse locks the course row, applies fn and writes the result in the
// same transaction.
func (p *Postgres) ModifyCourse(ctx context.Context, code string, fn func(c *cl.Course) (bool, error)) (cl.Course, error) {
	qv, err := buildLockCourseQuery(code)
	if err != nil {
		return cl.Course{}, errors.Wrap(err, "build lock course query")
	}
	var res cl.Course
	err = p.inTx(ctx, "modify course", func(tx *sqlx.Tx) error {
		var rows []cl.Course
		if err := tx.SelectContext(ctx, &rows, qv.query, qv.args...); err != nil {
			return errors.Wrap(err, "execute lock course query")
		}
		if len(rows) == 0 {
			return cl.ErrNotFound
		}
		c := rows[0]
		changed, err := fn(&c)
		if err != nil {
			return err
		}
		res = c
		if !changed {
			return nil
		}
		sv, err := buildSaveCourseQuery(c)
		if err != nil {
			return errors.Wrap(err, "build save course query")
		}
		_, err = tx.ExecContext(ctx, sv.query, sv.args...)
		return errors.Wrap(err, "execute save course query")
	})
	if err != nil {
		return cl.Course{}, err
	}
	return res, nil
}

// SaveCourse upserts the course keyed by its code.
func (p *Postgres) SaveCourse(ctx context.Context, c cl.Course) error {
	qv, err := buildSaveCourseQuery(c)
	if err != nil {
		return errors.Wrap(err, "build save course query")
	}
	err = p.db.Do(ctx, "save_course", func(ctx context.Context, conn tpg.Conn) error {
		_, err := conn.ExecPrepared(ctx, qv.query, qv.args...)
		return err
	})
	return errors.Wrap(err, "execute save course query")
}

func buildSaveCourseQuery(c cl.Course) (QueryValues, error) {
	q, args, err := psql.
		Insert(tableCourses).
		Columns(coursesColumns...).
		Values(c.Code, c.Name, c.Capacity, c.Owner).
		Suffix(upsertSuffix(coursesColumnCode, coursesColumns[1:])).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "save course build query into SQL string")
}
