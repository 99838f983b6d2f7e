package postgres

import (
	"context"
	cl "media-catalog/pkg/catelog"

	sq "github.com/Masterminds/squirrel"

	"github.com/pkg/errors"
)

const tableUsers = "users"

const (
	usersColumnID           = `"id"`
	usersColumnUsername     = `"username"`
	usersColumnPasswordHash = `"password_hash"`
)

var usersColumns = []string{
	usersColumnID,
	usersColumnUsername,
	usersColumnPasswordHash,
}

func (p *Postgres) ListUsers(ctx context.Context) ([]cl.User, error) {
	r := []cl.User{}
	q, args, err := psql.
		Select(tableColumns(tableUsers, usersColumns)...).
		From(tableUsers).
		OrderBy(tableColumn(tableUsers, usersColumnID) + " ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build list users query")
	}
	err = p.sqldb.SelectContext(ctx, &r, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "execute list users query")
	}
	return r, nil
}

func (p *Postgres) GetUser(ctx context.Context, id int) (cl.User, error) {
	qv, err := buildFindUserQuery(sq.Eq{tableColumn(tableUsers, usersColumnID): id})
	if err != nil {
		return cl.User{}, errors.Wrap(err, "build get user query")
	}
	return p.selectUser(ctx, qv, "get user")
}

func (p *Postgres) FindUserByUsername(ctx context.Context, username string) (cl.User, error) {
	qv, err := buildFindUserQuery(sq.Eq{tableColumn(tableUsers, usersColumnUsername): username})
	if err != nil {
		return cl.User{}, errors.Wrap(err, "build find user by username query")
	}
	return p.selectUser(ctx, qv, "find user by username")
}

func buildFindUserQuery(pred sq.Eq) (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tableUsers, usersColumns)...).
		From(tableUsers).
		Where(pred).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "find user build query into SQL string")
}

func (p *Postgres) selectUser(ctx context.Context, qv QueryValues, label string) (cl.User, error) {
	var r []cl.User
	err := p.sqldb.SelectContext(ctx, &r, qv.query, qv.args...)
	if err != nil {
		return cl.User{}, errors.Wrap(err, "execute "+label+" query")
	}
	if len(r) == 0 {
		return cl.User{}, cl.ErrNotFound
	}
	return r[0], nil
}
