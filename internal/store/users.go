package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// ErrUserNotFound is returned by Update and Delete when the row is absent.
// Lookups report absence as (nil, nil) instead; "not found" is an expected
// outcome there, not a fault.
var ErrUserNotFound = errors.New("user not found")

// UserUpdate carries a partial update; nil fields are left untouched.
type UserUpdate struct {
	Name      *string
	Birthday  *string
	Email     *string
	Countries *CountryList
	Password  *string
}

// Users is the credential store adapter the auth flow and the HTTP handlers
// consume. Each call is an independent single-row operation.
type Users interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	Insert(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, id int64, fields UserUpdate) (*User, error)
	Delete(ctx context.Context, id int64) error
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository returns the bun-backed Users implementation.
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (r *users) FindByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := r.db.NewSelect().
		Model(user).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *users) FindByID(ctx context.Context, id int64) (*User, error) {
	user := &User{}
	err := r.db.NewSelect().
		Model(user).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *users) Insert(ctx context.Context, user *User) (*User, error) {
	if user.Countries == nil {
		user.Countries = CountryList{}
	}
	if _, err := r.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *users) Update(ctx context.Context, id int64, fields UserUpdate) (*User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if fields.Name != nil {
		user.Name = *fields.Name
	}
	if fields.Birthday != nil {
		user.Birthday = fields.Birthday
	}
	if fields.Email != nil {
		user.Email = *fields.Email
	}
	if fields.Countries != nil {
		user.Countries = *fields.Countries
	}
	if fields.Password != nil {
		user.Password = fields.Password
	}

	if _, err := r.db.NewUpdate().Model(user).WherePK().Exec(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *users) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*User)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
