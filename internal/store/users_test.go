package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahiavl/GlobeTrek-app/internal/store"
)

var memDBCounter int

func testRepo(t *testing.T) store.Users {
	t.Helper()

	ctx := context.Background()
	memDBCounter++
	dsn := fmt.Sprintf("file:users_test_%d?mode=memory&cache=shared", memDBCounter)

	db, err := store.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// keep the shared in-memory database alive for the whole test
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(0)

	require.NoError(t, store.CreateSchema(ctx, db))

	return store.NewUsersRepository(db)
}

func strptr(s string) *string { return &s }

func TestInsertAssignsID(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)

	created, err := repo.Insert(ctx, &store.User{
		Name:      "Ada",
		Email:     "ada@example.com",
		Birthday:  strptr("1990-12-10"),
		Countries: store.CountryList{"ES", "FR"},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	second, err := repo.Insert(ctx, &store.User{
		Name:  "Grace",
		Email: "grace@example.com",
	})
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, second.ID)
	// countries default to empty, not null
	assert.NotNil(t, second.Countries)
}

func TestFindByEmail(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)

	_, err := repo.Insert(ctx, &store.User{
		Name:      "Ada",
		Email:     "ada@example.com",
		Countries: store.CountryList{"ES"},
	})
	require.NoError(t, err)

	found, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Ada", found.Name)
	assert.Equal(t, store.CountryList{"ES"}, found.Countries)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindByID(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)

	created, err := repo.Insert(ctx, &store.User{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.Email, found.Email)

	missing, err := repo.FindByID(ctx, created.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdatePartialFields(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)

	hash := "$2a$10$fakefakefakefakefakefake"
	created, err := repo.Insert(ctx, &store.User{
		Name:      "Ada",
		Email:     "ada@example.com",
		Countries: store.CountryList{"ES"},
		Password:  &hash,
	})
	require.NoError(t, err)

	countries := store.CountryList{"ES", "IT", "PT"}
	updated, err := repo.Update(ctx, created.ID, store.UserUpdate{
		Name:      strptr("Ada Lovelace"),
		Countries: &countries,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, countries, updated.Countries)
	// untouched fields keep their values
	assert.Equal(t, "ada@example.com", updated.Email)
	require.NotNil(t, updated.Password)
	assert.Equal(t, hash, *updated.Password)

	reloaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", reloaded.Name)
	assert.Equal(t, countries, reloaded.Countries)
}

func TestUpdateMissingUser(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)

	_, err := repo.Update(ctx, 12345, store.UserUpdate{Name: strptr("x")})
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)

	created, err := repo.Insert(ctx, &store.User{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	gone, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// second delete reports absence
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), store.ErrUserNotFound)
}

func TestNullablePassword(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)

	created, err := repo.Insert(ctx, &store.User{Name: "Fed", Email: "fed@example.com"})
	require.NoError(t, err)
	assert.Nil(t, created.Password)

	reloaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.Password)
}
