package main

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/account"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/db"
)

func newMockStore(t *testing.T) (db.Store, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return db.NewStore(sqlx.NewDb(conn, "sqlmock")), mock
}

func TestCreateDoctorHashesPassword(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO doctors")).
		WithArgs("house@example.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	id, err := createDoctor(context.Background(), store, " house@example.com ", "Gregory", "vicodin-42")
	require.NoError(t, err)
	assert.Equal(t, 3, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDoctorValidatesInput(t *testing.T) {
	store, _ := newMockStore(t)

	_, err := createDoctor(context.Background(), store, "", "", "secret")
	assert.Error(t, err)

	_, err = createDoctor(context.Background(), store, "house@example.com", "", "   ")
	assert.ErrorIs(t, err, account.ErrEmptyPassword)
}

func TestResetDoctorPassword(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM doctors")).
		WithArgs("house@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "name", "created_at", "updated_at"}).
			AddRow(7, "house@example.com", "old", nil, now, now))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE doctors")).
		WithArgs(7, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, resetDoctorPassword(context.Background(), store, "house@example.com", "new-secret"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRootCommandRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"doctor", "create", "--email", "a@b.c", "--password", "x"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
