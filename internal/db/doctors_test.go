package db_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/db"
)

var doctorColumns = []string{"id", "email", "hashed_password", "name", "created_at", "updated_at"}

func newMockStore(t *testing.T) (db.Store, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return db.NewStore(sqlx.NewDb(conn, "sqlmock")), mock
}

func TestCreateDoctor(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO doctors")).
		WithArgs("house@example.com", "hash", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	id, err := store.CreateDoctor(context.Background(), "house@example.com", "hash", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDoctorByEmail(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM doctors")).
		WithArgs("house@example.com").
		WillReturnRows(sqlmock.NewRows(doctorColumns).
			AddRow(5, "house@example.com", "hash", "Gregory", now, now))

	d, err := store.GetDoctorByEmail(context.Background(), "house@example.com")
	require.NoError(t, err)
	assert.Equal(t, 5, d.ID)
	require.NotNil(t, d.Name)
	assert.Equal(t, "Gregory", *d.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDoctorByIDNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM doctors")).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(doctorColumns))

	d, err := store.GetDoctorByID(context.Background(), 42)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUpdateDoctorPassword(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE doctors")).
		WithArgs(5, "newhash").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE doctors")).
		WithArgs(6, "newhash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.UpdateDoctorPassword(context.Background(), 5, "newhash"))
	assert.ErrorIs(t, store.UpdateDoctorPassword(context.Background(), 6, "newhash"), db.ErrNoSuchDoctor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsWithMissingPath(t *testing.T) {
	err := db.RunMigrations("./does-not-exist")
	assert.NoError(t, err, "Expected no error even if migration path is empty")
}

func useMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	prev := db.DB
	db.DB = sqlx.NewDb(conn, "sqlmock")
	t.Cleanup(func() {
		db.DB = prev
		conn.Close()
	})
	return mock
}

func writeMigrations(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_b.up.sql"), []byte("CREATE TABLE b (id int);"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_a.up.sql"), []byte("CREATE TABLE a (id int);"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_a.down.sql"), []byte("DROP TABLE a;"), 0o644))
	return dir
}

func TestRunMigrationsAppliesUpFilesInOrder(t *testing.T) {
	dir := writeMigrations(t)
	mock := useMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM schema_migrations")).WillReturnRows(sqlmock.NewRows([]string{"name"}))
	for _, m := range []struct{ stmt, name string }{{"CREATE TABLE a", "001_a.up.sql"}, {"CREATE TABLE b", "002_b.up.sql"}} {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(m.stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations")).WithArgs(m.name).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	require.NoError(t, db.RunMigrations(dir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsSkipsRecordedFiles(t *testing.T) {
	dir := writeMigrations(t)
	mock := useMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("001_a.up.sql"))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations")).WithArgs("002_b.up.sql").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, db.RunMigrations(dir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsRollsBackFailedFile(t *testing.T) {
	dir := writeMigrations(t)
	mock := useMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM schema_migrations")).WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a")).WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := db.RunMigrations(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_a.up.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}
