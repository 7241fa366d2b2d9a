package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orchestra-platform/internal/repository"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	f, err := Load(writeFile(t, "sections:\n  - Strings\n  - Brass\ninstruments:\n  - Violin\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Strings", "Brass"}, f.Sections)
	assert.Equal(t, []string{"Violin"}, f.Instruments)
}

func TestLoadRejectsBlankNames(t *testing.T) {
	_, err := Load(writeFile(t, "sections:\n  - \"  \"\n"))
	assert.ErrorContains(t, err, "name is required")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyInsertsOnlyMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := repository.New(sqlx.NewDb(db, "sqlmock"))

	mock.ExpectQuery(`SELECT id, name FROM sections WHERE name = \$1`).WithArgs("Strings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Strings"))
	mock.ExpectQuery(`SELECT id, name FROM instruments WHERE name = \$1`).WithArgs("Violin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectQuery(`INSERT INTO instruments \(name\) VALUES \(\$1\) RETURNING id`).WithArgs("Violin").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	added, err := Apply(context.Background(), store, &File{Sections: []string{"Strings"}, Instruments: []string{"Violin"}})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}
