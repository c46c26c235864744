package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErrSQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(
		`CREATE TABLE widgets (id INTEGER PRIMARY KEY, code TEXT NOT NULL UNIQUE)`,
	).Error)

	require.NoError(t, conn.Exec(`INSERT INTO widgets (id, code) VALUES (1, 'a')`).Error)

	dupErr := conn.Exec(`INSERT INTO widgets (id, code) VALUES (2, 'a')`).Error
	require.Error(t, dupErr)
	require.True(t, IsDuplicateKeyErr(dupErr))
}

func TestIsDuplicateKeyErrNegative(t *testing.T) {
	require.False(t, IsDuplicateKeyErr(nil))
	require.False(t, IsDuplicateKeyErr(errors.New("connection refused")))
	require.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
}
