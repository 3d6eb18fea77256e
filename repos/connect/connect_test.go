package connect

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylanat/site/config"
	"github.com/dylanat/site/repos"
	"github.com/dylanat/site/repos/memory"
	"github.com/dylanat/site/repos/sqlite"
)

func TestOpen(t *testing.T) {
	db, err := Open(config.SessionStoreMemory, "", false)
	require.NoError(t, err)
	assert.IsType(t, &memory.DB{}, db)
	assert.NoError(t, db.Close())

	db, err = Open(config.SessionStoreSQLite, filepath.Join(t.TempDir(), "sessions.sqlite"), true)
	require.NoError(t, err)
	assert.IsType(t, &sqlite.DB{}, db)
	assert.NoError(t, db.Close())

	_, err = Open(config.SessionStoreKind("redis"), "", false)
	assert.ErrorIs(t, err, repos.ErrUnknownSessionKind)
}

func TestSelfCleaning(t *testing.T) {
	testCases := []struct {
		kind     config.SessionStoreKind
		expected bool
	}{
		{kind: config.SessionStoreMemory, expected: true},
		{kind: config.SessionStoreSQLite, expected: false},
		{kind: config.SessionStorePostgres, expected: false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.kind), func(t *testing.T) {
			assert.Equal(t, tc.expected, SelfCleaning(tc.kind))
		})
	}
}
