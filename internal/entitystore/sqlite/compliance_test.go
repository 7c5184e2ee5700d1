package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codeu/chatstore/internal/entitystore"
	"github.com/codeu/chatstore/internal/entitystore/sqlite"
	"github.com/codeu/chatstore/internal/store/storetest"
)

func TestSqliteStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) entitystore.Store {
		s, err := sqlite.Open(filepath.Join(t.TempDir(), "chatstore.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}
