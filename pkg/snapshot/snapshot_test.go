package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/pkg/identity"
	"github.com/iotaledger/identity-registry/pkg/model"
	"github.com/iotaledger/identity-registry/pkg/snapshot"
	"github.com/iotaledger/identity-registry/pkg/testsuite"
)

func TestSnapshot_WriteRead(t *testing.T) {
	source := testsuite.NewTestSuite(t)
	defer source.Shutdown()

	require.NoError(t, source.SetIdentity("alice", testsuite.Info("alice", "", "", "")))
	require.NoError(t, source.ProvideJudgementExternal(1, "alice", model.JudgementKnownGood))
	source.Account("bob")

	filePath := filepath.Join(t.TempDir(), "snapshot.bin")
	require.NoError(t, snapshot.Write(filePath, source.Ledger, source.Registry))

	_, err := os.Stat(filePath + ".tmp")
	require.True(t, os.IsNotExist(err))

	target := testsuite.NewTestSuite(t)
	defer target.Shutdown()

	imported, err := snapshot.Read(filePath, target.Ledger, target.Registry)
	require.NoError(t, err)
	require.True(t, imported)

	require.Equal(t, source.Ledger.Balance(source.Account("alice")), target.Ledger.Balance(source.Account("alice")))
	require.Equal(t, source.Ledger.Balance(source.Account("bob")), target.Ledger.Balance(source.Account("bob")))
	require.Equal(t, source.Ledger.TotalIssuance(), target.Ledger.TotalIssuance())

	registration, exists, err := target.Registry.IdentityOf(source.Account("alice"))
	require.NoError(t, err)
	require.True(t, exists)
	require.EqualValues(t, 1, registration.ExternalCount)
	require.EqualValues(t, 19, registration.Deposit)

	// the imported deposit can be released again
	released, err := target.Registry.ClearIdentity(identity.Signed(source.Account("alice")))
	require.NoError(t, err)
	require.EqualValues(t, 19, released)
}

func TestSnapshot_Missing(t *testing.T) {
	ts := testsuite.NewTestSuite(t)
	defer ts.Shutdown()

	imported, err := snapshot.Read(filepath.Join(t.TempDir(), "missing.bin"), ts.Ledger, ts.Registry)
	require.NoError(t, err)
	require.False(t, imported)
	require.False(t, ts.Registry.IsSnapshotImported())
}

func TestSnapshot_UnsupportedVersion(t *testing.T) {
	ts := testsuite.NewTestSuite(t)
	defer ts.Shutdown()

	filePath := filepath.Join(t.TempDir(), "snapshot.bin")
	require.NoError(t, os.WriteFile(filePath, []byte{snapshot.Version + 1}, 0o600))

	_, err := snapshot.Read(filePath, ts.Ledger, ts.Registry)
	require.True(t, ierrors.Is(err, snapshot.ErrUnsupportedVersion))
}

func TestSnapshot_ReadKeepsBalancesOnFailure(t *testing.T) {
	source := testsuite.NewTestSuite(t)
	defer source.Shutdown()

	require.NoError(t, source.SetIdentity("alice", testsuite.Info("alice", "", "", "")))

	filePath := filepath.Join(t.TempDir(), "snapshot.bin")
	require.NoError(t, snapshot.Write(filePath, source.Ledger, source.Registry))

	written, err := os.ReadFile(filePath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filePath, written[:len(written)-3], 0o600))

	target := testsuite.NewTestSuite(t)
	defer target.Shutdown()
	target.Account("carol")

	_, err = snapshot.Read(filePath, target.Ledger, target.Registry)
	require.Error(t, err)
	require.False(t, target.Registry.IsSnapshotImported())

	target.AssertBalance("carol", 1000, 0)
	require.EqualValues(t, 1000, target.Ledger.TotalIssuance())
	require.Zero(t, target.Ledger.Balance(source.Account("alice")).Reserved)
}

func TestSnapshot_ReadIntoNonEmptyRegistry(t *testing.T) {
	source := testsuite.NewTestSuite(t)
	defer source.Shutdown()

	source.Account("alice")
	filePath := filepath.Join(t.TempDir(), "snapshot.bin")
	require.NoError(t, snapshot.Write(filePath, source.Ledger, source.Registry))

	target := testsuite.NewTestSuite(t)
	defer target.Shutdown()

	require.NoError(t, target.SetIdentity("bob", testsuite.Info("bob", "", "", "")))

	_, err := snapshot.Read(filePath, target.Ledger, target.Registry)
	require.True(t, ierrors.Is(err, identity.ErrRegistryNotEmpty))

	target.AssertBalance("bob", 983, 17)
	require.Zero(t, target.Ledger.Balance(source.Account("alice")).Free)
}
