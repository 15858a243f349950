package toolset

import (
	"crypto/ed25519"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/iotaledger/hive.go/crypto/pem"
	"github.com/iotaledger/identity-registry/pkg/balances"
	"github.com/iotaledger/identity-registry/pkg/identity"
	"github.com/iotaledger/identity-registry/pkg/snapshot"
	"github.com/iotaledger/identity-registry/pkg/testsuite"
	iotago "github.com/iotaledger/iota.go/v4"
)

func TestAccountIDFromPublicKey(t *testing.T) {
	pubKey, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	require.Equal(t, iotago.AccountID(blake2b.Sum256(pubKey)), AccountIDFromPublicKey(pubKey))
}

func TestParseFlagSet(t *testing.T) {
	require.Error(t, generateJWTApiToken([]string{"--" + FlagToolPrivateKeyPath, filepath.Join(t.TempDir(), "missing.key"), "--" + FlagToolPrivileged}))
	require.Error(t, generateJWTApiToken([]string{"unexpected"}))
	require.Error(t, accountIDFromPublicKey([]string{}))
}

func TestGenerateJWTApiToken(t *testing.T) {
	_, privKey, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	keyPath := filepath.Join(t.TempDir(), "identity.key")
	require.NoError(t, pem.WriteEd25519PrivateKeyToPEMFile(keyPath, privKey))

	require.NoError(t, generateJWTApiToken([]string{"--" + FlagToolPrivateKeyPath, keyPath, "--" + FlagToolPrivileged}))
	require.Error(t, generateJWTApiToken([]string{"--" + FlagToolPrivateKeyPath, keyPath}))
	require.Error(t, generateJWTApiToken([]string{"--" + FlagToolPrivateKeyPath, keyPath, "--" + FlagToolAccountID, "0x1234"}))
}

func TestSnapshotInfo(t *testing.T) {
	ts := testsuite.NewTestSuite(t)
	defer ts.Shutdown()

	require.NoError(t, ts.SetIdentity("alice", testsuite.Info("alice", "", "", "")))
	require.NoError(t, ts.Registry.ProvideJudgementExternal(identity.Privileged(), 1, ts.Account("alice"), 1))

	snapshotPath := filepath.Join(t.TempDir(), "snapshot.bin")
	require.NoError(t, snapshot.Write(snapshotPath, ts.Ledger, ts.Registry))

	require.NoError(t, snapshotInfo([]string{"--" + FlagToolSnapshotPath, snapshotPath, "--" + FlagToolOutputJSON}))
	require.Error(t, snapshotInfo([]string{"--" + FlagToolSnapshotPath, filepath.Join(t.TempDir(), "missing.bin")}))

	// the snapshot must still be readable by a fresh registry
	loaded := testsuite.NewTestSuite(t)
	defer loaded.Shutdown()
	ledger := balances.NewLedger(0)
	imported, err := snapshot.Read(snapshotPath, ledger, loaded.Registry)
	require.NoError(t, err)
	require.True(t, imported)
	require.Equal(t, ts.Ledger.TotalIssuance(), ledger.TotalIssuance())
}
