package snapshot

import (
	"os"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
	"github.com/iotaledger/identity-registry/pkg/balances"
	"github.com/iotaledger/identity-registry/pkg/identity"
)

// Version is the version of the snapshot file format.
const Version byte = 1

var ErrUnsupportedVersion = ierrors.New("unsupported snapshot version")

// Write writes the balances and the identities to the file at filePath. The file is replaced only after the snapshot
// was written completely.
func Write(filePath string, ledger *balances.Ledger, registry *identity.Registry) error {
	tempFilePath := filePath + ".tmp"

	file, err := os.Create(tempFilePath)
	if err != nil {
		return ierrors.Wrapf(err, "failed to create snapshot file %s", tempFilePath)
	}

	if err = write(file, ledger, registry); err != nil {
		return ierrors.Join(err, file.Close(), os.Remove(tempFilePath))
	}

	if err = file.Close(); err != nil {
		return ierrors.Wrapf(err, "failed to close snapshot file %s", tempFilePath)
	}

	return os.Rename(tempFilePath, filePath)
}

func write(file *os.File, ledger *balances.Ledger, registry *identity.Registry) error {
	if err := stream.Write(file, Version); err != nil {
		return ierrors.Wrap(err, "failed to write version")
	}
	if err := ledger.Export(file); err != nil {
		return ierrors.Wrap(err, "failed to export balances")
	}
	if err := registry.Export(file); err != nil {
		return ierrors.Wrap(err, "failed to export identities")
	}

	return file.Sync()
}

// Read imports the snapshot at filePath into the ledger and an empty registry. It returns false if there is no
// snapshot. The balances are left untouched if the identities can not be imported.
func Read(filePath string, ledger *balances.Ledger, registry *identity.Registry) (imported bool, err error) {
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, ierrors.Wrapf(err, "failed to open snapshot file %s", filePath)
	}
	defer file.Close()

	version, err := stream.Read[byte](file)
	if err != nil {
		return false, ierrors.Wrap(err, "failed to read version")
	}
	if version != Version {
		return false, ierrors.WithMessagef(ErrUnsupportedVersion, "version %d", version)
	}

	if count, err := registry.IdentityCount(); err != nil {
		return false, err
	} else if count != 0 {
		return false, ierrors.WithMessagef(identity.ErrRegistryNotEmpty, "%d identities are stored", count)
	}

	previousBalances, err := exportBalances(ledger)
	if err != nil {
		return false, err
	}

	if err = ledger.Import(file); err != nil {
		return false, ierrors.Wrap(err, "failed to import balances")
	}
	if err = registry.Import(file); err != nil {
		return false, ierrors.Join(ierrors.Wrap(err, "failed to import identities"), ledger.Import(stream.NewByteReader(previousBalances)))
	}

	return true, nil
}

func exportBalances(ledger *balances.Ledger) ([]byte, error) {
	byteBuffer := stream.NewByteBuffer()
	if err := ledger.Export(byteBuffer); err != nil {
		return nil, ierrors.Wrap(err, "failed to export current balances")
	}

	return byteBuffer.Bytes()
}
