package identity

import (
	"cmp"
	"io"
	"slices"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
	"github.com/iotaledger/identity-registry/pkg/model"
	iotago "github.com/iotaledger/iota.go/v4"
)

// Export writes every identity record together with its externally stored judgements to the writer.
func (r *Registry) Export(writer io.WriteSeeker) error {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if err := r.optsParameters.Export(writer); err != nil {
		return ierrors.Wrap(err, "failed to write parameters")
	}

	if err := stream.WriteCollection(writer, serializer.SeriLengthPrefixTypeAsUint32, func() (elementsCount int, err error) {
		if err = r.storage.Identities().Stream(func(accountID iotago.AccountID, registration *model.Registration) error {
			if err := r.exportIdentity(writer, accountID, registration); err != nil {
				return ierrors.Wrapf(err, "failed to export identity of %s", accountID)
			}
			elementsCount++

			return nil
		}); err != nil {
			return 0, err
		}

		return elementsCount, nil
	}); err != nil {
		return ierrors.Wrap(err, "failed to write identities")
	}

	return nil
}

func (r *Registry) exportIdentity(writer io.WriteSeeker, accountID iotago.AccountID, registration *model.Registration) error {
	if err := stream.Write(writer, accountID); err != nil {
		return ierrors.Wrap(err, "failed to write account id")
	}
	if err := registration.Export(writer); err != nil {
		return ierrors.Wrap(err, "failed to write registration")
	}

	return stream.WriteCollection(writer, serializer.SeriLengthPrefixTypeAsUint32, func() (elementsCount int, err error) {
		if err = r.storage.Judgements().Stream(accountID, func(id model.JudgementID, judgement model.Judgement) error {
			if err := stream.Write(writer, uint32(id)); err != nil {
				return ierrors.Wrapf(err, "failed to write id of judgement %d", id)
			}
			if err := stream.Write(writer, uint8(judgement)); err != nil {
				return ierrors.Wrapf(err, "failed to write judgement %d", id)
			}
			elementsCount++

			return nil
		}); err != nil {
			return 0, err
		}

		return elementsCount, nil
	})
}

// importedIdentity is an identity record read from a snapshot together with its externally stored judgements.
type importedIdentity struct {
	accountID    iotago.AccountID
	registration *model.Registration
	external     model.Judgements
}

// Import reads identity records written by Export into an empty registry. The whole snapshot is read and validated
// before anything is written, and records that were already written are removed again if writing fails. The
// parameters of the snapshot are only used to warn about a mismatch.
func (r *Registry) Import(reader io.ReadSeeker) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if count, err := r.storage.Identities().Count(); err != nil {
		return err
	} else if count != 0 {
		return ierrors.WithMessagef(ErrRegistryNotEmpty, "%d identities are stored", count)
	}

	snapshotParameters, err := model.ParametersFromReader(reader)
	if err != nil {
		return ierrors.Wrap(err, "failed to read parameters")
	}
	if *snapshotParameters != r.optsParameters {
		r.LogWarn("snapshot was created with different parameters", "snapshot", snapshotParameters, "configured", r.optsParameters)
	}

	importedIdentities := make([]*importedIdentity, 0)
	seenAccounts := make(map[iotago.AccountID]struct{})
	if err = stream.ReadCollection(reader, serializer.SeriLengthPrefixTypeAsUint32, func(i int) error {
		accountID, err := stream.Read[iotago.AccountID](reader)
		if err != nil {
			return ierrors.Wrapf(err, "failed to read account id at index %d", i)
		}

		if _, seen := seenAccounts[accountID]; seen {
			return ierrors.WithMessagef(ErrInvalidSnapshot, "identity of %s is listed twice", accountID)
		}
		seenAccounts[accountID] = struct{}{}

		imported, err := r.readIdentity(reader, accountID)
		if err != nil {
			return ierrors.Wrapf(err, "failed to import identity of %s", accountID)
		}
		importedIdentities = append(importedIdentities, imported)

		return nil
	}); err != nil {
		return ierrors.Wrap(err, "failed to read identities")
	}

	for idx, imported := range importedIdentities {
		if err = r.storeIdentity(imported); err != nil {
			return ierrors.Join(ierrors.Wrapf(err, "failed to store identity of %s", imported.accountID), r.removeImported(importedIdentities[:idx+1]))
		}
	}

	return r.storage.Settings().SetSnapshotImported()
}

// readIdentity reads a single record with its external judgements and checks it against the limits of the registry.
func (r *Registry) readIdentity(reader io.ReadSeeker, accountID iotago.AccountID) (*importedIdentity, error) {
	registration, err := model.RegistrationFromReader(reader)
	if err != nil {
		return nil, err
	}

	imported := &importedIdentity{accountID: accountID, registration: registration}
	if err = stream.ReadCollection(reader, serializer.SeriLengthPrefixTypeAsUint32, func(i int) error {
		id, err := stream.Read[uint32](reader)
		if err != nil {
			return ierrors.Wrapf(err, "failed to read id of judgement at index %d", i)
		}

		rawJudgement, err := stream.Read[uint8](reader)
		if err != nil {
			return ierrors.Wrapf(err, "failed to read judgement at index %d", i)
		}

		judgement, err := model.JudgementFromByte(rawJudgement)
		if err != nil {
			return err
		}
		imported.external = append(imported.external, model.JudgementEntry{ID: model.JudgementID(id), Judgement: judgement})

		return nil
	}); err != nil {
		return nil, err
	}

	slices.SortFunc(imported.external, func(a, b model.JudgementEntry) int {
		return cmp.Compare(a.ID, b.ID)
	})

	if err = r.validateIdentity(imported); err != nil {
		return nil, err
	}

	return imported, nil
}

func (r *Registry) validateIdentity(imported *importedIdentity) error {
	registration := imported.registration

	if err := registration.Info.Validate(int(r.optsParameters.MaxFieldLength)); err != nil {
		return err
	}

	if len(registration.Judgements) > int(r.optsParameters.MaxJudgements) {
		return ierrors.WithMessagef(ErrTooManyJudgements, "%d judgements are stored inline", len(registration.Judgements))
	}

	if len(imported.external) > int(r.optsParameters.MaxJudgements) {
		return ierrors.WithMessagef(ErrTooManyJudgements, "%d judgements are stored externally", len(imported.external))
	}
	if !imported.external.IsSorted() {
		return ierrors.WithMessage(ErrInvalidSnapshot, "external judgement ids are not unique")
	}
	if uint32(len(imported.external)) != registration.ExternalCount {
		return ierrors.WithMessagef(ErrInvalidSnapshot, "record counts %d external judgements, but %d are listed", registration.ExternalCount, len(imported.external))
	}

	return nil
}

func (r *Registry) storeIdentity(imported *importedIdentity) error {
	for _, entry := range imported.external {
		if err := r.storage.Judgements().Store(imported.accountID, entry.ID, entry.Judgement); err != nil {
			return err
		}
	}

	return r.storage.Identities().Store(imported.accountID, imported.registration)
}

func (r *Registry) removeImported(importedIdentities []*importedIdentity) (err error) {
	for _, imported := range importedIdentities {
		if _, drainErr := r.storage.Judgements().DeleteAll(imported.accountID); drainErr != nil {
			err = ierrors.Join(err, drainErr)
		}
		if deleteErr := r.storage.Identities().Delete(imported.accountID); deleteErr != nil {
			err = ierrors.Join(err, deleteErr)
		}
	}

	return err
}

// IsSnapshotImported returns true if the registry state was initialized from a snapshot.
func (r *Registry) IsSnapshotImported() bool {
	return r.storage.Settings().IsSnapshotImported()
}
