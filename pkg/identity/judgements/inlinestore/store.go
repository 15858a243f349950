package inlinestore

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/pkg/identity/judgements"
	"github.com/iotaledger/identity-registry/pkg/model"
	"github.com/iotaledger/identity-registry/pkg/storage/permanent"
	iotago "github.com/iotaledger/iota.go/v4"
)

// Store keeps judgements in the ordered list of the identity record itself.
type Store struct {
	identities    *permanent.Identities
	maxJudgements int
}

var _ judgements.Store = &Store{}

func New(identities *permanent.Identities, maxJudgements uint32) *Store {
	return &Store{
		identities:    identities,
		maxJudgements: int(maxJudgements),
	}
}

func (s *Store) Judgement(_ iotago.AccountID, registration *model.Registration, id model.JudgementID) (model.Judgement, bool, error) {
	judgement, exists := registration.Judgements.Get(id)

	return judgement, exists, nil
}

func (s *Store) InsertOrReplace(accountID iotago.AccountID, registration *model.Registration, id model.JudgementID, judgement model.Judgement) error {
	updatedJudgements := registration.Judgements.Clone()
	if err := updatedJudgements.InsertOrReplace(id, judgement, s.maxJudgements); err != nil {
		return err
	}

	previousJudgements := registration.Judgements
	registration.Judgements = updatedJudgements

	if err := s.identities.Store(accountID, registration); err != nil {
		registration.Judgements = previousJudgements

		return ierrors.Wrapf(err, "failed to store judgement %d", id)
	}

	return nil
}

// Clear drops the list from the record. The record is not written, as it is removed as a whole by the caller.
func (s *Store) Clear(_ iotago.AccountID, registration *model.Registration) (uint32, error) {
	removed := uint32(len(registration.Judgements))
	registration.Judgements = nil

	return removed, nil
}

func (s *Store) Count(_ iotago.AccountID, registration *model.Registration) (uint32, error) {
	return uint32(len(registration.Judgements)), nil
}
