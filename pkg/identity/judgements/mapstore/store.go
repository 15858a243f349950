package mapstore

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/pkg/identity/judgements"
	"github.com/iotaledger/identity-registry/pkg/model"
	"github.com/iotaledger/identity-registry/pkg/storage/permanent"
	iotago "github.com/iotaledger/iota.go/v4"
)

// Store keeps judgements in a separate keyed collection and tracks their number in the identity record.
type Store struct {
	identities    *permanent.Identities
	judgements    *permanent.Judgements
	maxJudgements uint32
}

var _ judgements.Store = &Store{}

func New(identities *permanent.Identities, judgementStorage *permanent.Judgements, maxJudgements uint32) *Store {
	return &Store{
		identities:    identities,
		judgements:    judgementStorage,
		maxJudgements: maxJudgements,
	}
}

func (s *Store) Judgement(accountID iotago.AccountID, _ *model.Registration, id model.JudgementID) (model.Judgement, bool, error) {
	return s.judgements.Load(accountID, id)
}

func (s *Store) InsertOrReplace(accountID iotago.AccountID, registration *model.Registration, id model.JudgementID, judgement model.Judgement) error {
	existing, exists, err := s.judgements.Load(accountID, id)
	if err != nil {
		return err
	}

	if exists {
		if existing.IsSticky() {
			return ierrors.WithMessagef(model.ErrStickyJudgement, "judgement %d is %s", id, existing)
		}

		return s.judgements.Store(accountID, id, judgement)
	}

	if registration.ExternalCount >= s.maxJudgements {
		return ierrors.WithMessagef(model.ErrTooManyJudgements, "%d judgements stored", registration.ExternalCount)
	}

	// the record is written before the entry and restored if the entry can not be written
	registration.ExternalCount++
	if err = s.identities.Store(accountID, registration); err != nil {
		registration.ExternalCount--

		return err
	}

	if err = s.judgements.Store(accountID, id, judgement); err != nil {
		registration.ExternalCount--

		return ierrors.Join(err, s.identities.Store(accountID, registration))
	}

	return nil
}

func (s *Store) Clear(accountID iotago.AccountID, _ *model.Registration) (uint32, error) {
	return s.judgements.DeleteAll(accountID)
}

func (s *Store) Count(accountID iotago.AccountID, _ *model.Registration) (uint32, error) {
	return s.judgements.Count(accountID)
}
