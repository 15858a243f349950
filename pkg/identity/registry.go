package identity

import (
	"cmp"
	"slices"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/hive.go/runtime/syncutils"
	"github.com/iotaledger/identity-registry/pkg/identity/deposit"
	"github.com/iotaledger/identity-registry/pkg/identity/judgements"
	"github.com/iotaledger/identity-registry/pkg/identity/judgements/inlinestore"
	"github.com/iotaledger/identity-registry/pkg/identity/judgements/mapstore"
	"github.com/iotaledger/identity-registry/pkg/model"
	"github.com/iotaledger/identity-registry/pkg/storage"
	iotago "github.com/iotaledger/iota.go/v4"
)

// Registry manages the identity records of accounts, the judgements given on them and the deposits held for them.
// Operations are applied one at a time and either fully succeed or leave the state untouched.
type Registry struct {
	Events *Events

	storage  *storage.Storage
	deposits *deposit.Calculator
	inline   judgements.Store
	external judgements.Store

	mutex syncutils.RWMutex

	optsParameters model.Parameters
	optsWeights    WeightInfo

	log.Logger
}

func New(logger log.Logger, storageInstance *storage.Storage, currency deposit.Currency, opts ...options.Option[Registry]) *Registry {
	return options.Apply(&Registry{
		Events:  NewEvents(),
		storage: storageInstance,
		optsParameters: model.Parameters{
			BasicDeposit:   10,
			ByteDeposit:    1,
			MaxJudgements:  20,
			MaxFieldLength: 64,
		},
		optsWeights: FlatWeights{},
	}, opts, func(r *Registry) {
		r.Logger = logger.NewChildLogger("Registry")

		if err := r.optsParameters.Validate(); err != nil {
			panic(ierrors.Wrap(err, "invalid registry parameters"))
		}

		r.deposits = deposit.NewCalculator(r.optsParameters.BasicDeposit, r.optsParameters.ByteDeposit, currency)
		r.inline = inlinestore.New(r.storage.Identities(), r.optsParameters.MaxJudgements)
		r.external = mapstore.New(r.storage.Identities(), r.storage.Judgements(), r.optsParameters.MaxJudgements)

		if err := r.storeParameters(); err != nil {
			panic(err)
		}
	})
}

// Parameters returns the parameters the registry operates with.
func (r *Registry) Parameters() model.Parameters {
	return r.optsParameters
}

// Deposit returns the deposit that is required for the given info.
func (r *Registry) Deposit(info *model.IdentityInfo) iotago.BaseToken {
	return r.deposits.Deposit(info)
}

// SetIdentity sets or replaces the identity of the signing account. Replacing an identity drops all non-sticky
// inline judgements, while judgements stored externally are kept.
func (r *Registry) SetIdentity(origin Origin, info *model.IdentityInfo) error {
	accountID, err := origin.Account()
	if err != nil {
		return err
	}

	if err = info.Validate(int(r.optsParameters.MaxFieldLength)); err != nil {
		return err
	}

	weight, err := r.setIdentity(accountID, info)
	if err != nil {
		return err
	}

	r.Events.IdentitySet.Trigger(accountID)
	r.Events.OperationExecuted.Trigger(&OperationExecutedEvent{Operation: OperationSetIdentity, Weight: weight})

	return nil
}

func (r *Registry) setIdentity(accountID iotago.AccountID, info *model.IdentityInfo) (weight Weight, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	registration, exists, err := r.storage.Identities().Load(accountID)
	if err != nil {
		return 0, err
	}

	if exists {
		weight = r.optsWeights.SetIdentityUpdate(uint32(info.EncodedSize()), uint32(len(registration.Judgements)))
		registration.Judgements = registration.Judgements.RetainSticky()
	} else {
		weight = r.optsWeights.SetIdentity(uint32(info.EncodedSize()))
		registration = model.NewRegistration()
	}

	currentDeposit, newDeposit := registration.Deposit, r.deposits.Deposit(info)
	if err = r.deposits.Rejig(accountID, currentDeposit, newDeposit); err != nil {
		return 0, err
	}

	registration.Info = info.Clone()
	registration.Deposit = newDeposit

	if err = r.storage.Identities().Store(accountID, registration); err != nil {
		return 0, ierrors.Join(err, r.deposits.Rejig(accountID, newDeposit, currentDeposit))
	}

	r.LogDebug("identity set", "account", accountID, "deposit", newDeposit, "replaced", exists)

	return weight, nil
}

// ProvideJudgementInline stores a judgement on the identity of target in the identity record.
func (r *Registry) ProvideJudgementInline(origin Origin, id model.JudgementID, target iotago.AccountID, judgement uint8) error {
	return r.provideJudgement(origin, false, id, target, judgement)
}

// ProvideJudgementExternal stores a judgement on the identity of target outside of the identity record.
func (r *Registry) ProvideJudgementExternal(origin Origin, id model.JudgementID, target iotago.AccountID, judgement uint8) error {
	return r.provideJudgement(origin, true, id, target, judgement)
}

func (r *Registry) provideJudgement(origin Origin, external bool, id model.JudgementID, target iotago.AccountID, rawJudgement uint8) error {
	if err := origin.EnsurePrivileged(); err != nil {
		return err
	}

	judgement, err := model.JudgementFromByte(rawJudgement)
	if err != nil {
		return err
	}

	executed, err := r.insertJudgement(external, id, target, judgement)
	if err != nil {
		return err
	}

	r.Events.JudgementGiven.Trigger(&JudgementGivenEvent{Target: target, ID: id, Judgement: judgement, External: external})
	r.Events.OperationExecuted.Trigger(executed)

	return nil
}

func (r *Registry) insertJudgement(external bool, id model.JudgementID, target iotago.AccountID, judgement model.Judgement) (*OperationExecutedEvent, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	registration, exists, err := r.storage.Identities().Load(target)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ierrors.WithMessagef(ErrInvalidTarget, "%s has no identity", target)
	}

	path := r.inline
	executed := &OperationExecutedEvent{Operation: OperationProvideJudgementInline, Weight: r.optsWeights.ProvideJudgementInline(uint32(len(registration.Judgements)))}
	if external {
		path = r.external
		executed = &OperationExecutedEvent{Operation: OperationProvideJudgementExternal, Weight: r.optsWeights.ProvideJudgementExternal()}
	}

	if err = path.InsertOrReplace(target, registration, id, judgement); err != nil {
		return nil, err
	}

	r.LogDebug("judgement given", "target", target, "id", id, "judgement", judgement, "external", external)

	return executed, nil
}

// ClearIdentity removes the identity of the signing account with all its judgements and releases the deposit.
func (r *Registry) ClearIdentity(origin Origin) (iotago.BaseToken, error) {
	accountID, err := origin.Account()
	if err != nil {
		return 0, err
	}

	released, weight, err := r.removeIdentity(accountID, r.deposits.Release)
	if err != nil {
		return 0, err
	}

	r.LogDebug("identity cleared", "account", accountID, "deposit", released)

	r.Events.IdentityCleared.Trigger(&IdentityRemovedEvent{AccountID: accountID, Deposit: released})
	r.Events.OperationExecuted.Trigger(&OperationExecutedEvent{Operation: OperationClearIdentity, Weight: weight})

	return released, nil
}

// KillIdentity forcefully removes the identity of target with all its judgements and slashes the deposit.
func (r *Registry) KillIdentity(origin Origin, target iotago.AccountID) (iotago.BaseToken, error) {
	if err := origin.EnsurePrivileged(); err != nil {
		return 0, err
	}

	slashed, weight, err := r.removeIdentity(target, r.deposits.Slash)
	if err != nil {
		return 0, err
	}

	r.LogInfo("identity killed", "account", target, "slashed", slashed)

	r.Events.IdentityKilled.Trigger(&IdentityRemovedEvent{AccountID: target, Deposit: slashed})
	r.Events.OperationExecuted.Trigger(&OperationExecutedEvent{Operation: OperationKillIdentity, Weight: weight})

	return slashed, nil
}

// removeIdentity deletes the record of the account, drains both judgement paths and settles the deposit.
func (r *Registry) removeIdentity(accountID iotago.AccountID, settleDeposit func(accountID iotago.AccountID, amount iotago.BaseToken) iotago.BaseToken) (settled iotago.BaseToken, weight Weight, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	registration, exists, err := r.storage.Identities().Load(accountID)
	if err != nil {
		return 0, 0, err
	}
	if !exists {
		return 0, 0, ierrors.WithMessagef(ErrNoIdentity, "%s has no identity", accountID)
	}

	if err = r.storage.Identities().Delete(accountID); err != nil {
		return 0, 0, err
	}

	drained, err := r.external.Clear(accountID, registration)
	if err != nil {
		return 0, 0, ierrors.Join(ierrors.Wrapf(err, "failed to drain judgements of %s", accountID), r.restoreIdentity(accountID, registration))
	}
	if drained != registration.ExternalCount {
		panic(ierrors.Errorf("drained %d external judgements of %s, but the record counted %d", drained, accountID, registration.ExternalCount))
	}

	cleared, err := r.inline.Clear(accountID, registration)
	if err != nil {
		return 0, 0, ierrors.Wrapf(err, "failed to clear judgements of %s", accountID)
	}

	return settleDeposit(accountID, registration.Deposit), r.optsWeights.ClearIdentityInlineUsage(cleared) + r.optsWeights.ClearIdentityExternalUsage(drained), nil
}

// restoreIdentity writes back the record of an account whose removal failed. The external counter is set to the
// entries that are still stored.
func (r *Registry) restoreIdentity(accountID iotago.AccountID, registration *model.Registration) error {
	remaining, err := r.external.Count(accountID, registration)
	if err != nil {
		return err
	}
	registration.ExternalCount = remaining

	return r.storage.Identities().Store(accountID, registration)
}

// IdentityOf returns a copy of the identity record of the account.
func (r *Registry) IdentityOf(accountID iotago.AccountID) (registration *model.Registration, exists bool, err error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.storage.Identities().Load(accountID)
}

// ExternalJudgements returns the judgements stored outside of the identity record of the account, ordered by id.
func (r *Registry) ExternalJudgements(accountID iotago.AccountID) (model.Judgements, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var externalJudgements model.Judgements
	if err := r.storage.Judgements().Stream(accountID, func(id model.JudgementID, judgement model.Judgement) error {
		externalJudgements = append(externalJudgements, model.JudgementEntry{ID: id, Judgement: judgement})

		return nil
	}); err != nil {
		return nil, err
	}

	slices.SortFunc(externalJudgements, func(a, b model.JudgementEntry) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return externalJudgements, nil
}

// ForEachIdentity calls the consumer for every identity record until it returns an error.
func (r *Registry) ForEachIdentity(consumer func(accountID iotago.AccountID, registration *model.Registration) error) error {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.storage.Identities().Stream(consumer)
}

// IdentityCount returns the number of identity records.
func (r *Registry) IdentityCount() (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.storage.Identities().Count()
}

func (r *Registry) Shutdown() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.Logger.Shutdown()
}

func (r *Registry) storeParameters() error {
	storedParameters, exists, err := r.storage.Settings().Parameters()
	if err != nil {
		return err
	}

	if exists {
		if storedParameters.MaxJudgements > r.optsParameters.MaxJudgements || storedParameters.MaxFieldLength > r.optsParameters.MaxFieldLength {
			r.LogWarn("limits were lowered, existing records may exceed them", "stored", storedParameters, "configured", r.optsParameters)
		}

		if storedParameters.BasicDeposit != r.optsParameters.BasicDeposit || storedParameters.ByteDeposit != r.optsParameters.ByteDeposit {
			r.LogWarn("deposit parameters changed, existing deposits are adjusted when identities are set again", "stored", storedParameters, "configured", r.optsParameters)
		}
	}

	return r.storage.Settings().StoreParameters(&r.optsParameters)
}
