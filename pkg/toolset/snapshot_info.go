package toolset

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/app/configuration"
	"github.com/iotaledger/hive.go/db"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/identity-registry/pkg/balances"
	"github.com/iotaledger/identity-registry/pkg/identity"
	"github.com/iotaledger/identity-registry/pkg/model"
	"github.com/iotaledger/identity-registry/pkg/snapshot"
	"github.com/iotaledger/identity-registry/pkg/storage"
	iotago "github.com/iotaledger/iota.go/v4"
)

// snapshotDatabaseVersion is the version of the temporary database a snapshot is loaded into.
const snapshotDatabaseVersion byte = 1

type snapshotIdentity struct {
	AccountID          string           `json:"accountId"`
	Display            string           `json:"display,omitempty"`
	Judgements         int              `json:"judgements"`
	ExternalJudgements uint32           `json:"externalJudgements"`
	Deposit            iotago.BaseToken `json:"deposit"`
}

type snapshotSummary struct {
	Parameters    model.Parameters   `json:"parameters"`
	TotalIssuance iotago.BaseToken   `json:"totalIssuance"`
	Identities    []snapshotIdentity `json:"identities"`
}

func snapshotInfo(args []string) error {
	fs := configuration.NewUnsortedFlagSet("", flag.ContinueOnError)
	snapshotPathFlag := fs.String(FlagToolSnapshotPath, DefaultValueSnapshotPath, "the path of the snapshot file")
	outputJSONFlag := fs.Bool(FlagToolOutputJSON, false, FlagToolDescriptionOutputJSON)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", ToolSnapshotInfo)
		fs.PrintDefaults()
		println(fmt.Sprintf("\nexample: %s --%s %s",
			ToolSnapshotInfo,
			FlagToolSnapshotPath,
			DefaultValueSnapshotPath))
	}

	if err := parseFlagSet(fs, args); err != nil {
		return err
	}

	if len(*snapshotPathFlag) == 0 {
		return ierrors.Errorf("'%s' not specified", FlagToolSnapshotPath)
	}

	tempDir, err := os.MkdirTemp("", "snapshot-info")
	if err != nil {
		return ierrors.Wrap(err, "failed to create temporary directory")
	}
	defer os.RemoveAll(tempDir)

	var storageErr error
	storageInstance := storage.Create(tempDir, snapshotDatabaseVersion, func(err error) { storageErr = err }, storage.WithDBEngine(db.EngineMapDB))
	defer storageInstance.Shutdown()

	ledger := balances.NewLedger(0)
	registry := identity.New(log.NewLogger(), storageInstance, ledger)
	defer registry.Shutdown()

	imported, err := snapshot.Read(*snapshotPathFlag, ledger, registry)
	if err != nil {
		return ierrors.Wrapf(err, "failed to read snapshot (%s)", *snapshotPathFlag)
	}
	if !imported {
		return ierrors.Errorf("snapshot file (%s) does not exist", *snapshotPathFlag)
	}
	if storageErr != nil {
		return ierrors.Wrap(storageErr, "failed to load snapshot into storage")
	}

	summary := &snapshotSummary{
		Parameters:    registry.Parameters(),
		TotalIssuance: ledger.TotalIssuance(),
		Identities:    make([]snapshotIdentity, 0),
	}

	if err = registry.ForEachIdentity(func(accountID iotago.AccountID, registration *model.Registration) error {
		summary.Identities = append(summary.Identities, snapshotIdentity{
			AccountID:          accountID.ToHex(),
			Display:            string(registration.Info.Display),
			Judgements:         len(registration.Judgements),
			ExternalJudgements: registration.ExternalCount,
			Deposit:            registration.Deposit,
		})

		return nil
	}); err != nil {
		return ierrors.Wrap(err, "failed to iterate identities")
	}

	if *outputJSONFlag {
		return printJSON(summary)
	}

	fmt.Println("Parameters:     ", summary.Parameters.String())
	fmt.Println("Total issuance: ", summary.TotalIssuance)
	fmt.Println("Identities:     ", len(summary.Identities))
	for _, entry := range summary.Identities {
		fmt.Printf("  %s display=%q judgements=%d external=%d deposit=%d\n", entry.AccountID, entry.Display, entry.Judgements, entry.ExternalJudgements, entry.Deposit)
	}

	return nil
}
