package toolset

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/app/configuration"
	"github.com/iotaledger/hive.go/crypto/pem"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/identity-registry/components/restapi"
	"github.com/iotaledger/identity-registry/pkg/jwt"
	iotago "github.com/iotaledger/iota.go/v4"
)

func generateJWTApiToken(args []string) error {
	fs := configuration.NewUnsortedFlagSet("", flag.ContinueOnError)
	privateKeyPathFlag := fs.String(FlagToolPrivateKeyPath, DefaultValuePrivateKeyPath, "the path of the private key file of the REST API")
	apiJWTSaltFlag := fs.String(FlagToolSalt, DefaultValueAPIJWTTokenSalt, "salt used inside the JWT tokens for the REST API")
	accountIDFlag := fs.String(FlagToolAccountID, "", "the account the token signs for")
	privilegedFlag := fs.Bool(FlagToolPrivileged, false, "issue a token that may judge and kill identities")
	outputJSONFlag := fs.Bool(FlagToolOutputJSON, false, FlagToolDescriptionOutputJSON)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", ToolJWTApi)
		fs.PrintDefaults()
		println(fmt.Sprintf("\nexample: %s --%s %s --%s %s --%s [ACCOUNT_ID]",
			ToolJWTApi,
			FlagToolPrivateKeyPath,
			DefaultValuePrivateKeyPath,
			FlagToolSalt,
			DefaultValueAPIJWTTokenSalt,
			FlagToolAccountID))
	}

	if err := parseFlagSet(fs, args); err != nil {
		return err
	}

	if len(*privateKeyPathFlag) == 0 {
		return ierrors.Errorf("'%s' not specified", FlagToolPrivateKeyPath)
	}
	if len(*apiJWTSaltFlag) == 0 {
		return ierrors.Errorf("'%s' not specified", FlagToolSalt)
	}
	if len(*accountIDFlag) == 0 && !*privilegedFlag {
		return ierrors.Errorf("either '%s' or '%s' needs to be specified", FlagToolAccountID, FlagToolPrivileged)
	}

	var subject string
	if len(*accountIDFlag) > 0 {
		accountID, err := iotago.AccountIDFromHexString(*accountIDFlag)
		if err != nil {
			return ierrors.Wrapf(err, "can't decode '%s'", FlagToolAccountID)
		}
		subject = accountID.ToHex()
	}

	privKeyFilePath := *privateKeyPathFlag

	_, err := os.Stat(privKeyFilePath)
	switch {
	case os.IsNotExist(err):
		// private key does not exist
		return ierrors.Errorf("private key file (%s) does not exist", privKeyFilePath)

	case err == nil || os.IsExist(err):
		// private key file exists

	default:
		return ierrors.Wrapf(err, "unable to check private key file (%s)", privKeyFilePath)
	}

	privKey, err := pem.ReadEd25519PrivateKeyFromPEMFile(privKeyFilePath)
	if err != nil {
		return ierrors.Wrap(err, "reading private key file failed")
	}

	// API tokens do not expire.
	jwtAuth, err := jwt.NewAuth(*apiJWTSaltFlag,
		0,
		restapi.JWTIssuer,
		privKey,
	)
	if err != nil {
		return ierrors.Wrap(err, "JWT auth initialization failed")
	}

	jwtToken, err := jwtAuth.IssueJWT(subject, *privilegedFlag)
	if err != nil {
		return ierrors.Wrap(err, "issuing JWT token failed")
	}

	if *outputJSONFlag {
		result := struct {
			JWT        string `json:"jwt"`
			Subject    string `json:"subject,omitempty"`
			Privileged bool   `json:"privileged"`
		}{
			JWT:        jwtToken,
			Subject:    subject,
			Privileged: *privilegedFlag,
		}

		return printJSON(result)
	}

	fmt.Println("Your API JWT token: ", jwtToken)
	fmt.Println("Privileged:         ", yesOrNo(*privilegedFlag))

	return nil
}
