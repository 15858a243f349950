package toolset

import (
	"encoding/hex"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"golang.org/x/crypto/blake2b"

	"github.com/iotaledger/hive.go/app/configuration"
	"github.com/iotaledger/hive.go/crypto"
	"github.com/iotaledger/hive.go/crypto/pem"
	"github.com/iotaledger/hive.go/ierrors"
	iotago "github.com/iotaledger/iota.go/v4"
	"github.com/iotaledger/iota.go/v4/wallet"
)

type keyInfo struct {
	BIP39      string `json:"mnemonic,omitempty"`
	BIP32      string `json:"path,omitempty"`
	PrivateKey string `json:"privateKey,omitempty"`
	PublicKey  string `json:"publicKey"`
	AccountID  string `json:"accountId"`
}

// AccountIDFromPublicKey derives the account id an ed25519 public key signs for.
func AccountIDFromPublicKey(publicKey []byte) iotago.AccountID {
	return blake2b.Sum256(publicKey)
}

func printKeyInfo(info keyInfo, outputJSON bool) error {
	if outputJSON {
		return printJSON(info)
	}

	if len(info.BIP39) > 0 {
		fmt.Println("Your seed BIP39 mnemonic: ", info.BIP39)
		fmt.Println()
		fmt.Println("Your BIP32 path:          ", info.BIP32)
	}

	if info.PrivateKey != "" {
		fmt.Println("Your ed25519 private key: ", info.PrivateKey)
	}

	fmt.Println("Your ed25519 public key:  ", info.PublicKey)
	fmt.Println("Your account id:          ", info.AccountID)

	return nil
}

func generateEd25519Key(args []string) error {
	fs := configuration.NewUnsortedFlagSet("", flag.ContinueOnError)
	bip32Path := fs.String(FlagToolBIP32Path, DefaultValueBIP32Path, "the BIP32 path that should be used to derive keys from seed")
	mnemonicFlag := fs.String(FlagToolMnemonic, "", "the BIP-39 mnemonic sentence that should be used to derive the seed from (optional)")
	outputPathFlag := fs.String(FlagToolOutputPath, "", "the PEM file the private key is written to (optional)")
	outputJSONFlag := fs.Bool(FlagToolOutputJSON, false, FlagToolDescriptionOutputJSON)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", ToolEd25519Key)
		fs.PrintDefaults()
		println(fmt.Sprintf("\nexample: %s --%s %s",
			ToolEd25519Key,
			FlagToolOutputPath,
			DefaultValuePrivateKeyPath))
	}

	if err := parseFlagSet(fs, args); err != nil {
		return err
	}

	if len(*bip32Path) == 0 {
		return ierrors.Errorf("'%s' not specified", FlagToolBIP32Path)
	}

	var err error
	var keyManager *wallet.KeyManager
	if len(*mnemonicFlag) == 0 {
		keyManager, err = wallet.NewKeyManagerFromRandom(*bip32Path)
	} else {
		keyManager, err = wallet.NewKeyManagerFromMnemonic(*mnemonicFlag, *bip32Path)
	}
	if err != nil {
		return err
	}

	privKey, pubKey := keyManager.KeyPair()

	if len(*outputPathFlag) > 0 {
		if _, err := os.Stat(*outputPathFlag); err == nil || !os.IsNotExist(err) {
			return ierrors.Errorf("private key file (%s) already exists", *outputPathFlag)
		}

		if err := pem.WriteEd25519PrivateKeyToPEMFile(*outputPathFlag, privKey); err != nil {
			return ierrors.Wrap(err, "writing private key file failed")
		}
	}

	return printKeyInfo(keyInfo{
		BIP39:      keyManager.Mnemonic().String(),
		BIP32:      keyManager.Path().String(),
		PrivateKey: hex.EncodeToString(privKey),
		PublicKey:  hex.EncodeToString(pubKey),
		AccountID:  AccountIDFromPublicKey(pubKey).ToHex(),
	}, *outputJSONFlag)
}

func accountIDFromPublicKey(args []string) error {
	fs := configuration.NewUnsortedFlagSet("", flag.ContinueOnError)
	publicKeyFlag := fs.String(FlagToolPublicKey, "", "an ed25519 public key")
	outputJSONFlag := fs.Bool(FlagToolOutputJSON, false, FlagToolDescriptionOutputJSON)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", ToolAccountID)
		fs.PrintDefaults()
		println(fmt.Sprintf("\nexample: %s --%s %s",
			ToolAccountID,
			FlagToolPublicKey,
			"[PUB_KEY]",
		))
	}

	if err := parseFlagSet(fs, args); err != nil {
		return err
	}

	if len(*publicKeyFlag) == 0 {
		return ierrors.Errorf("'%s' not specified", FlagToolPublicKey)
	}

	// parse pubkey
	pubKey, err := crypto.ParseEd25519PublicKeyFromString(*publicKeyFlag)
	if err != nil {
		return ierrors.Wrapf(err, "can't decode '%s'", FlagToolPublicKey)
	}

	return printKeyInfo(keyInfo{
		PublicKey: hex.EncodeToString(pubKey),
		AccountID: AccountIDFromPublicKey(pubKey).ToHex(),
	}, *outputJSONFlag)
}
