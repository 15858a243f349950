package toolset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/ierrors"
)

const (
	FlagToolPrivateKeyPath = "privateKeyPath"
	FlagToolOutputPath     = "outputPath"
	FlagToolSnapshotPath   = "snapshotPath"

	FlagToolPublicKey = "publicKey"
	FlagToolAccountID = "accountID"

	FlagToolPrivileged = "privileged"
	FlagToolBIP32Path  = "bip32Path"
	FlagToolMnemonic   = "mnemonic"
	FlagToolSalt       = "salt"

	FlagToolOutputJSON            = "json"
	FlagToolDescriptionOutputJSON = "format output as JSON"
)

const (
	ToolEd25519Key   = "ed25519-key"
	ToolAccountID    = "account-id"
	ToolJWTApi       = "jwt-api"
	ToolSnapshotInfo = "snapshot-info"
)

const (
	DefaultValueAPIJWTTokenSalt = "IOTA"
	DefaultValuePrivateKeyPath  = "identity.key"
	DefaultValueSnapshotPath    = "snapshot.bin"
	DefaultValueBIP32Path       = "m/44'/4218'/0'/0'/0'"
)

// ShouldHandleTools checks if tools were requested.
func ShouldHandleTools() bool {
	args := os.Args[1:]

	for _, arg := range args {
		if strings.ToLower(arg) == "tool" || strings.ToLower(arg) == "tools" {
			return true
		}
	}

	return false
}

// HandleTools handles available tools.
func HandleTools() {
	args := os.Args[1:]
	if len(args) == 1 {
		listTools()
		os.Exit(1)
	}

	tools := map[string]func([]string) error{
		ToolEd25519Key:   generateEd25519Key,
		ToolAccountID:    accountIDFromPublicKey,
		ToolJWTApi:       generateJWTApiToken,
		ToolSnapshotInfo: snapshotInfo,
	}

	tool, exists := tools[strings.ToLower(args[1])]
	if !exists {
		fmt.Print("tool not found.\n\n")
		listTools()
		os.Exit(1)
	}

	if err := tool(args[2:]); err != nil {
		if ierrors.Is(err, flag.ErrHelp) {
			// help text was requested
			os.Exit(0)
		}

		fmt.Printf("\nerror: %s\n", err)
		os.Exit(1)
	}

	os.Exit(0)
}

func listTools() {
	fmt.Printf("%-20s generates an ed25519 key pair and its account id\n", fmt.Sprintf("%s:", ToolEd25519Key))
	fmt.Printf("%-20s derives the account id of an ed25519 public key\n", fmt.Sprintf("%s:", ToolAccountID))
	fmt.Printf("%-20s generates a JWT token for REST-API access\n", fmt.Sprintf("%s:", ToolJWTApi))
	fmt.Printf("%-20s prints the content of a registry snapshot\n", fmt.Sprintf("%s:", ToolSnapshotInfo))
}

func yesOrNo(value bool) string {
	if value {
		return "YES"
	}

	return "NO"
}

func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Check if all parameters were parsed
	if fs.NArg() != 0 {
		return ierrors.New("too much arguments")
	}

	return nil
}

func printJSON(obj interface{}) error {
	output, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(output))

	return nil
}
