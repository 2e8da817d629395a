// MIT License
//
// Copyright 2024 The SignxLit Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/DaevMithran/SignxLit/client"
	"github.com/DaevMithran/SignxLit/evm"
	"github.com/DaevMithran/SignxLit/index"
	"github.com/DaevMithran/SignxLit/lit"
	"github.com/DaevMithran/SignxLit/log"
	"github.com/DaevMithran/SignxLit/offchain"
	"github.com/DaevMithran/SignxLit/onchain"
	"github.com/DaevMithran/SignxLit/sp"
	"github.com/DaevMithran/SignxLit/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Execute runs the root command with ctx, which is cancelled on SIGINT.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

var (
	envFile string

	Registry = evm.DefaultRegistry()
	Chain    evm.Chain
	Wallet   wallet.Wallet
	Lit      *lit.Client
	Index    *index.Client
	SP       *client.Client
)

// setting is a flag that may also be set by an environment variable or
// the env file. Its viper key is the lower case variable name.
type setting struct {
	Flag string
	Env  string
}

func (s setting) key() string { return strings.ToLower(s.Env) }

var settings = []setting{
	{"private-key", "PRIVATE_KEY"},
	{"wallet-rpc", "WALLET_RPC"},
	{"chain", "CHAIN"},
	{"rpc", "RPC_URL"},
	{"contract", "SP_CONTRACT"},
	{"chains-file", "CHAINS_FILE"},
	{"lit", "LIT_NETWORK"},
	{"lit-chain", "LIT_CHAIN"},
	{"indexer", "INDEXER_ENV"},
	{"mode", "SP_MODE"},
	{"timeout", "TIMEOUT"},
	{"debug", "DEBUG"},
}

func get(flg string) string {
	for _, s := range settings {
		if s.Flag == flg {
			return viper.GetString(s.key())
		}
	}
	return ""
}

var mode = sp.ModeOnChain

var apiFlags = func() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.String("private-key", "",
		"Hex private key used to sign and submit transactions")
	flags.String("wallet-rpc", "",
		"scheme://host:port of an EIP-1193 wallet provider")
	flags.String("chain", evm.PolygonAmoy.Key,
		"Chain key or decimal chain ID")
	flags.String("rpc", "", "Override the chain's RPC URL")
	flags.String("contract", "",
		"Override the chain's Sign Protocol contract address")
	flags.String("chains-file", "", "YAML file defining additional chains")
	flags.String("lit", lit.DefaultURL,
		"scheme://host:port of the encryption network")
	flags.String("lit-chain", "",
		"Chain name used in access control conditions (default from --chain)")
	flags.String("indexer", string(index.Testnet),
		"Indexer environment (mainnet, testnet)")
	flags.Var(&mode, "mode", "Client mode (onchain, offchain)")
	flags.Duration("timeout", 15*time.Second,
		"Timeout for encryption network and indexer requests (i.e. 10s, 1m)")
	flags.Bool("debug", false, "Print debug logs and all RPC requests")
	flags.StringVar(&envFile, "env-file", "",
		"Env file to read settings from (default .env or ~/.signxlit.env)")
	return flags
}()

// rootCmd represents the base command when called without any subcommands
var rootCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signxlit",
		Short: "Sign Protocol attestations with gated encryption",
		Long: `
signxlit creates and resolves Sign Protocol schemas and attestations on EVM
chains. Attestation payloads may be encrypted under access control conditions
so that only accounts satisfying them can read the data.

Wallet Settings

Exactly one of --private-key or --wallet-rpc selects the account. With
--private-key transactions are signed locally and submitted through the
chain's RPC URL. With --wallet-rpc every signature and transaction is
delegated to the wallet provider, which may ask the user for approval.

Settings

Every flag listed as a global flag may also be set in the environment or in
an env file: PRIVATE_KEY, WALLET_RPC, CHAIN, RPC_URL, SP_CONTRACT,
CHAINS_FILE, LIT_NETWORK, LIT_CHAIN, INDEXER_ENV, SP_MODE, TIMEOUT, DEBUG.
Flags take precedence over the environment, which takes precedence over the
env file.

Run without a sub-command to start the interactive menu.
`[1:],
		Args:              cobra.ExactArgs(0),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initConfig,
		PreRunE:           validateRunCompletionFlags,
		RunE:              runRoot,
	}

	cmd.Flags().AddFlagSet(installCompletionFlags)
	flags := cmd.PersistentFlags()
	flags.AddFlagSet(apiFlags)
	for _, s := range settings {
		viper.BindPFlag(s.key(), flags.Lookup(s.Flag))
		viper.BindEnv(s.key(), s.Env)
	}

	generateCmplFlags(cmd, rootCmplCmd.Flags)
	return cmd
}()

var rootCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{"help": complete.Command{Sub: complete.Commands{}}},
}
var apiCmplFlags = complete.Flags{
	"--help":        complete.PredictNothing,
	"--chain":       PredictChains,
	"--mode":        complete.PredictSet("onchain", "offchain"),
	"--indexer":     complete.PredictSet(string(index.Mainnet), string(index.Testnet)),
	"--chains-file": complete.PredictFiles("*.yaml"),
	"--env-file":    complete.PredictFiles("*"),
}

func runRoot(cmd *cobra.Command, args []string) error {
	if installCompletion(cmd) {
		return nil
	}
	return runMenu(cmd, args)
}

// initConfig reads the env file, if any, and applies the debug setting.
func initConfig(cmd *cobra.Command, _ []string) error {
	path := envFile
	if path == "" {
		path = defaultEnvFile()
	}
	if path != "" {
		viper.SetConfigFile(path)
		viper.SetConfigType("env")
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("env file: %w", err)
		}
		vrbLog.Println("Using env file:", viper.ConfigFileUsed())
	}
	if viper.GetBool("debug") {
		log.SetDebug(true)
	}
	if m := get("mode"); m != "" {
		if err := mode.Set(m); err != nil {
			return err
		}
	}
	return nil
}

// defaultEnvFile returns .env in the working directory or
// ~/.signxlit.env, whichever exists first.
func defaultEnvFile() string {
	candidates := []string{".env"}
	if home, err := homedir.Dir(); err == nil {
		candidates = append(candidates, home+"/.signxlit.env")
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// initChain resolves the selected chain and applies the RPC and contract
// overrides.
func initChain() error {
	if path := get("chains-file"); path != "" {
		if err := Registry.LoadFile(path); err != nil {
			return err
		}
	}
	var err error
	if Chain, err = Registry.Lookup(get("chain")); err != nil {
		return err
	}
	if url := get("rpc"); url != "" {
		Chain.RPCURLs = append([]string{url}, Chain.RPCURLs...)
	}
	if adr := get("contract"); adr != "" {
		if !common.IsHexAddress(adr) {
			return fmt.Errorf("invalid contract address: %q", adr)
		}
		Chain.Contract = common.HexToAddress(adr)
	}
	if Chain.RPCURL() == "" {
		return fmt.Errorf("%v has no RPC URL, use --rpc", Chain)
	}
	return nil
}

// initWallet connects the account selected by --private-key or
// --wallet-rpc.
func initWallet(ctx context.Context, backend *ethclient.Client) error {
	key, provider := get("private-key"), get("wallet-rpc")
	switch {
	case key != "" && provider != "":
		return fmt.Errorf("--private-key and --wallet-rpc may not be used together")
	case key != "":
		k, err := wallet.ParsePrivateKey(key)
		if err != nil {
			return err
		}
		w := wallet.NewPrivateKey(k, backend, nil)
		if err := w.AddChain(ctx, Chain); err != nil {
			return err
		}
		Wallet = w
	case provider != "":
		c, err := rpc.DialContext(ctx, provider)
		if err != nil {
			return err
		}
		if Wallet, err = wallet.NewInjected(ctx, c); err != nil {
			return err
		}
	default:
		return fmt.Errorf("either --private-key or --wallet-rpc must be specified")
	}
	vrbLog.Println("Account:", Wallet.Address())
	return nil
}

// initIndex sets up the indexer client only.
func initIndex() {
	if Index != nil {
		return
	}
	Index = index.NewClient(index.Env(get("indexer")))
	Index.HTTP.Timeout = viper.GetDuration("timeout")
}

// initClients connects every client used by the schema, attestation and
// menu commands.
func initClients(ctx context.Context) error {
	if SP != nil {
		return nil
	}
	if err := initChain(); err != nil {
		return err
	}
	vrbLog.Println("Chain:", Chain)
	backend, err := ethclient.DialContext(ctx, Chain.RPCURL())
	if err != nil {
		return err
	}
	if err := initWallet(ctx, backend); err != nil {
		return err
	}
	initIndex()

	network := lit.NewRPCNetwork(get("lit"))
	network.Timeout = viper.GetDuration("timeout")
	network.DebugRequest = viper.GetBool("debug")
	litChain := get("lit-chain")
	if litChain == "" {
		litChain = Chain.LitChain
	}
	Lit = lit.NewClient(network, Wallet, lit.Config{Chain: litChain})

	SP, err = client.New(mode, client.Config{
		OnChain: onchain.Config{
			Chain:     Chain,
			Backend:   backend,
			Wallet:    Wallet,
			Encrypter: Lit,
			Storage:   Index,
		},
		OffChain: offchain.Config{Signer: Wallet},
	})
	return err
}

// needClients is used as the PreRunE of commands that talk to the chain.
func needClients(cmd *cobra.Command, _ []string) error {
	return initClients(cmd.Context())
}
