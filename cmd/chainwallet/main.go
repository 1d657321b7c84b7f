// chainwallet is a command-line front end for the wallet engine: recover a
// wallet from a mnemonic, inspect funds in a block0, build conversion
// transactions and cast votes.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/rmourey26/chain-wallet-libs/internal/log"
	"github.com/rmourey26/chain-wallet-libs/pkg/chain"
	"github.com/rmourey26/chain-wallet-libs/pkg/types"
	"github.com/rmourey26/chain-wallet-libs/pkg/wallet"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Global flags before the subcommand.
	level := "info"
	args := os.Args[1:]
	for len(args) > 0 {
		switch {
		case args[0] == "--log-level" && len(args) > 1:
			level = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--log-level="):
			level = args[0][len("--log-level="):]
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	log.Init(level, false)

	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "recover":
		cmdRecover(cmdArgs)
	case "funds":
		cmdFunds(cmdArgs)
	case "convert":
		cmdConvert(cmdArgs)
	case "vote":
		cmdVote(cmdArgs)
	case "genesis":
		cmdGenesis(cmdArgs)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `chainwallet - wallet recovery, conversion and voting

Usage:
  chainwallet [--log-level LEVEL] <command> [args]

Commands:
  recover                                   recover a wallet, print its account ID
  funds <block0file>                        scan a block0 for the wallet's funds
  convert <block0file>                      build conversion transactions (hex on stdout)
  vote <block0file> <planid> <index> <options> <choice>
                                            build a vote-cast transaction (hex on stdout)
  genesis <outfile> [--testing] [--utxos N] [--value V]
                                            write a demo block0 funding the wallet

The mnemonic and optional passphrase are prompted without echo.
`)
}

// promptWallet reads the mnemonic and passphrase without echo and recovers
// the wallet.
func promptWallet() *wallet.Wallet {
	fmt.Fprint(os.Stderr, "mnemonic: ")
	mnemonic, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.CLI.Fatal().Err(err).Msg("read mnemonic")
	}

	fmt.Fprint(os.Stderr, "passphrase (empty for none): ")
	passphrase, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.CLI.Fatal().Err(err).Msg("read passphrase")
	}

	w, err := wallet.Recover(strings.TrimSpace(string(mnemonic)), passphrase)
	if err != nil {
		log.CLI.Fatal().Err(err).Msg("recover wallet")
	}
	return w
}

func cmdRecover(args []string) {
	if len(args) != 0 {
		usage()
		os.Exit(1)
	}
	w := promptWallet()
	defer w.Close()

	id := w.ID()
	fmt.Printf("account id: %s\n", id)
	fmt.Printf("production: %s\n", id.Bech32(types.ProductionAccountHRP))
	fmt.Printf("testing:    %s\n", id.Bech32(types.TestingAccountHRP))
}

func cmdFunds(args []string) {
	if len(args) != 1 {
		usage()
		os.Exit(1)
	}
	block0, err := os.ReadFile(args[0])
	if err != nil {
		log.CLI.Fatal().Err(err).Msg("read block0")
	}

	w := promptWallet()
	defer w.Close()

	settings, err := w.RetrieveFunds(block0)
	if err != nil {
		log.CLI.Fatal().Err(err).Msg("retrieve funds")
	}

	log.Wallet.Info().
		Str("network", settings.Discrimination.String()).
		Str("block0", settings.Block0Hash.String()).
		Msg("scanned block0")

	utxos := w.UTXOs()
	fmt.Printf("utxo entries: %d\n", len(utxos))
	for _, u := range utxos {
		fmt.Printf("  %s  %s  %d\n", u.Pointer, u.Address.Bech32(settings.AddressHRP()), u.Value)
	}
	fmt.Printf("account value: %d\n", w.State().Value)
	fmt.Printf("total value:   %d\n", w.TotalValue())
}

func cmdConvert(args []string) {
	if len(args) != 1 {
		usage()
		os.Exit(1)
	}
	block0, err := os.ReadFile(args[0])
	if err != nil {
		log.CLI.Fatal().Err(err).Msg("read block0")
	}

	w := promptWallet()
	defer w.Close()

	settings, err := w.RetrieveFunds(block0)
	if err != nil {
		log.CLI.Fatal().Err(err).Msg("retrieve funds")
	}

	conv, err := w.Convert(settings)
	if err != nil {
		log.CLI.Fatal().Err(err).Msg("convert funds")
	}

	for i := 0; i < conv.Len(); i++ {
		raw, err := conv.Transaction(i)
		if err != nil {
			log.CLI.Fatal().Err(err).Msg("conversion transaction")
		}
		fmt.Println(hex.EncodeToString(raw))
	}

	dustValue, dustCount := conv.IgnoredValue()
	log.Wallet.Info().
		Int("transactions", conv.Len()).
		Uint64("dust_value", dustValue.U64()).
		Int("dust_count", dustCount).
		Msg("conversion built")
}

func cmdVote(args []string) {
	if len(args) != 5 {
		usage()
		os.Exit(1)
	}
	block0, err := os.ReadFile(args[0])
	if err != nil {
		log.CLI.Fatal().Err(err).Msg("read block0")
	}
	planID, err := types.HexToHash(args[1])
	if err != nil {
		log.CLI.Fatal().Err(err).Msg("parse vote plan id")
	}
	index := parseU8(args[2], "proposal index")
	options := parseU8(args[3], "options")
	choice := parseU8(args[4], "choice")

	w := promptWallet()
	defer w.Close()

	settings, err := w.RetrieveFunds(block0)
	if err != nil {
		log.CLI.Fatal().Err(err).Msg("retrieve funds")
	}

	plan, err := wallet.NewVotePlan(planID, uint8(wallet.PayloadPublic))
	if err != nil {
		log.CLI.Fatal().Err(err).Msg("vote plan")
	}
	proposal, err := wallet.NewProposal(index, options)
	if err != nil {
		log.CLI.Fatal().Err(err).Msg("proposal")
	}

	raw, err := w.Vote(settings, plan, proposal, choice)
	if err != nil {
		log.CLI.Fatal().Err(err).Msg("cast vote")
	}
	fmt.Println(hex.EncodeToString(raw))

	log.Wallet.Info().
		Str("plan", planID.String()).
		Uint8("proposal", index).
		Uint8("choice", choice).
		Uint32("counter", w.Counter()).
		Msg("vote built; refresh account state after submission")
}

// cmdGenesis writes a demo block0 funding the prompted wallet. Intended for
// trying the recover/funds/convert flow against a local node or tests.
func cmdGenesis(args []string) {
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}
	outfile := args[0]
	args = args[1:]

	discrim := chain.Production
	utxoCount := 5
	value := uint64(100_000)
	for len(args) > 0 {
		switch {
		case args[0] == "--testing":
			discrim = chain.Testing
			args = args[1:]
		case args[0] == "--utxos" && len(args) > 1:
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				log.CLI.Fatal().Str("arg", args[1]).Msg("invalid utxo count")
			}
			utxoCount = n
			args = args[2:]
		case args[0] == "--value" && len(args) > 1:
			v, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				log.CLI.Fatal().Str("arg", args[1]).Msg("invalid value")
			}
			value = v
			args = args[2:]
		default:
			usage()
			os.Exit(1)
		}
	}

	w := promptWallet()
	defer w.Close()

	builder := chain.NewBlock0Builder(discrim, 0).
		SetFees(chain.LinearFee{Constant: 10, Coefficient: 5, Certificate: 100})

	// Fund the wallet's first legacy addresses so the scanner has
	// something to find; a synthetic source fragment id per entry keeps
	// the pointers unique.
	addrs := w.SpendAddresses()
	if len(addrs) > utxoCount {
		addrs = addrs[:utxoCount]
	}
	for i, addr := range addrs {
		var fragID types.Hash
		fragID[0] = byte(i + 1)
		builder.AddUTXOFund(types.UTXOPointer{FragmentID: fragID, Index: 0}, addr, types.Value(value))
	}
	builder.AddAccountFund(w.ID(), types.Value(value))

	if err := os.WriteFile(outfile, builder.Encode(), 0o600); err != nil {
		log.CLI.Fatal().Err(err).Msg("write block0")
	}
	log.CLI.Info().
		Str("file", outfile).
		Int("utxos", len(addrs)).
		Uint64("value", value).
		Msg("demo block0 written")
}

func parseU8(s, what string) uint8 {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		log.CLI.Fatal().Str("arg", s).Msgf("invalid %s", what)
	}
	return uint8(v)
}
