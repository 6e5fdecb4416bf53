package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/kr/pretty"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/vulcanize/eth-blockinfo/address"
	"github.com/vulcanize/eth-blockinfo/block"
	"github.com/vulcanize/eth-blockinfo/calldata"
	"github.com/vulcanize/eth-blockinfo/shared"
	blockinfo_tx "github.com/vulcanize/eth-blockinfo/tx"
)

var (
	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Logging verbosity (trace, debug, info, warn, error)",
		Value:   "info",
		EnvVars: []string{"ETHBLOCKINFO_LOG_LEVEL"},
	}
	cidFlag = &cli.BoolFlag{
		Name:    "cid",
		Usage:   "Print content identifiers of the header and block encodings",
		EnvVars: []string{"ETHBLOCKINFO_CID"},
	}
	printDocFlag = &cli.BoolFlag{
		Name:    "print-doc",
		Usage:   "Print the parsed block document before the computed values",
		Value:   true,
		EnvVars: []string{"ETHBLOCKINFO_PRINT_DOC"},
	}
	secretKeyFlag = &cli.StringFlag{
		Name:  "secret-key",
		Usage: "Derive the address from a secp256k1 secret key instead of a signature",
	}
	dumpFlag = &cli.BoolFlag{
		Name:  "dump",
		Usage: "Pretty print the decoded transaction",
	}
)

func main() {
	customFormatter := new(prefixed.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)
	log.SetOutput(os.Stderr)

	app := newApp(os.Stdin, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	app := &cli.App{}
	app.Name = "ethblockinfo"
	app.Usage = "Canonicalize Ethereum block documents, compute their encodings and hashes, and verify them"
	app.Reader = in
	app.Writer = out
	app.Flags = []cli.Flag{logLevelFlag, cidFlag, printDocFlag}
	app.Before = func(c *cli.Context) error {
		level, err := log.ParseLevel(c.String(logLevelFlag.Name))
		if err != nil {
			return errors.Wrap(err, "invalid log level")
		}
		log.SetLevel(level)
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Name:      "block",
			Usage:     "Compute the header RLP, block RLP and block hash of a JSON block document and verify them",
			ArgsUsage: "[block.json | -]",
			Action:    blockAction,
		},
		{
			Name:      "tx",
			Usage:     "Print the hash, signing hash and sender of a transaction",
			ArgsUsage: "<raw-hex | tx.json>",
			Flags:     []cli.Flag{dumpFlag},
			Action:    txAction,
		},
		{
			Name:      "create",
			Usage:     "Compute the address of a contract created with CREATE",
			ArgsUsage: "<address> <nonce>",
			Action:    createAction,
		},
		{
			Name:      "create2",
			Usage:     "Compute the address of a contract created with CREATE2",
			ArgsUsage: "<address> <salt> <init-code>",
			Action:    create2Action,
		},
		{
			Name:      "address",
			Usage:     "Derive an address from a secret key or recover it from a signature",
			ArgsUsage: "<hash> <v> <r> <s>",
			Flags:     []cli.Flag{secretKeyFlag},
			Action:    addressAction,
		},
		{
			Name:      "calldata",
			Usage:     "Count the zero and non-zero bytes of transaction input data and price them",
			ArgsUsage: "<hex>",
			Action:    calldataAction,
		},
	}
	return app
}

func blockAction(c *cli.Context) error {
	if c.NArg() > 1 {
		return errors.New("expected at most one block document")
	}
	var (
		src  []byte
		err  error
		path = c.Args().First()
	)
	if path == "" || path == "-" {
		src, err = ioutil.ReadAll(c.App.Reader)
	} else {
		src, err = ioutil.ReadFile(path)
	}
	if err != nil {
		return errors.Wrap(err, "could not read block document")
	}
	doc, err := shared.DecodeDocumentBytes(src)
	if err != nil {
		return err
	}
	res, err := block.Process(doc)
	if err != nil {
		return errors.Wrap(err, "could not process block document")
	}
	log.WithFields(log.Fields{
		"hash":            res.Hash.Hex(),
		"reconstructable": res.Reconstructable(),
	}).Debug("processed block document")
	return block.WriteReport(c.App.Writer, res, block.ReportOptions{
		PrintDocument: c.Bool(printDocFlag.Name),
		CIDs:          c.Bool(cidFlag.Name),
	})
}

func txAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected a raw transaction or a transaction file")
	}
	arg := c.Args().First()
	var t blockinfo_tx.Tx
	if src, err := ioutil.ReadFile(arg); err == nil {
		doc, err := shared.DecodeDocumentBytes(src)
		if err != nil {
			return err
		}
		t, err = blockinfo_tx.EncodeTx(arg, doc)
		if err != nil {
			return err
		}
	} else {
		raw, err := shared.ParseHex(arg)
		if err != nil {
			return errors.Wrapf(err, "%s is neither a readable file nor hex", arg)
		}
		t = raw
	}
	info, err := blockinfo_tx.Inspect(t)
	if err != nil {
		return err
	}
	if c.Bool(dumpFlag.Name) {
		fmt.Fprintln(c.App.Writer, pretty.Sprint(info.Tx))
	}
	fmt.Fprintf(c.App.Writer, "tx rlp = %x\n", info.Raw)
	fmt.Fprintf(c.App.Writer, "tx hash = %x\n", info.Hash)
	fmt.Fprintf(c.App.Writer, "signing hash = %x\n", info.SigHash)
	fmt.Fprintf(c.App.Writer, "sender = %s\n", lowerHex(info.Sender))
	return nil
}

func createAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("expected an address and a nonce")
	}
	sender, err := parseAddress(c.Args().Get(0))
	if err != nil {
		return err
	}
	nonce, err := shared.ParseBig(c.Args().Get(1))
	if err != nil {
		return errors.Wrap(err, "invalid nonce")
	}
	if !nonce.IsUint64() {
		return errors.Errorf("nonce %s does not fit 64 bits", nonce)
	}
	fmt.Fprintln(c.App.Writer, lowerHex(address.Create(sender, nonce.Uint64())))
	return nil
}

func create2Action(c *cli.Context) error {
	if c.NArg() != 3 {
		return errors.New("expected an address, a salt and init code")
	}
	sender, err := parseAddress(c.Args().Get(0))
	if err != nil {
		return err
	}
	salt, err := shared.ParseHex(c.Args().Get(1))
	if err != nil {
		return errors.Wrap(err, "invalid salt")
	}
	initCode, err := shared.ParseHex(c.Args().Get(2))
	if err != nil {
		return errors.Wrap(err, "invalid init code")
	}
	addr, err := address.Create2(sender, salt, initCode)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, lowerHex(addr))
	return nil
}

func addressAction(c *cli.Context) error {
	if sk := c.String(secretKeyFlag.Name); sk != "" {
		key, err := shared.ParseHex(sk)
		if err != nil {
			return errors.Wrap(err, "invalid secret key")
		}
		addr, err := address.FromSecretKey(key)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, lowerHex(addr))
		return nil
	}
	if c.NArg() != 4 {
		return errors.New("expected a hash, v, r and s, or --secret-key")
	}
	hash, err := shared.ParseHex(c.Args().Get(0))
	if err != nil {
		return errors.Wrap(err, "invalid hash")
	}
	v, err := shared.ParseBig(c.Args().Get(1))
	if err != nil {
		return errors.Wrap(err, "invalid v")
	}
	r, err := shared.ParseBig(c.Args().Get(2))
	if err != nil {
		return errors.Wrap(err, "invalid r")
	}
	s, err := shared.ParseBig(c.Args().Get(3))
	if err != nil {
		return errors.Wrap(err, "invalid s")
	}
	addr, err := address.FromSignature(hash, v, r, s)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, lowerHex(addr))
	return nil
}

func calldataAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected calldata hex")
	}
	data, err := shared.ParseHex(c.Args().First())
	if err != nil {
		return errors.Wrap(err, "invalid calldata")
	}
	cost := calldata.Price(data)
	fmt.Fprintf(c.App.Writer, "Zero bytes = %d\n", cost.ZeroBytes)
	fmt.Fprintf(c.App.Writer, "Non zero bytes = %d\n", cost.NonZeroBytes)
	fmt.Fprintf(c.App.Writer, "Total cost = %d\n", cost.Gas)
	return nil
}

func parseAddress(s string) (common.Address, error) {
	b, err := shared.ParseHex(s)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "invalid address")
	}
	if len(b) != common.AddressLength {
		return common.Address{}, errors.Errorf("address %s is %d bytes, expected %d", s, len(b), common.AddressLength)
	}
	return common.BytesToAddress(b), nil
}

func lowerHex(addr common.Address) string {
	return strings.ToLower(hexutil.Encode(addr.Bytes()))
}
