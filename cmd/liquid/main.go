// liquid is the developer tool of the runtime: it derives function
// selectors, encodes and decodes ABI shapes, and runs single invocations of
// the bundled counter contract against an in-memory or LevelDB store.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/ethan75/liquid/abi"
	"github.com/ethan75/liquid/env"
	"github.com/ethan75/liquid/examples/counter"
	"github.com/ethan75/liquid/lang"
	"github.com/ethan75/liquid/params"
	"github.com/ethan75/liquid/primitives"
	"github.com/ethan75/liquid/storage"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	familyFlag = &cli.StringFlag{
		Name:  "family",
		Usage: "Signature hash family (keccak256 or sm3)",
	}
	datadirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "LevelDB directory for contract storage (in-memory if unset)",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: -1,
	}
	typesFlag = &cli.StringFlag{
		Name:  "types",
		Usage: "Comma-separated parameter type names, e.g. u32,String",
	}
	deployFlag = &cli.BoolFlag{
		Name:  "deploy",
		Usage: "Run the deploy entry instead of call dispatch",
	}
)

func main() {
	app := &cli.App{
		Name:  "liquid",
		Usage: "liquid contract runtime tool",
		Flags: []cli.Flag{configFlag, familyFlag, datadirFlag, verbosityFlag},
		Commands: []*cli.Command{
			{
				Name:      "selector",
				Usage:     "Derive the selector of a function signature",
				ArgsUsage: "<name> [paramType...]",
				Action:    deriveSelector,
			},
			{
				Name:      "encode",
				Usage:     "ABI-encode positional values against a shape",
				ArgsUsage: "<value...>",
				Flags:     []cli.Flag{typesFlag},
				Action:    encodeValues,
			},
			{
				Name:      "decode",
				Usage:     "ABI-decode hex data against a shape",
				ArgsUsage: "<hexdata>",
				Flags:     []cli.Flag{typesFlag},
				Action:    decodeValues,
			},
			{
				Name:   "hashtype",
				Usage:  "Print the build-mode hash discriminator",
				Action: hashType,
			},
			{
				Name:      "run",
				Usage:     "Execute one invocation of the bundled counter contract",
				ArgsUsage: "<hex calldata>",
				Flags:     []cli.Flag{deployFlag},
				Action:    runContract,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig merges the config file, if any, with command-line overrides.
func loadConfig(ctx *cli.Context) (params.Config, error) {
	cfg := params.DefaultConfig()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = params.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if fam := ctx.String(familyFlag.Name); fam != "" {
		cfg.HashFamily = fam
	}
	if dir := ctx.String(datadirFlag.Name); dir != "" {
		cfg.DataDir = dir
	}
	if v := ctx.Int(verbosityFlag.Name); v >= 0 {
		cfg.Verbosity = v
	}
	if _, err := cfg.Family(); err != nil {
		return cfg, err
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(
		os.Stderr, log.FromLegacyLevel(cfg.Verbosity), false)))
	return cfg, nil
}

func splitTypes(ctx *cli.Context) []string {
	raw := strings.TrimSpace(ctx.String(typesFlag.Name))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func deriveSelector(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	family, _ := cfg.Family()
	if ctx.NArg() < 1 {
		return fmt.Errorf("need a function name")
	}
	name := ctx.Args().First()
	types := make([]string, 0, ctx.NArg()-1)
	for _, raw := range ctx.Args().Tail() {
		canonical, err := abi.Canonical(raw)
		if err != nil {
			return err
		}
		types = append(types, canonical)
	}
	sel := primitives.NewSelector(family, name, types)
	fmt.Printf("%s  %s  (%s)\n", sel.Hex(), primitives.Signature(name, types), family)
	return nil
}

func encodeValues(ctx *cli.Context) error {
	if _, err := loadConfig(ctx); err != nil {
		return err
	}
	types := splitTypes(ctx)
	if ctx.NArg() != len(types) {
		return fmt.Errorf("shape has %d types but %d values given", len(types), ctx.NArg())
	}
	shape, err := abi.NewShape(types...)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(types))
	for i, raw := range ctx.Args().Slice() {
		if values[i], err = abi.ParseValue(types[i], raw); err != nil {
			return fmt.Errorf("value %d: %v", i, err)
		}
	}
	data, err := shape.Pack(values...)
	if err != nil {
		return err
	}
	fmt.Printf("0x%x\n", data)
	return nil
}

func decodeValues(ctx *cli.Context) error {
	if _, err := loadConfig(ctx); err != nil {
		return err
	}
	shape, err := abi.NewShape(splitTypes(ctx)...)
	if err != nil {
		return err
	}
	if ctx.NArg() != 1 {
		return fmt.Errorf("need exactly one hex data argument")
	}
	data, err := parseHex(ctx.Args().First())
	if err != nil {
		return err
	}
	values, err := shape.Unpack(data)
	if err != nil {
		return err
	}
	for i, v := range values {
		fmt.Printf("%d: %v\n", i, v)
	}
	return nil
}

func hashType(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	family, _ := cfg.Family()
	fmt.Println(family.Tag())
	return nil
}

func runContract(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	family, _ := cfg.Family()
	if ctx.NArg() != 1 {
		return fmt.Errorf("need exactly one hex calldata argument")
	}
	input, err := parseHex(ctx.Args().First())
	if err != nil {
		return err
	}

	var db storage.Database
	if cfg.DataDir != "" {
		if db, err = storage.NewLevelDB(cfg.DataDir); err != nil {
			return err
		}
		defer db.Close()
	} else {
		db = storage.NewMemoryDatabase()
	}

	state := storage.NewStore(family, db)
	table, err := counter.Contract(family, state)
	if err != nil {
		return err
	}
	rec := env.NewRecorder(input)
	dispatcher := lang.NewDispatcher(table, rec, state)

	mode := env.ModeCall
	if ctx.Bool(deployFlag.Name) {
		mode = env.ModeDeploy
	}
	dispatcher.Execute(mode)

	switch {
	case rec.Reverted:
		return fmt.Errorf("reverted: %s", rec.Reason)
	case rec.Finishes > 0:
		fmt.Printf("0x%x\n", rec.Output)
	default:
		fmt.Println("ok")
	}
	return nil
}

func parseHex(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	return hex.DecodeString(s)
}
