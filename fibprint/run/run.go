// Package run implements the fibprint command in a testable way.
package run

import (
	"errors"
	"fmt"
	"io"

	"github.com/alexflint/go-arg"
)

// Interfaces - Public

// FileSystem interface for mocking.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
}

// Structs - Private

type checkCmd struct {
	Limit *int `arg:"-l,--limit" help:"compare fast and linear Fibonacci for F(0) through F(limit)"`
}

// cliArgs defines the command-line arguments for fibprint.
type cliArgs struct {
	Config  string     `arg:"--config"          help:"TOML config file (defaults to fibprint.toml when present)"`
	NoColor bool       `arg:"--no-color"        help:"disable colored output"`
	Print   *printCmd  `arg:"subcommand:print"  help:"label a range of Fibonacci numbers (the default command)"`
	Primes  *primesCmd `arg:"subcommand:primes" help:"list the primes from 0 through a limit"`
	Check   *checkCmd  `arg:"subcommand:check"  help:"self-check the Fibonacci engine and the classification rules"`
}

type primesCmd struct {
	Limit *int `arg:"-l,--limit" help:"largest number to test"`
}

type printCmd struct {
	Count   *int  `arg:"-n,--count"   help:"number of indices to label"`
	Start   *int  `arg:"-s,--start"   help:"first index"`
	Verbose *bool `arg:"-v,--verbose" help:"print one line per index with its value"`
}

// Functions - Public

// Run executes fibprint. It takes command-line arguments (program name first), an environment variable getter, a
// FileSystem for reading the config file, and the writer results go to. Settings are layered: defaults, then the
// config file, then the environment, then flags.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, stdout io.Writer) error {
	parsed, parser, err := parseArgs(args)
	if errors.Is(err, arg.ErrHelp) {
		parser.WriteHelp(stdout)

		return nil
	}

	if err != nil {
		return err
	}

	configPath := parsed.Config
	if configPath == "" {
		configPath = getEnv(envConfig)
	}

	cfg, err := loadConfig(configPath, getEnv, fileSys)
	if err != nil {
		return err
	}

	cfg = applyFlags(cfg, parsed)
	colors := newPalette(cfg.NoColor)

	switch {
	case parsed.Primes != nil:
		return printPrimes(stdout, cfg.PrimeLimit)
	case parsed.Check != nil:
		return selfCheck(stdout, cfg.CheckLimit, colors)
	default:
		return printLabels(stdout, cfg.Start, cfg.Count, cfg.Verbose)
	}
}

// Functions - Private

// applyFlags overrides cfg with every flag that was actually given.
func applyFlags(cfg Config, parsed cliArgs) Config {
	if parsed.NoColor {
		cfg.NoColor = true
	}

	if cmd := parsed.Print; cmd != nil {
		if cmd.Count != nil {
			cfg.Count = *cmd.Count
		}

		if cmd.Start != nil {
			cfg.Start = *cmd.Start
		}

		if cmd.Verbose != nil {
			cfg.Verbose = *cmd.Verbose
		}
	}

	if parsed.Primes != nil && parsed.Primes.Limit != nil {
		cfg.PrimeLimit = *parsed.Primes.Limit
	}

	if parsed.Check != nil && parsed.Check.Limit != nil {
		cfg.CheckLimit = *parsed.Check.Limit
	}

	return cfg
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, *arg.Parser, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "fibprint"}, &parsed)
	if err != nil {
		return cliArgs{}, nil, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if errors.Is(err, arg.ErrHelp) {
		return cliArgs{}, parser, err
	}

	if err != nil {
		return cliArgs{}, nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, parser, nil
}
