package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/cryptonote/crypto"
	"github.com/opd-ai/cryptonote/cryptonight"
	"github.com/opd-ai/cryptonote/difficulty"
	"github.com/opd-ai/cryptonote/entropy"
	"github.com/opd-ai/cryptonote/keccak"
	"github.com/opd-ai/cryptonote/reward"
	"github.com/opd-ai/cryptonote/types"
)

// CLI configuration
type CLIConfig struct {
	op         string
	variant    int
	input      string
	text       string
	secret     string
	public     string
	spend      string
	index      uint64
	difficulty uint64
	amount     uint64
	median     uint64
	size       uint64
	logLevel   string
	seed       int
	help       bool
}

var operations = []string{"fast-hash", "slow-hash", "keygen", "derive", "key-image", "check-hash", "penalty"}

// parseCLIFlags parses args and returns the configuration.
func parseCLIFlags(args []string, output io.Writer) (*CLIConfig, *flag.FlagSet, error) {
	config := &CLIConfig{}
	fs := flag.NewFlagSet("cnutil", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&config.op, "op", "", "Operation: "+strings.Join(operations, ", "))

	// Input
	fs.StringVar(&config.input, "in", "", "Hex-encoded input")
	fs.StringVar(&config.text, "text", "", "UTF-8 input (instead of -in)")
	fs.IntVar(&config.variant, "variant", 0, "Slow hash variant (0 or 1)")

	// Keys
	fs.StringVar(&config.secret, "secret", "", "Hex secret key (derive, key-image)")
	fs.StringVar(&config.public, "pub", "", "Hex public key (derive, key-image)")
	fs.StringVar(&config.spend, "spend", "", "Hex spend public key to derive an output key from (derive)")
	fs.Uint64Var(&config.index, "index", 0, "Output index (derive)")

	// Consensus
	fs.Uint64Var(&config.difficulty, "difficulty", 1, "Difficulty (check-hash)")
	fs.Uint64Var(&config.amount, "amount", 0, "Block reward (penalty)")
	fs.Uint64Var(&config.median, "median", 0, "Median block size (penalty)")
	fs.Uint64Var(&config.size, "size", 0, "Current block size (penalty)")

	// Logging and entropy
	fs.StringVar(&config.logLevel, "log-level", "WARN", "Log level (DEBUG, INFO, WARN, ERROR)")
	fs.IntVar(&config.seed, "seed", -1, "Deterministic entropy seed 0-255 (default: system entropy)")

	fs.BoolVar(&config.help, "help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	return config, fs, nil
}

// printUsage prints the usage information.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "CryptoNote primitive utility")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cnutil -op <operation> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  cnutil -op slow-hash -text \"This is a test\"")
	fmt.Fprintln(w, "  cnutil -op keygen -seed 42")
	fmt.Fprintln(w, "  cnutil -op penalty -amount 10 -median 1000 -size 1500")
}

// validateCLIConfig validates the CLI configuration.
func validateCLIConfig(config *CLIConfig) error {
	known := false
	for _, op := range operations {
		if config.op == op {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown operation %q", config.op)
	}

	if config.input != "" && config.text != "" {
		return fmt.Errorf("-in and -text are mutually exclusive")
	}

	if config.seed < -1 || config.seed > 255 {
		return fmt.Errorf("seed must be between 0 and 255")
	}

	if _, err := logrus.ParseLevel(strings.ToLower(config.logLevel)); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	switch config.op {
	case "slow-hash":
		if config.variant != int(cryptonight.V0) && config.variant != int(cryptonight.V1) {
			return fmt.Errorf("variant must be 0 or 1")
		}
	case "derive", "key-image":
		if config.secret == "" || config.public == "" {
			return fmt.Errorf("%s requires -secret and -pub", config.op)
		}
	case "check-hash":
		if config.difficulty == 0 {
			return fmt.Errorf("difficulty must be positive")
		}
	}
	return nil
}

func (c *CLIConfig) rng() io.Reader {
	if c.seed < 0 {
		return entropy.System()
	}
	return entropy.NewDeterministic(byte(c.seed))
}

func (c *CLIConfig) data() ([]byte, error) {
	if c.text != "" {
		return []byte(c.text), nil
	}
	b, err := hex.DecodeString(c.input)
	if err != nil {
		return nil, fmt.Errorf("decode -in: %w", err)
	}
	return b, nil
}

func decode32(name, s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("decode %s: %w", name, err)
	}
	if len(b) != len(out) {
		return out, fmt.Errorf("%s must be 32 bytes, got %d", name, len(b))
	}
	copy(out[:], b)
	return out, nil
}

// run executes the configured operation and writes its result to w.
func run(config *CLIConfig, w io.Writer) error {
	switch config.op {
	case "fast-hash":
		data, err := config.data()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, keccak.Fast(data))

	case "slow-hash":
		data, err := config.data()
		if err != nil {
			return err
		}
		h, err := cryptonight.Sum(data, cryptonight.Variant(config.variant), false)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, h)

	case "keygen":
		kp, err := crypto.GenerateKeyPair(config.rng())
		if err != nil {
			return err
		}
		defer crypto.WipeKeyPair(kp)
		fmt.Fprintf(w, "public %s\nsecret %s\n", kp.Public, hex.EncodeToString(kp.Secret[:]))

	case "derive":
		return runDerive(config, w)

	case "key-image":
		sec, err := decode32("-secret", config.secret)
		if err != nil {
			return err
		}
		pub, err := decode32("-pub", config.public)
		if err != nil {
			return err
		}
		img, err := crypto.GenerateKeyImage(crypto.PublicKey(pub), crypto.SecretKey(sec))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, img)

	case "check-hash":
		h, err := decode32("-in", config.input)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, difficulty.CheckHash(types.Hash(h), config.difficulty))

	case "penalty":
		fmt.Fprintln(w, reward.Penalized(config.amount, config.median, config.size))

	default:
		return errors.New("no operation selected")
	}
	return nil
}

func runDerive(config *CLIConfig, w io.Writer) error {
	sec, err := decode32("-secret", config.secret)
	if err != nil {
		return err
	}
	pub, err := decode32("-pub", config.public)
	if err != nil {
		return err
	}
	d, err := crypto.GenerateKeyDerivation(crypto.PublicKey(pub), crypto.SecretKey(sec))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "derivation %s\nscalar %s\n", d, crypto.DerivationToScalar(d, config.index))

	if config.spend == "" {
		return nil
	}
	spend, err := decode32("-spend", config.spend)
	if err != nil {
		return err
	}
	out, err := crypto.DerivePublicKey(d, config.index, crypto.PublicKey(spend))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "output %s\n", out)
	return nil
}

func main() {
	cliConfig, fs, err := parseCLIFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if cliConfig.help {
		printUsage(os.Stdout, fs)
		os.Exit(0)
	}

	if err := validateCLIConfig(cliConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Use -help for usage information.\n")
		os.Exit(1)
	}

	level, _ := logrus.ParseLevel(strings.ToLower(cliConfig.logLevel))
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	if err := run(cliConfig, os.Stdout); err != nil {
		logrus.WithFields(logrus.Fields{
			"op":    cliConfig.op,
			"error": err.Error(),
		}).Error("Operation failed")
		os.Exit(1)
	}
}
