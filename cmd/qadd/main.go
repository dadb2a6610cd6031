package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jaskrrish/Go-QAdd/internal/config"
	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
	qaddcore "github.com/jaskrrish/Go-QAdd/internal/qadd"
	"github.com/jaskrrish/Go-QAdd/internal/qadd/quantum"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "qadd",
		Usage: "Add integers with a quantum Fourier transform adder",
		Flags: config.BackendFlags(),
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Build, run and decode the adder for two non-negative integers",
				ArgsUsage: "A B",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "shots",
						Usage:   "Number of circuit repetitions",
						Value:   qadd.DefaultShots,
						EnvVars: []string{"QADD_SHOTS"},
					},
				},
				Action: addAction,
			},
			{
				Name:      "circuit",
				Usage:     "Print the adder circuit as OpenQASM 2.0",
				ArgsUsage: "A B",
				Action:    circuitAction,
			},
			{
				Name:      "decode",
				Usage:     "Decode measured bit strings into integers",
				ArgsUsage: "BITS...",
				Action:    decodeAction,
			},
		},
	}
}

func operands(c *cli.Context) (int64, int64, error) {
	if c.NArg() != 2 {
		return 0, 0, fmt.Errorf("expected two integers, got %d arguments", c.NArg())
	}

	a, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("first operand: %w", err)
	}
	b, err := strconv.ParseInt(c.Args().Get(1), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("second operand: %w", err)
	}

	return a, b, nil
}

func addAction(c *cli.Context) error {
	a, b, err := operands(c)
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(c.String(config.FlagLogLevel))
	if err != nil {
		return err
	}
	defer logger.Sync()

	backend, err := config.NewBackend(c.Context, config.BackendConfigFromContext(c))
	if err != nil {
		return err
	}

	result, err := qaddcore.Add(c.Context, backend, a, b, c.Int("shots"))
	if err != nil {
		return err
	}

	logger.Debug("adder run",
		zap.String("backend", backend.Name()),
		zap.Int("qubits", result.Circuit.NumQubits()),
		zap.Int("gates", result.Circuit.Len()))

	fmt.Fprintln(c.App.Writer, result.Summary())

	return result.Verify()
}

func circuitAction(c *cli.Context) error {
	a, b, err := operands(c)
	if err != nil {
		return err
	}

	circuit, err := qaddcore.BuildAdder(a, b)
	if err != nil {
		return err
	}

	fmt.Fprint(c.App.Writer, quantum.ToQASM(circuit))
	return nil
}

func decodeAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("expected at least one bit string")
	}

	for _, bits := range c.Args().Slice() {
		value, err := qaddcore.DecodeBitString(bits)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%s -> %s = %d\n", bits, qaddcore.ReverseBits(qaddcore.CompactBits(bits)), value)
	}

	return nil
}
