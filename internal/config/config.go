// Package config turns command-line flags and environment variables into backends and loggers.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
	"github.com/jaskrrish/Go-QAdd/internal/qadd/quantum"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Flag names shared by the binaries
const (
	FlagBackend       = "backend"
	FlagNoise         = "noise"
	FlagSeed          = "seed"
	FlagLogLevel      = "log-level"
	FlagQiskitAPIKey  = "qiskit-api-key"
	FlagQiskitBaseURL = "qiskit-base-url"
	FlagQiskitDevice  = "qiskit-backend"
	FlagQiskitWait    = "qiskit-max-wait"
)

// BackendFlags returns the flags that select and configure the execution backend
func BackendFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagBackend,
			Usage:   "Execution backend: simulator or qiskit",
			Value:   string(qadd.BackendSimulator),
			EnvVars: []string{"QADD_BACKEND"},
		},
		&cli.Float64Flag{
			Name:    FlagNoise,
			Usage:   "Per-bit readout noise for the simulator (0 disables noise)",
			Value:   0,
			EnvVars: []string{"QADD_NOISE"},
		},
		&cli.Int64Flag{
			Name:    FlagSeed,
			Usage:   "Seed for the simulator sampler (0 seeds from the clock)",
			Value:   0,
			EnvVars: []string{"QADD_SEED"},
		},
		&cli.StringFlag{
			Name:    FlagLogLevel,
			Usage:   "Log level: debug, info, warn or error",
			Value:   "info",
			EnvVars: []string{"QADD_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    FlagQiskitAPIKey,
			Usage:   "IBM Quantum API key",
			EnvVars: []string{"QISKIT_API_KEY"},
		},
		&cli.StringFlag{
			Name:    FlagQiskitBaseURL,
			Usage:   "IBM Quantum API base URL",
			Value:   quantum.DefaultQiskitURL,
			EnvVars: []string{"QISKIT_BASE_URL"},
		},
		&cli.StringFlag{
			Name:    FlagQiskitDevice,
			Usage:   "IBM Quantum device name",
			Value:   "ibmq_qasm_simulator",
			EnvVars: []string{"QISKIT_BACKEND"},
		},
		&cli.DurationFlag{
			Name:    FlagQiskitWait,
			Usage:   "Maximum time to wait for an IBM Quantum job",
			Value:   10 * time.Minute,
			EnvVars: []string{"QISKIT_MAX_WAIT"},
		},
	}
}

// BackendConfig describes which execution backend to build
type BackendConfig struct {
	Type          qadd.BackendType
	NoiseLevel    float64
	Seed          int64
	QiskitAPIKey  string
	QiskitBaseURL string
	QiskitDevice  string
	QiskitMaxWait time.Duration
}

// BackendConfigFromContext reads the backend flags
func BackendConfigFromContext(c *cli.Context) BackendConfig {
	return BackendConfig{
		Type:          qadd.BackendType(c.String(FlagBackend)),
		NoiseLevel:    c.Float64(FlagNoise),
		Seed:          c.Int64(FlagSeed),
		QiskitAPIKey:  c.String(FlagQiskitAPIKey),
		QiskitBaseURL: c.String(FlagQiskitBaseURL),
		QiskitDevice:  c.String(FlagQiskitDevice),
		QiskitMaxWait: c.Duration(FlagQiskitWait),
	}
}

// NewBackend builds the configured execution backend
func NewBackend(ctx context.Context, cfg BackendConfig) (quantum.Backend, error) {
	switch cfg.Type {
	case qadd.BackendSimulator, "":
		if cfg.NoiseLevel < 0 || cfg.NoiseLevel > 1 {
			return nil, qadd.NewError(qadd.KindInvalidInput, "noise level must be within [0, 1], got %g", cfg.NoiseLevel)
		}
		backend := quantum.NewSimulatorBackend(cfg.NoiseLevel > 0, cfg.NoiseLevel)
		if cfg.Seed != 0 {
			backend.SetSeed(cfg.Seed)
		}
		return backend, nil

	case qadd.BackendQiskit:
		client, err := quantum.NewQiskitClient(ctx, &quantum.QiskitConfig{
			APIKey:      cfg.QiskitAPIKey,
			BaseURL:     cfg.QiskitBaseURL,
			BackendName: cfg.QiskitDevice,
		})
		if err != nil {
			return nil, fmt.Errorf("qiskit backend: %w", err)
		}
		return quantum.NewQiskitBackend(client, cfg.QiskitDevice, cfg.QiskitMaxWait), nil

	default:
		return nil, qadd.NewError(qadd.KindInvalidInput, "unknown backend %q", cfg.Type)
	}
}

// NewLogger builds a production zap logger at the given level
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
