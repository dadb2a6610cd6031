package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jaskrrish/Go-QAdd/internal/models/qadd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"qadd", "--log-level", "error", "--seed", "3"}, args...))
	return out.String(), err
}

func TestAddCommand(t *testing.T) {
	out, err := run(t, "add", "--shots", "8", "50", "50")
	require.NoError(t, err)
	assert.Equal(t, "Results: 50 + 50 = [001100100] = [100]\n", out)
}

func TestAddCommandRejectsNegative(t *testing.T) {
	_, err := run(t, "add", "-3", "4")
	require.Error(t, err)

	_, err = run(t, "add", "1")
	assert.Error(t, err)
}

func TestAddCommandReportsMismatch(t *testing.T) {
	// full readout noise flips every bit, so the decoded sum is wrong
	_, err := run(t, "--noise", "1", "add", "--shots", "4", "1", "1")
	assert.ErrorIs(t, err, qadd.ErrDecodeMismatch)
}

func TestCircuitCommand(t *testing.T) {
	out, err := run(t, "circuit", "3", "2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "OPENQASM 2.0;\n"))
	assert.Contains(t, out, "qreg q[9];")
	assert.Contains(t, out, "creg c[5];")
	assert.Contains(t, out, "measure q[4] -> c[4];")
}

func TestDecodeCommand(t *testing.T) {
	out, err := run(t, "decode", "001001100", "0001")
	require.NoError(t, err)
	assert.Equal(t, "001001100 -> 001100100 = 100\n0001 -> 1000 = 8\n", out)

	out, err = run(t, "decode", "001 001100")
	require.NoError(t, err)
	assert.Equal(t, "001 001100 -> 001100100 = 100\n", out)

	_, err = run(t, "decode", "01x")
	assert.ErrorIs(t, err, qadd.ErrInvalidInput)
}
