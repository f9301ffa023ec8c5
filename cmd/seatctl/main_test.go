package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"seatreservation/config"
	"seatreservation/internal/adapters/auth"
	"seatreservation/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRun_IssueToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "cli-secret"}
	var out bytes.Buffer

	err := run(context.Background(), []string{"issue-token", "-user", "user-42", "-email", "a@example.com", "-ttl", "1h"}, &out, cfg, testLogger)
	require.NoError(t, err)

	userID, err := auth.NewJWTVerifier("cli-secret").Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestRun_UsageErrors(t *testing.T) {
	cfg := &config.Config{JWTSecret: "cli-secret"}
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"drop-everything"}},
		{"token without user", []string{"issue-token"}},
		{"token with bad ttl", []string{"issue-token", "-user", "u", "-ttl", "-1h"}},
		{"unknown flag", []string{"generate-seats", "-cols", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(context.Background(), tt.args, io.Discard, cfg, testLogger)
			require.Error(t, err)
		})
	}
}

func TestPrintReport(t *testing.T) {
	var out bytes.Buffer
	printReport(&out, &domain.ProvisioningReport{
		Created: map[string]int{"ev-b": 120, "ev-a": 24},
		Skipped: map[string]int{"ev-c": 12},
		Total:   144,
	})
	assert.Equal(t, "event ev-a: created 24 seats\n"+
		"event ev-b: created 120 seats\n"+
		"event ev-c: skipped, already has 12 seats\n"+
		"total seats created: 144\n", out.String())
}
