package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/homeflow-be/internal/auth"
)

func env(vals map[string]string) func(string) string {
	return func(k string) string { return vals[k] }
}

func TestRunPrintsVerifiableToken(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-sub", "auth0|dev", "-email", "dev@example.com", "-ttl", "5m"},
		env(map[string]string{"JWT_SECRET": "dev-secret"}), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	id, err := auth.NewTokenManager("dev-secret", "homeflow", time.Hour).
		Verify(context.Background(), strings.TrimSpace(stdout.String()))
	require.NoError(t, err)
	assert.Equal(t, "auth0|dev", id.Subject)
	assert.Equal(t, "dev@example.com", id.Email)
}

func TestRunRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		args []string
		env  map[string]string
		code int
	}{
		{"no secret", []string{"-sub", "x"}, nil, 1},
		{"no subject", nil, map[string]string{"JWT_SECRET": "s"}, 2},
		{"unknown flag", []string{"-bogus"}, map[string]string{"JWT_SECRET": "s"}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tc.code, run(tc.args, env(tc.env), &stdout, &stderr))
			assert.Empty(t, stdout.String())
			assert.NotEmpty(t, stderr.String())
		})
	}
}
