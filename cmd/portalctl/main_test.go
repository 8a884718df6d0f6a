package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/khatabook/number-change-portal/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
	}{
		{"argument", []string{"hash-password", "s3cret!"}, ""},
		{"stdin", []string{"hash-password"}, "s3cret!\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&bytes.Buffer{})
			rootCmd.SetIn(strings.NewReader(tt.stdin))
			rootCmd.SetArgs(tt.args)

			require.NoError(t, rootCmd.Execute())
			hash := strings.TrimSpace(out.String())
			assert.True(t, auth.CheckPassword("s3cret!", hash))
		})
	}
}

func TestImportRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DB_URL", "")
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"import", "--agents", "agents.json"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is required")
}
