package commands

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "tin", cmd.Use)
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	expected := []string{"deploy", "job", "cleanup", "version"}
	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, subcommands[name], "Expected subcommand %s not found", name)
	}
}

// The process context installed in main must reach handlers through
// cmd.Context() so cancellation stops the waiting loops.
func TestRoot_ExecuteContextReachesHandlers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var seen context.Context
	cmd := Root()
	cmd.AddCommand(&cobra.Command{
		Use: "ctx-check",
		RunE: func(c *cobra.Command, _ []string) error {
			seen = c.Context()
			return nil
		},
	})
	cmd.SetArgs([]string{"ctx-check"})

	require.NoError(t, cmd.ExecuteContext(ctx))
	require.NotNil(t, seen)
	assert.ErrorIs(t, seen.Err(), context.Canceled)
}
