package main

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/mitchelldurbincs/kingdomrun/internal/game"
	"github.com/mitchelldurbincs/kingdomrun/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathCommand(t *testing.T) {
	var out bytes.Buffer
	err := newApp(&out).Run(context.Background(), []string{"game", "path", "--seed", "42", "--no-color"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Seed: 42")
	assert.NotContains(t, out.String(), "\x1b[", "colors are disabled")

	var again bytes.Buffer
	require.NoError(t, newApp(&again).Run(context.Background(), []string{"game", "path", "--seed", "42", "--no-color"}))
	assert.Equal(t, out.String(), again.String(), "same seed, same path")
}

func TestSimulateCommand(t *testing.T) {
	var out bytes.Buffer
	err := newApp(&out).Run(context.Background(), []string{
		"game", "simulate", "--seed", "3", "--players", "3", "--max-commands", "200", "--no-color",
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Seed: 3")
	assert.Contains(t, out.String(), "PLAYER")
	assert.NotContains(t, out.String(), "%!", "every verb matches its argument")
	rows := regexp.MustCompile(`(?m)^\S+\s+(blue|red|green|yellow)\s+-?\d+\s+\d+\s+-?\d+\s+\d+\s*\*?\s*$`).FindAllString(out.String(), -1)
	assert.Len(t, rows, 3, "one standings row per player")
}

func TestPrintSimulation_StandingsRow(t *testing.T) {
	g := testutil.NewTestGame("p1", "p2")
	var out bytes.Buffer
	printSimulation(&out, 7, game.SimulationResult{Game: g}, game.RenderOptions{})

	assert.NotContains(t, out.String(), "%!")
	assert.Regexp(t, `(?m)^p1\s+blue\s+6\s+0\s+6\s+0\s+\*\s*$`, out.String())
	assert.Regexp(t, `(?m)^p2\s+red\s+6\s+0\s+6\s+0\s*$`, out.String())
}

func TestSimulateCommand_RejectsPlayerCount(t *testing.T) {
	var out bytes.Buffer
	err := newApp(&out).Run(context.Background(), []string{"game", "simulate", "--players", "7"})
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	err := newApp(&out).Run(context.Background(), []string{"game", "--log-level", "loud", "path"})
	assert.Error(t, err)
}
