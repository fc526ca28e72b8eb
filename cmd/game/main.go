package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mitchelldurbincs/kingdomrun/internal/common"
	"github.com/mitchelldurbincs/kingdomrun/internal/game"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "game",
		Usage: "local Kingdom Run tools",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "log level (debug, info, warn, error)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(cmd.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("invalid log level: %w", err)
			}
			zerolog.SetGlobalLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "path",
				Usage: "generate a path and print it",
				Flags: []cli.Flag{
					seedFlag(),
					&cli.BoolFlag{Name: "no-color", Usage: "disable ANSI colors"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					engine := game.NewSeededEngine(log.Logger, cmd.Int("seed"))
					g, _, err := engine.NewGame()
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Seed: %d\n", cmd.Int("seed"))
					fmt.Fprint(out, game.RenderPath(g, game.RenderOptions{Color: !cmd.Bool("no-color")}))
					return nil
				},
			},
			{
				Name:  "simulate",
				Usage: "play a game between bots",
				Flags: []cli.Flag{
					seedFlag(),
					&cli.IntFlag{Name: "players", Value: 2, Usage: "number of bots (2-4)"},
					&cli.IntFlag{Name: "max-commands", Value: 5000, Usage: "stop after this many commands (0 for no limit)"},
					&cli.BoolFlag{Name: "no-color", Usage: "disable ANSI colors"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					seed := cmd.Int("seed")
					engine := game.NewSeededEngine(log.Logger, seed)
					result, err := engine.Simulate(game.SimulationConfig{
						Players:     int(cmd.Int("players")),
						MaxCommands: int(cmd.Int("max-commands")),
						Rng:         common.NewLockedRand(seed + 1),
					})
					if err != nil {
						return err
					}
					printSimulation(out, seed, result, game.RenderOptions{Color: !cmd.Bool("no-color")})
					return nil
				},
			},
		},
	}
}

func seedFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "seed",
		Value: time.Now().UnixNano(),
		Usage: "random seed",
	}
}

func printSimulation(out io.Writer, seed int64, result game.SimulationResult, opts game.RenderOptions) {
	g := result.Game
	fmt.Fprintf(out, "Seed: %d\n", seed)
	fmt.Fprintf(out, "Status: %s after %d commands (%d rejected), %d turns\n\n",
		g.Status, result.Commands, result.Rejected, result.Turns)
	fmt.Fprint(out, game.RenderPath(g, opts))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYER\tCOLOR\tPOINTS\tPATH\tTOTAL\tFINISHED\tTO MOVE")
	for _, s := range game.Standings(g) {
		toMove := ""
		if s.ToMove {
			toMove = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			s.PlayerID, s.Color, s.Points, s.PathPoints, s.Total, s.FinishTokens, toMove)
	}
	w.Flush()

	if g.Winner != nil {
		fmt.Fprintf(out, "\nWinner: %s with %d\n", g.Winner.PlayerID, g.Winner.Points)
	}
}
