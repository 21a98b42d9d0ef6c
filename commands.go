package main

import (
	"connect4/config"
	"connect4/engine"
	"connect4/experiments"
	"connect4/game"
	"connect4/searcher/agent"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "connect4",
		Short:         "Connect Four agents: random, greedy, minimax and MCTS",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(
		newMoveCmd(opts),
		newPlayCmd(opts),
		newMatchCmd(opts),
		newRenderCmd(),
	)
	return rootCmd
}

// setup loads the configuration and applies its log level to the global logger.
func (o *options) setup() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	o.cfg = cfg
	return nil
}

func (o *options) agent(name string) (agent.Agent, error) {
	agentConfig, err := o.cfg.Agent(name)
	if err != nil {
		return nil, err
	}
	return agent.New(agentConfig)
}

func newMoveCmd(opts *options) *cobra.Command {
	var (
		agentName string
		player    int
		boardPath string
	)
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Print the column an agent plays on a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := readBoard(cmd.InOrStdin(), boardPath)
			if err != nil {
				return err
			}

			mover := board.NextPlayer()
			if player != 0 {
				mover = game.Piece(player)
				if !mover.IsPlayer() {
					return fmt.Errorf("%w: player %d", game.ErrInvalidPiece, player)
				}
			}

			a, err := opts.agent(agentName)
			if err != nil {
				return err
			}
			move, _, err := a.GenerateMove(board, mover, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), move)
			return nil
		},
	}
	cmd.Flags().StringVar(&agentName, "agent", config.KindMCTS, "Configured agent to ask")
	cmd.Flags().IntVar(&player, "player", 0, "Player to move, 1 or 2 (default: from the piece counts)")
	cmd.Flags().StringVar(&boardPath, "board", "", "Board file in the rendered format, - for stdin (default: empty board)")
	return cmd
}

func readBoard(stdin io.Reader, path string) (game.Board, error) {
	var data []byte
	var err error
	switch path {
	case "":
		return game.NewBoard(), nil
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return game.Board{}, fmt.Errorf("read board: %w", err)
	}
	return game.ParseBoard(string(data))
}

func newPlayCmd(opts *options) *cobra.Command {
	var p1, p2 string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one game between two configured agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := opts.agent(p1)
			if err != nil {
				return err
			}
			second, err := opts.agent(p2)
			if err != nil {
				return err
			}

			e := engine.NewLocalEngine([2]agent.Agent{first, second})
			winner, gameMetric, _, err := e.Run()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, e.Board())
			switch winner {
			case game.Player1:
				fmt.Fprintf(out, "%s (%s) wins after %d moves\n", winner, p1, gameMetric.TotalMoves)
			case game.Player2:
				fmt.Fprintf(out, "%s (%s) wins after %d moves\n", winner, p2, gameMetric.TotalMoves)
			default:
				fmt.Fprintf(out, "draw after %d moves\n", gameMetric.TotalMoves)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&p1, "p1", config.KindMinimax, "Configured agent playing first")
	cmd.Flags().StringVar(&p2, "p2", config.KindMCTS, "Configured agent playing second")
	return cmd
}

func newMatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "match",
		Short: "Run the configured experiment and write its records",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := experiments.Run(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func newRenderCmd() *cobra.Command {
	var moves []int
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the board reached by alternating moves from an empty board",
		RunE: func(cmd *cobra.Command, args []string) error {
			board := game.NewBoard()
			mover := game.Player1
			for _, col := range moves {
				if err := board.ApplyInPlace(game.Column(col), mover); err != nil {
					return err
				}
				mover = mover.Opponent()
			}
			fmt.Fprintln(cmd.OutOrStdout(), board)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&moves, "moves", nil, "Columns played alternately, Player1 first")
	return cmd
}
