package experiments

import (
	"connect4/config"
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher/agent"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Run plays every configured matchup and writes the records under
// <OutputDir>/<Name>/<timestamp>-<run>/. It returns that directory. The two agents of a
// matchup take turns moving first. Cancelling ctx stops between games without writing.
func Run(ctx context.Context, cfg config.Config) (string, error) {
	experiment := cfg.Experiment
	configs, ids, err := agentConfigs(cfg)
	if err != nil {
		return "", err
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", experiment.Name)

	for mi, matchup := range experiment.Matchups {
		log.Info().Msgf("starting matchup %d of %d between %s and %s...", mi+1, len(experiment.Matchups), matchup[0], matchup[1])

		for i := 0; i < experiment.Games; i++ {
			if err := ctx.Err(); err != nil {
				return "", fmt.Errorf("%s experiment interrupted: %w", experiment.Name, err)
			}

			first, second := matchup[0], matchup[1]
			if i%2 == 1 {
				first, second = second, first
			}

			winner, gameMetric, moveMetrics, err := runGame(cfg.Agents[first], cfg.Agents[second])
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     ids[first],
				Agent2:     ids[second],
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(experiment.Matchups), i+1, winnerName(winner, first, second))
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(experiment.Matchups))
	}

	log.Info().Msgf("completed %s experiment", experiment.Name)
	return store(experiment, configs, gameRecords, moveRecords)
}

// agentConfigs numbers the agents in the order the matchups first mention them.
func agentConfigs(cfg config.Config) ([]metrics.AgentConfig, map[string]int, error) {
	configs := []metrics.AgentConfig{}
	ids := map[string]int{}
	for _, matchup := range cfg.Experiment.Matchups {
		for _, name := range matchup {
			if _, ok := ids[name]; ok {
				continue
			}
			a, err := cfg.Agent(name)
			if err != nil {
				return nil, nil, err
			}
			ids[name] = len(configs) + 1
			configs = append(configs, metrics.AgentConfig{ID: ids[name], Name: name, Agent: a})
		}
	}
	return configs, ids, nil
}

// runGame builds fresh agents so no search state leaks between games.
func runGame(config1, config2 config.Agent) (game.Piece, metrics.GameMetric, []metrics.MoveMetric, error) {
	agent1, err := agent.New(config1)
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}
	agent2, err := agent.New(config2)
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}
	e := engine.NewLocalEngine([2]agent.Agent{agent1, agent2})
	return e.Run()
}

func store(experiment config.Experiment, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(experiment.OutputDir, experiment.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

func winnerName(winner game.Piece, first, second string) string {
	switch winner {
	case game.Player1:
		return first
	case game.Player2:
		return second
	default:
		return "draw"
	}
}
