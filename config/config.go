package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	KindRandom  = "random"
	KindGreedy  = "greedy"
	KindMinimax = "minimax"
	KindMCTS    = "mcts"
)

var ErrUnknownAgent = errors.New("unknown agent")

// Config is the whole configuration of the connect4 binary.
// Values come from Default, then the YAML file, then CONNECT4_* environment variables.
type Config struct {
	LogLevel   string           `yaml:"log_level"`
	Agents     map[string]Agent `yaml:"agents"`
	Experiment Experiment       `yaml:"experiment"`
}

// Agent configures one agent. Fields that do not apply to Kind are ignored.
type Agent struct {
	Kind        string        `yaml:"kind"`
	Depth       int           `yaml:"depth"`     // minimax, greedy is depth 0
	Diagonals   bool          `yaml:"diagonals"` // minimax, also score diagonal windows
	Duration    time.Duration `yaml:"duration"`  // mcts, ignored when Episodes > 0
	Episodes    int           `yaml:"episodes"`  // mcts
	Exploration float64       `yaml:"exploration"`
	Seed        uint64        `yaml:"seed"` // random and mcts, 0 seeds from the clock
}

type Experiment struct {
	Name      string     `yaml:"name"`
	Games     int        `yaml:"games"` // per matchup
	OutputDir string     `yaml:"output_dir"`
	Matchups  [][]string `yaml:"matchups"` // pairs of agent names
}

func Default() Config {
	return Config{
		LogLevel: zerolog.InfoLevel.String(),
		Agents: map[string]Agent{
			KindRandom:  {Kind: KindRandom},
			KindGreedy:  {Kind: KindGreedy},
			KindMinimax: {Kind: KindMinimax, Depth: 2},
			KindMCTS:    {Kind: KindMCTS, Duration: 5 * time.Second, Exploration: 1.41},
		},
		Experiment: Experiment{
			Name:      "minimax-vs-mcts",
			Games:     10,
			OutputDir: "results",
			Matchups:  [][]string{{KindMinimax, KindMCTS}},
		},
	}
}

// Load returns the defaults overlaid with the file at path and the environment.
// An empty path or a missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		if err := loadFile(path, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := loadEnv(&config); err != nil {
		return config, fmt.Errorf("load config environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, config)
}

// loadEnv applies agent overrides to every configured agent of the matching kind.
func loadEnv(config *Config) error {
	if v := os.Getenv("CONNECT4_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("CONNECT4_MCTS_DURATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CONNECT4_MCTS_DURATION: %w", err)
		}
		config.eachAgent(KindMCTS, func(a *Agent) { a.Duration = d })
	}
	if v := os.Getenv("CONNECT4_MCTS_EPISODES"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CONNECT4_MCTS_EPISODES: %w", err)
		}
		config.eachAgent(KindMCTS, func(a *Agent) { a.Episodes = i })
	}
	if v := os.Getenv("CONNECT4_MINIMAX_DEPTH"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CONNECT4_MINIMAX_DEPTH: %w", err)
		}
		config.eachAgent(KindMinimax, func(a *Agent) { a.Depth = i })
	}
	if v := os.Getenv("CONNECT4_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CONNECT4_SEED: %w", err)
		}
		config.eachAgent("", func(a *Agent) { a.Seed = seed })
	}
	return nil
}

// eachAgent calls fn on every agent of kind, or on all agents when kind is empty.
func (c *Config) eachAgent(kind string, fn func(a *Agent)) {
	for name, agent := range c.Agents {
		if kind == "" || agent.Kind == kind {
			fn(&agent)
			c.Agents[name] = agent
		}
	}
}

// Agent looks up a configured agent by name.
func (c Config) Agent(name string) (Agent, error) {
	agent, ok := c.Agents[name]
	if !ok {
		return Agent{}, fmt.Errorf("%w: %q", ErrUnknownAgent, name)
	}
	return agent, nil
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	for name, agent := range c.Agents {
		if err := agent.Validate(); err != nil {
			return fmt.Errorf("agent %q: %w", name, err)
		}
	}
	return c.validateExperiment()
}

func (c Config) validateExperiment() error {
	e := c.Experiment
	if e.Name == "" {
		return fmt.Errorf("experiment name must not be empty")
	}
	if e.Games < 1 {
		return fmt.Errorf("experiment games must be >= 1")
	}
	for i, matchup := range e.Matchups {
		if len(matchup) != 2 {
			return fmt.Errorf("matchup %d: want 2 agents, got %d", i, len(matchup))
		}
		for _, name := range matchup {
			if _, err := c.Agent(name); err != nil {
				return fmt.Errorf("matchup %d: %w", i, err)
			}
		}
	}
	return nil
}

func (a Agent) Validate() error {
	switch a.Kind {
	case KindRandom, KindGreedy, KindMinimax, KindMCTS:
	default:
		return fmt.Errorf("%w: kind %q", ErrUnknownAgent, a.Kind)
	}
	if a.Depth < 0 {
		return fmt.Errorf("depth must be >= 0")
	}
	if a.Duration < 0 {
		return fmt.Errorf("duration must be >= 0")
	}
	if a.Episodes < 0 {
		return fmt.Errorf("episodes must be >= 0")
	}
	if a.Exploration < 0 {
		return fmt.Errorf("exploration must be >= 0")
	}
	return nil
}
