package metrics

import (
	"connect4/game"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID playing Player1
	Agent2 int // AgentConfig.ID playing Player2
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp>-<run>/ to hold the CSV files of one experiment.
// The short run id keeps runs started within the same second apart.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	runID := uuid.New().String()[:8]
	baseDir := filepath.Join(root, name, timestamp+"-"+runID)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "kind", "depth", "diagonals", "duration", "episodes", "exploration", "seed"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Kind,
			strconv.Itoa(config.Depth),
			strconv.FormatBool(config.Diagonals),
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.FormatFloat(config.Exploration, 'f', -1, 64),
			strconv.FormatUint(config.Seed, 10),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingPlayer.String(),
			winnerName(record.Winner),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "column", "duration", "episodes", "full_playouts", "tree_size"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			strconv.Itoa(int(record.Column)),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.TreeSize),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(filename string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", filename, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", filename, err)
	}
	return nil
}

func winnerName(winner game.Piece) string {
	if winner == game.Empty {
		return "draw"
	}
	return winner.String()
}
