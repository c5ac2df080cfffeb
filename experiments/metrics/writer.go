package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Manifest describes one experiment run.
type Manifest struct {
	Run        string        `yaml:"run"`
	Experiment string        `yaml:"experiment"`
	StartedAt  time.Time     `yaml:"started_at"`
	Games      int           `yaml:"games"`
	Agents     []AgentConfig `yaml:"agents"`
	Summary    []Summary     `yaml:"summary,omitempty"`
}

// Summary aggregates the search effort of one agent over an experiment.
type Summary struct {
	Agent        int     `yaml:"agent"`
	Wins         int     `yaml:"wins"`
	Games        int     `yaml:"games"`
	MeanVisits   float64 `yaml:"mean_visits"`
	StdDevVisits float64 `yaml:"stddev_visits"`
	MeanDepth    float64 `yaml:"mean_depth"`
}

type Writer struct {
	baseDir string
	run     uuid.UUID
}

func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp and a run ID
	run := uuid.New()
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp+"-"+run.String()[:8])
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
		run:     run,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) Run() uuid.UUID {
	return w.run
}

func (w *Writer) WriteManifest(manifest Manifest) error {
	manifest.Run = w.run.String()
	out, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(w.baseDir, "manifest.yaml")
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Workers),
			strconv.Itoa(config.Iterations),
			config.Duration.String(),
			strconv.FormatBool(config.Policy),
		})
	}
	header := []string{"id", "workers", "iterations", "duration", "policy"}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalTurns),
		})
	}
	header := []string{"id", "agent1", "agent2", "winner", "start_time", "end_time", "duration", "turns"}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Side,
			record.Action,
			strconv.FormatFloat(record.Confidence, 'f', 4, 64),
			strconv.Itoa(record.Workers),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Visits),
			strconv.Itoa(record.MaxDepth),
			record.StopReason,
		})
	}
	header := []string{"game", "step", "side", "action", "confidence", "workers", "duration", "episodes", "visits", "max_depth", "stop_reason"}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows) // Flushes
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
