package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/salesdojo/roleplay-eval/internal/analytics"
	"github.com/salesdojo/roleplay-eval/internal/models"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

// outputLine is one jsonl result row.
type outputLine struct {
	Line   int                 `json:"line"`
	ID     string              `json:"id,omitempty"`
	UserID string              `json:"userId,omitempty"`
	Result *models.ScoreResult `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

// summaryOutput is the single JSON document written by the summary format.
type summaryOutput struct {
	Processed  int               `json:"processed"`
	Failed     int               `json:"failed"`
	Aggregates models.Aggregates `json:"aggregates"`
}

// Writer emits results either line by line (jsonl) or as one aggregate
// summary on Close.
type Writer struct {
	out       io.Writer
	format    string
	encoder   *json.Encoder
	scored    []models.Evaluation
	processed int
	failed    int
	logger    *zerolog.Logger
}

func NewWriter(out io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	if format != FormatJSONL && format != FormatSummary {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	return &Writer{
		out:     out,
		format:  format,
		encoder: json.NewEncoder(out),
		logger:  logger,
	}, nil
}

func (w *Writer) Write(result Result) error {
	w.processed++
	if result.Err != nil {
		w.failed++
	}

	switch w.format {
	case FormatJSONL:
		line := outputLine{Line: result.LineNumber}
		if result.Evaluation != nil {
			line.ID = result.Evaluation.ID
			line.UserID = result.Evaluation.UserID
			line.Result = result.Evaluation.Result
		}
		if result.Err != nil {
			line.Error = result.Err.Error()
		}
		return w.encoder.Encode(line)

	case FormatSummary:
		if result.Evaluation != nil {
			w.scored = append(w.scored, *result.Evaluation)
		}
		return nil
	}

	return nil
}

// Close flushes the summary document for the summary format; jsonl needs no
// flush.
func (w *Writer) Close() error {
	if w.format != FormatSummary {
		return nil
	}

	engine := analytics.NewEngine(w.logger)
	snapshot := engine.Snapshot(w.scored, models.GranularityDay)

	return w.encoder.Encode(summaryOutput{
		Processed:  w.processed,
		Failed:     w.failed,
		Aggregates: snapshot.Aggregates,
	})
}
