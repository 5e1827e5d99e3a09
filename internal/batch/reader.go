// Package batch scores transcripts in bulk: a JSONL reader, a worker-pool
// processor, and jsonl/summary writers.
package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/salesdojo/roleplay-eval/internal/models"
)

// InputRecord is one line of the input file. Error is set for lines that did
// not parse; such records are reported, never scored.
type InputRecord struct {
	LineNumber int
	Request    models.EvaluateRequest
	Error      error
}

type Reader struct {
	input  io.Reader
	logger *zerolog.Logger
}

func NewReader(input io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		input:  input,
		logger: logger,
	}
}

// ReadAll streams input lines as InputRecords. Blank lines are skipped. The
// channel closes when the input is exhausted or the context is cancelled.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.input)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := InputRecord{LineNumber: lineNumber}

			var request models.EvaluateRequest
			if err := json.Unmarshal([]byte(line), &request); err != nil {
				record.Error = fmt.Errorf("line %d: %w", lineNumber, err)
			} else if request.RoleplayText == "" {
				record.Error = fmt.Errorf("line %d: roleplayText is required", lineNumber)
			} else {
				record.Request = request
			}

			select {
			case out <- record:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Msg("failed to read input")
		}
	}()

	return out
}
