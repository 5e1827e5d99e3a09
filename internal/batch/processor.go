package batch

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/salesdojo/roleplay-eval/internal/models"
)

// Scorer runs the evaluation pipeline for one transcript.
type Scorer interface {
	Evaluate(ctx context.Context, transcriptText string, userID string) (*models.Evaluation, error)
}

// Result is the outcome of scoring one input record.
type Result struct {
	LineNumber int
	Evaluation *models.Evaluation
	Err        error
}

type Processor struct {
	scorer  Scorer
	workers int
	logger  *zerolog.Logger
}

func NewProcessor(scorer Scorer, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		scorer:  scorer,
		workers: workers,
		logger:  logger,
	}
}

// Process scores records concurrently with a fixed worker pool. Records that
// failed to parse pass straight through as failed results. The results
// channel closes when all workers finish.
func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan Result {
	jobs := make(chan InputRecord)
	results := make(chan Result)

	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.work(ctx, jobs, results)
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			select {
			case jobs <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (p *Processor) work(ctx context.Context, jobs <-chan InputRecord, results chan<- Result) {
	for record := range jobs {
		result := Result{LineNumber: record.LineNumber}

		if record.Error != nil {
			result.Err = record.Error
		} else {
			evaluation, err := p.scorer.Evaluate(ctx, record.Request.RoleplayText, record.Request.UserID)
			result.Evaluation = evaluation
			result.Err = err
		}

		if result.Err != nil {
			p.logger.Error().Err(result.Err).Int("line", record.LineNumber).Msg("record failed")
		}

		select {
		case results <- result:
		case <-ctx.Done():
			return
		}
	}
}
