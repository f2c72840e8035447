package services

import (
	"context"
	"fmt"
	"time"

	"github.com/msavelyev/notedesk/internal/calc"
	"github.com/msavelyev/notedesk/internal/server/backup"
	"github.com/msavelyev/notedesk/internal/server/models"
	"github.com/msavelyev/notedesk/internal/server/repositories/calchistory"
)

type CalcService struct {
	repo   calchistory.Repository
	mirror backup.Mirror
}

func NewCalcService(repo calchistory.Repository, mirror backup.Mirror) *CalcService {
	return &CalcService{repo: repo, mirror: mirror}
}

// Calculate evaluates expression and, on success, appends the calculation
// to the history and mirrors the full post-write history. When evaluation
// fails the returned error is a *calc.EvaluationError and nothing is
// recorded or mirrored.
func (s *CalcService) Calculate(ctx context.Context, expression string) (float64, []string, PersistOutcome, error) {

	result, err := calc.Evaluate(expression)
	if err != nil {
		return 0, nil, PersistOutcome{}, err
	}

	entry := &models.CalcEntry{
		Expression: expression,
		Result:     result,
		Timestamp:  time.Now().UTC(),
	}

	if _, err := s.repo.Add(ctx, entry); err != nil {
		return 0, nil, PersistOutcome{}, fmt.Errorf("error recording calculation: %w", err)
	}

	snapshot, err := s.repo.List(ctx)
	if err != nil {
		return 0, nil, PersistOutcome{}, fmt.Errorf("error listing history: %w", err)
	}

	outcome := PersistOutcome{MirrorErr: s.mirror.Save(ctx, backup.CalcHistoryKey, historySnapshot(snapshot))}

	return result, renderHistory(snapshot), outcome, nil
}

func (s *CalcService) History(ctx context.Context) ([]string, error) {
	snapshot, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing history: %w", err)
	}
	return renderHistory(snapshot), nil
}

func historySnapshot(list []models.CalcEntry) []models.CalcEntry {
	if list == nil {
		return []models.CalcEntry{}
	}
	return list
}

// renderHistory formats entries the way the dashboard shows them, one
// "expression = result" line per calculation.
func renderHistory(entries []models.CalcEntry) []string {
	result := make([]string, 0, len(entries))
	for _, e := range entries {
		result = append(result, fmt.Sprintf("%s = %s", e.Expression, calc.FormatResult(e.Result)))
	}
	return result
}
