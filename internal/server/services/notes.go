// Package services composes the repositories, the backup mirror and the
// evaluator into the operations the HTTP layer exposes.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/msavelyev/notedesk/internal/server/backup"
	"github.com/msavelyev/notedesk/internal/server/models"
	"github.com/msavelyev/notedesk/internal/server/repositories/notes"
)

type NoteService struct {
	repo   notes.Repository
	mirror backup.Mirror
}

func NewNoteService(repo notes.Repository, mirror backup.Mirror) *NoteService {
	return &NoteService{repo: repo, mirror: mirror}
}

func (s *NoteService) List(ctx context.Context) ([]models.Note, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	return list, nil
}

// Add appends a note and mirrors the full post-write collection to the
// object store. The returned outcome distinguishes a mirrored write from a
// primary-only one.
func (s *NoteService) Add(ctx context.Context, text string, tags []string) ([]models.Note, PersistOutcome, error) {

	note := &models.Note{
		Text:      text,
		Tags:      dedupeTags(tags),
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.repo.Add(ctx, note); err != nil {
		return nil, PersistOutcome{}, fmt.Errorf("error creating note: %w", err)
	}

	snapshot, err := s.repo.List(ctx)
	if err != nil {
		return nil, PersistOutcome{}, fmt.Errorf("error listing notes: %w", err)
	}

	outcome := PersistOutcome{MirrorErr: s.mirror.Save(ctx, backup.NotesKey, noteSnapshot(snapshot))}

	return snapshot, outcome, nil
}

// noteSnapshot keeps the mirrored object a JSON array even when the
// collection is empty.
func noteSnapshot(list []models.Note) []models.Note {
	if list == nil {
		return []models.Note{}
	}
	return list
}

// dedupeTags applies set semantics while keeping first-seen order.
func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		result = append(result, t)
	}
	return result
}
