// Package enrich runs the AI enrichment flows: fetch the note under the
// caller's ownership, prompt the model, post-process, persist the result.
// Any failure aborts the whole operation; nothing is retried, and compute
// and persist stay adjacent so a failure before the write leaves no
// partial state behind.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/notelab/notelab-api/models"
	"github.com/notelab/notelab-api/store"
)

const maxTags = 10

const summaryPromptTemplate = `Summarize the following note in 2-3 sentences. Be concise.

Title: %s
Content: %s

Summary:`

const tagsPromptTemplate = `Generate 3-5 relevant tags for the note. Return only tags as a comma separated list (lowercase single words, no extra commentary).

Title: %s
Content: %s

Tags:`

// Generator is the single upstream call the flows depend on.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	store *store.Store
	gen   Generator
}

func NewService(st *store.Store, gen Generator) *Service {
	return &Service{store: st, gen: gen}
}

// Summarize produces and persists a short summary for an owned note.
func (s *Service) Summarize(ctx context.Context, userID uint, noteID string) (string, error) {
	note, err := s.store.GetNote(noteID, userID)
	if err != nil {
		return "", err
	}

	raw, err := s.gen.Generate(ctx, summaryPrompt(note))
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(raw)
	if err := s.store.UpdateNoteSummary(noteID, userID, summary); err != nil {
		return "", err
	}
	return summary, nil
}

// GenerateTags produces and persists tag suggestions for an owned note,
// replacing the note's whole tag collection.
func (s *Service) GenerateTags(ctx context.Context, userID uint, noteID string) ([]string, error) {
	note, err := s.store.GetNote(noteID, userID)
	if err != nil {
		return nil, err
	}

	raw, err := s.gen.Generate(ctx, tagsPrompt(note))
	if err != nil {
		return nil, err
	}

	tags := splitTags(raw)
	if err := s.store.UpdateNoteTags(noteID, userID, tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func summaryPrompt(note *models.Note) string {
	return fmt.Sprintf(summaryPromptTemplate, note.Title, note.Content)
}

func tagsPrompt(note *models.Note) string {
	return fmt.Sprintf(tagsPromptTemplate, note.Title, note.Content)
}

// splitTags turns raw model output into a clean tag list: split on commas
// and newlines, trim, drop empties, cap at maxTags to protect storage from
// unbounded output.
func splitTags(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		tags = append(tags, f)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}
