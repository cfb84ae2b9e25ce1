package store

import (
	"errors"
	"strings"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/notelab/notelab-api/models"
)

const maxTitleLength = 200

// ListNotes returns all of a user's notes, most recently updated first.
func (s *Store) ListNotes(userID uint) ([]models.Note, error) {
	var notes []models.Note
	if err := s.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNote fetches a note by public ID, scoped to its owner. A note that
// exists but belongs to someone else is reported as ErrNotFound.
func (s *Store) GetNote(noteID string, userID uint) (*models.Note, error) {
	var note models.Note
	err := s.db.Where("public_id = ? AND user_id = ?", noteID, userID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *Store) CreateNote(userID uint, title, content string) (*models.Note, error) {
	if err := validateNoteInput(title, content); err != nil {
		return nil, err
	}

	publicID, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	note := models.Note{
		PublicID: publicID,
		UserID:   userID,
		Title:    title,
		Content:  content,
		Summary:  "",
		Tags:     models.TagList{},
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote mutates title and content only. Concurrent writers are not
// detected; the row holds whichever write lands last.
func (s *Store) UpdateNote(noteID string, userID uint, title, content string) (*models.Note, error) {
	if err := validateNoteInput(title, content); err != nil {
		return nil, err
	}

	note, err := s.GetNote(noteID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(note).Updates(map[string]interface{}{
		"title":   title,
		"content": content,
	}).Error; err != nil {
		return nil, err
	}
	return s.GetNote(noteID, userID)
}

// DeleteNote hard-deletes after the ownership check; there is no tombstone.
func (s *Store) DeleteNote(noteID string, userID uint) error {
	result := s.db.Where("public_id = ? AND user_id = ?", noteID, userID).Delete(&models.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// likeEscaper neutralizes LIKE metacharacters so a query matches them
// literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchNotes does a case-insensitive literal substring match over title
// and content, ordered like ListNotes. An empty query matches every note;
// the handler layer decides whether to route that to ListNotes instead.
func (s *Store) SearchNotes(userID uint, query string) ([]models.Note, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	var notes []models.Note
	err := s.db.
		Where(`user_id = ? AND (LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`, userID, pattern, pattern).
		Order("updated_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNoteSummary writes only the summary column of an owned note.
func (s *Store) UpdateNoteSummary(noteID string, userID uint, summary string) error {
	return s.updateNoteField(noteID, userID, "summary", summary)
}

// UpdateNoteTags replaces the whole tag collection of an owned note.
func (s *Store) UpdateNoteTags(noteID string, userID uint, tags []string) error {
	return s.updateNoteField(noteID, userID, "tags", models.TagList(tags))
}

func (s *Store) updateNoteField(noteID string, userID uint, column string, value interface{}) error {
	result := s.db.Model(&models.Note{}).
		Where("public_id = ? AND user_id = ?", noteID, userID).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func validateNoteInput(title, content string) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return &ValidationError{Field: "title", Message: "title must be at most 200 characters"}
	}
	if content == "" {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	return nil
}
