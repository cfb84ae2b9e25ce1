package enrich

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/notelab/notelab-api/models"
	"github.com/notelab/notelab-api/store"
)

type fakeGenerator struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestService(t *testing.T, gen Generator) (*Service, *store.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Note{}))

	st := store.New(db)
	return NewService(st, gen), st
}

func seedNote(t *testing.T, st *store.Store) (*models.User, *models.Note) {
	t.Helper()

	user, err := st.ResolveOrCreateUser("auth0|owner", "owner@example.com", "Owner")
	require.NoError(t, err)
	note, err := st.CreateNote(user.ID, "Meeting notes", "Discussed roadmap and hiring.")
	require.NoError(t, err)
	return user, note
}

func TestSummarizeTrimsAndPersists(t *testing.T) {
	gen := &fakeGenerator{reply: "  A short summary of the meeting.\n"}
	svc, st := newTestService(t, gen)
	user, note := seedNote(t, st)

	summary, err := svc.Summarize(context.Background(), user.ID, note.PublicID)
	require.NoError(t, err)

	assert.Equal(t, "A short summary of the meeting.", summary)

	stored, err := st.GetNote(note.PublicID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, summary, stored.Summary)

	// The prompt embeds the note verbatim.
	require.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.prompts[0], "Title: Meeting notes")
	assert.Contains(t, gen.prompts[0], "Content: Discussed roadmap and hiring.")
}

func TestGenerateTagsPostProcessing(t *testing.T) {
	gen := &fakeGenerator{reply: "work, ideas\nurgent,,  "}
	svc, st := newTestService(t, gen)
	user, note := seedNote(t, st)

	tags, err := svc.GenerateTags(context.Background(), user.ID, note.PublicID)
	require.NoError(t, err)

	assert.Equal(t, []string{"work", "ideas", "urgent"}, tags)

	stored, err := st.GetNote(note.PublicID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, tags, []string(stored.Tags))
}

func TestGenerateTagsCapsAtTen(t *testing.T) {
	tokens := make([]string, 15)
	for i := range tokens {
		tokens[i] = string(rune('a' + i))
	}
	gen := &fakeGenerator{reply: strings.Join(tokens, ", ")}
	svc, st := newTestService(t, gen)
	user, note := seedNote(t, st)

	tags, err := svc.GenerateTags(context.Background(), user.ID, note.PublicID)
	require.NoError(t, err)

	require.Len(t, tags, 10)
	assert.Equal(t, tokens[:10], tags)
}

func TestGenerateTagsReplacesWholeCollection(t *testing.T) {
	gen := &fakeGenerator{reply: "fresh"}
	svc, st := newTestService(t, gen)
	user, note := seedNote(t, st)

	require.NoError(t, st.UpdateNoteTags(note.PublicID, user.ID, []string{"stale", "old"}))

	tags, err := svc.GenerateTags(context.Background(), user.ID, note.PublicID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, tags)

	stored, err := st.GetNote(note.PublicID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, []string(stored.Tags))
}

func TestEnrichmentSkipsUpstreamForMissingNote(t *testing.T) {
	gen := &fakeGenerator{reply: "should never be used"}
	svc, st := newTestService(t, gen)
	user, _ := seedNote(t, st)

	_, err := svc.Summarize(context.Background(), user.ID, "no-such-note")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.GenerateTags(context.Background(), user.ID, "no-such-note")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Zero(t, gen.calls)
}

func TestEnrichmentSkipsUpstreamForForeignNote(t *testing.T) {
	gen := &fakeGenerator{reply: "should never be used"}
	svc, st := newTestService(t, gen)
	_, note := seedNote(t, st)

	other, err := st.ResolveOrCreateUser("auth0|other", "other@example.com", "Other")
	require.NoError(t, err)

	_, err = svc.Summarize(context.Background(), other.ID, note.PublicID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Zero(t, gen.calls)
}

func TestEnrichmentPropagatesUpstreamFailure(t *testing.T) {
	gen := &fakeGenerator{err: context.DeadlineExceeded}
	svc, st := newTestService(t, gen)
	user, note := seedNote(t, st)

	_, err := svc.Summarize(context.Background(), user.ID, note.PublicID)
	assert.Error(t, err)

	// Nothing was persisted for the failed flow.
	stored, gerr := st.GetNote(note.PublicID, user.ID)
	require.NoError(t, gerr)
	assert.Empty(t, stored.Summary)
}

func TestSplitTags(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"mixed separators", "work, ideas\nurgent,,  ", []string{"work", "ideas", "urgent"}},
		{"empty input", "", []string{}},
		{"only separators", ",\n,\n", []string{}},
		{"preserves order", "b, a, c", []string{"b", "a", "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, splitTags(tc.raw))
		})
	}
}
