package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questforge/questforge/internal/engine"
)

func TestMemoryTemplateStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTemplateStore()

	q := &engine.Quest{ID: "q1", QuestName: "q1"}
	require.NoError(t, s.RegisterQuest(ctx, q))

	got, err := s.Quest(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, q, got)
}

func TestMemoryTemplateStoreDuplicate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTemplateStore()

	require.NoError(t, s.RegisterQuest(ctx, &engine.Quest{ID: "q1", QuestName: "original"}))
	err := s.RegisterQuest(ctx, &engine.Quest{ID: "q1", QuestName: "imposter"})
	assert.ErrorIs(t, err, ErrDuplicateQuest)

	// The original entry is kept.
	got, err := s.Quest(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "original", got.QuestName)
}

func TestMemoryTemplateStoreNotFound(t *testing.T) {
	_, err := NewMemoryTemplateStore().Quest(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrQuestNotFound)
}

func TestMemoryTemplateStoreRemove(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTemplateStore()
	require.NoError(t, s.RegisterQuest(ctx, &engine.Quest{ID: "q1"}))

	require.NoError(t, s.RemoveQuest(ctx, "q1"))
	_, err := s.Quest(ctx, "q1")
	assert.ErrorIs(t, err, ErrQuestNotFound)

	// Removing an absent id is a no-op.
	assert.NoError(t, s.RemoveQuest(ctx, "q1"))
}

func TestMemoryTemplateStoreIDsSorted(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTemplateStore()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.RegisterQuest(ctx, &engine.Quest{ID: id}))
	}
	ids, err := s.QuestIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestMemoryLocaleStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryLocaleStore([]string{"en", "fr"})

	locales, err := s.Locales(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr"}, locales)

	require.NoError(t, s.RegisterQuestLocale(ctx, "en", "q1", engine.QuestLocale{Name: "Hunt"}))
	err = s.RegisterQuestLocale(ctx, "en", "q1", engine.QuestLocale{Name: "Again"})
	assert.ErrorIs(t, err, ErrDuplicateLocale)

	payload, ok := s.QuestLocale("en", "q1")
	require.True(t, ok)
	assert.Equal(t, "Hunt", payload.Name)
}

func TestMemoryLocaleStoreMail(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryLocaleStore([]string{"en"})

	require.NoError(t, s.RegisterMail(ctx, "en", "q1_description", "Go hunt"))
	assert.ErrorIs(t, s.RegisterMail(ctx, "en", "q1_description", "x"), ErrDuplicateLocale)

	v, ok := s.Mail("en", "q1_description")
	require.True(t, ok)
	assert.Equal(t, "Go hunt", v)
}

func TestMemoryLocaleStoreUnknownLocale(t *testing.T) {
	s := NewMemoryLocaleStore([]string{"en"})
	assert.Error(t, s.RegisterMail(context.Background(), "de", "k", "v"))
}

func TestMemoryProfileStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfileStore()

	_, err := s.Profile(ctx, "p1")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	p := &engine.Profile{ID: "p1"}
	require.NoError(t, s.SaveProfile(ctx, p))

	got, err := s.Profile(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	ids, err := s.ProfileIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)
}
