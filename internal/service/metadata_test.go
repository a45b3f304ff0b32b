package service

import (
	"context"
	"testing"

	"github.com/mmcdole/readtrack/internal/adapter"
	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/mmcdole/readtrack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	calls int
	meta  *domain.BookMetadata
	err   error
}

func (f *fakeCatalog) LookupMetadata(_ context.Context, title, isbn string) (*domain.BookMetadata, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.meta, nil
}

func TestMetadataService_CachesLookups(t *testing.T) {
	cat := &fakeCatalog{meta: &domain.BookMetadata{Title: "Dune", NumFound: 1}}
	st, err := store.NewLocalStore("", "", 0)
	require.NoError(t, err)

	svc := NewMetadataService(cat, st, true, adapter.NullLogger())
	item := domain.TextualItem{Title: "Dune", ISBN: "123"}

	meta, err := svc.Lookup(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, "Dune", meta.Title)

	_, err = svc.Lookup(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.calls, "second lookup is served from the store")
}

func TestMetadataService_DoesNotCacheFailures(t *testing.T) {
	cat := &fakeCatalog{err: domain.ErrNoMetadata}
	st, err := store.NewLocalStore("", "", 0)
	require.NoError(t, err)

	svc := NewMetadataService(cat, st, true, adapter.NullLogger())
	item := domain.TextualItem{Title: "Unknown"}

	_, err = svc.Lookup(context.Background(), item)
	assert.ErrorIs(t, err, domain.ErrNoMetadata)
	_, err = svc.Lookup(context.Background(), item)
	assert.ErrorIs(t, err, domain.ErrNoMetadata)
	assert.Equal(t, 2, cat.calls)
}

func TestMetadataService_Disabled(t *testing.T) {
	cat := &fakeCatalog{}
	svc := NewMetadataService(cat, nil, false, nil)

	assert.False(t, svc.Enabled())
	_, err := svc.Lookup(context.Background(), domain.TextualItem{Title: "Dune"})
	assert.ErrorIs(t, err, domain.ErrMetadataDisabled)
	assert.Zero(t, cat.calls)
}

func TestMetadataService_EmptyQuery(t *testing.T) {
	svc := NewMetadataService(&fakeCatalog{}, nil, true, nil)

	_, err := svc.Lookup(context.Background(), domain.TextualItem{})
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}
