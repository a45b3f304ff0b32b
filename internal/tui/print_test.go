package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mmcdole/readtrack/internal/adapter"
	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/mmcdole/readtrack/internal/tui/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedFetch(items []domain.TextualItem, err error, scopes *[]string) components.FetchFunc {
	return func(_ context.Context, scope string) ([]domain.TextualItem, error) {
		if scopes != nil {
			*scopes = append(*scopes, scope)
		}
		return items, err
	}
}

func printOpts(scope string) PrintOptions {
	return PrintOptions{Scope: scope, Width: 80, Logger: adapter.NullLogger()}
}

func TestPrintList_Cards(t *testing.T) {
	items := []domain.TextualItem{{
		Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593",
		TotalPages: 412, ProgressPercent: 50, Status: domain.StatusReading,
	}}
	var scopes []string
	var out, errOut bytes.Buffer

	err := PrintList(context.Background(), fixedFetch(items, nil, &scopes), &out, &errOut, printOpts("5"))
	require.NoError(t, err)

	assert.Equal(t, []string{"5"}, scopes)
	assert.Contains(t, out.String(), components.ListHeading)
	assert.Contains(t, out.String(), "50% complete")
	assert.Contains(t, out.String(), "1 items · 1 books · 412 pages · 0 completed")
	assert.NotContains(t, out.String(), components.LoadingText)
	assert.Empty(t, errOut.String())
}

func TestPrintList_Empty(t *testing.T) {
	var out, errOut bytes.Buffer
	err := PrintList(context.Background(), fixedFetch(nil, nil, nil), &out, &errOut, printOpts(""))
	require.NoError(t, err)
	assert.Contains(t, out.String(), components.EmptyText)
}

func TestPrintList_Error(t *testing.T) {
	var out, errOut bytes.Buffer
	cause := errors.New("HTTP 500")
	err := PrintList(context.Background(), fixedFetch(nil, cause, nil), &out, &errOut, printOpts(""))

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "Error: Failed to fetch items\n", errOut.String())
	assert.Empty(t, out.String())
}

func TestPrintList_JSON(t *testing.T) {
	var out, errOut bytes.Buffer
	opts := printOpts("")
	opts.JSON = true

	err := PrintList(context.Background(), fixedFetch(nil, nil, nil), &out, &errOut, opts)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out.String())

	out.Reset()
	items := []domain.TextualItem{{ID: 1, Title: "Dune", ProgressPercent: 33.3}}
	err = PrintList(context.Background(), fixedFetch(items, nil, nil), &out, &errOut, opts)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Dune", decoded[0]["title"])
	assert.Equal(t, 33.3, decoded[0]["progress_percent"])
}

func TestPrintProjects(t *testing.T) {
	var out bytes.Buffer
	PrintProjects(&out, []domain.ReadingProject{{ID: 5, Name: "Classics"}, {Name: "Loose"}})
	assert.Equal(t, "5      Classics\n-      Loose\n", out.String())

	out.Reset()
	PrintProjects(&out, nil)
	assert.Equal(t, "No projects.\n", out.String())
}
