package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/mmcdole/readtrack/internal/tui/components"
)

// PrintOptions configures non-interactive output
type PrintOptions struct {
	Scope   string
	Width   int
	JSON    bool
	Timeout time.Duration
	Logger  *slog.Logger
}

// PrintList fetches the scope once and writes the list to w, using the same
// state selection as the interactive view. On failure the generic error line
// goes to errW and the fetch error is returned.
func PrintList(ctx context.Context, fetch components.FetchFunc, w, errW io.Writer, opts PrintOptions) error {
	list := components.NewItemList(fetch, components.ItemListOptions{
		Scope:   opts.Scope,
		Timeout: opts.Timeout,
		Logger:  opts.Logger,
	})
	defer list.Close()
	list.SetSize(opts.Width, 0)

	if err := list.Load(ctx); err != nil {
		fmt.Fprintln(errW, "Error: "+components.FetchErrorMsg)
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		items := list.Items()
		if items == nil {
			items = []domain.TextualItem{}
		}
		return enc.Encode(items)
	}

	fmt.Fprintln(w, list.View())
	if len(list.Items()) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, SummaryLine(domain.Summarize(list.Items())))
	}
	return nil
}

// PrintProjects writes one line per project: id and name
func PrintProjects(w io.Writer, projects []domain.ReadingProject) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects.")
		return
	}
	for _, p := range projects {
		id := p.Scope()
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%-6s %s\n", id, p.Name)
	}
}
