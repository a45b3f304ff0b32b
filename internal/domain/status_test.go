package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusSlug(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   string
	}{
		{name: "single word", status: "Reading", want: "reading"},
		{name: "two words", status: "Not Started", want: "not-started"},
		{name: "three words", status: "Did Not Finish", want: "did-not-finish"},
		{name: "whitespace runs", status: "On \t Hold", want: "on-hold"},
		{name: "surrounding space", status: "  Planned  ", want: "planned"},
		{name: "unsafe characters", status: "Done!<script>", want: "donescript"},
		{name: "existing hyphen", status: "Re-reading", want: "re-reading"},
		{name: "empty", status: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusSlug(tt.status))
		})
	}
}

func TestTextualItemStatusClass(t *testing.T) {
	item := TextualItem{Status: StatusInProgress}
	assert.Equal(t, "status-in-progress", item.StatusClass())
}
