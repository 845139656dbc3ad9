package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibility_Matches(t *testing.T) {
	t.Parallel()

	e, err := NewEligibility(ProcessorName, DefaultSuffixes)
	require.NoError(t, err)

	tests := []struct {
		filename string
		want     bool
	}{
		{"app.component.ts", true},
		{"src/app/app.component.ts", true},
		{`src\app\home.page.ts`, true},
		{"confirm.dialog.ts", true},
		{"x.modal.ts", true},
		{"x.popover.ts", true},
		{"x.bottomsheet.ts", true},
		{"x.snackbar.ts", true},
		{".component.ts", true},
		{"component.ts", false},
		{"foo.ts", false},
		{"bar.cmp.ts", false},
		{"app.component.html", false},
		{"app.component.ts.bak", false},
		{"app.component.spec.ts", false},
	}

	for _, tt := range tests {
		// Test: matching is by suffix of the base name only
		assert.Equal(t, tt.want, e.Matches(tt.filename), tt.filename)
	}
}

func TestEligibility_CustomSuffixes(t *testing.T) {
	t.Parallel()

	// Test: configured suffixes appear in the warning in order
	e, err := NewEligibility("proc", []string{".view.ts", ".widget.ts"})
	require.NoError(t, err)

	assert.True(t, e.Matches("a.widget.ts"))
	assert.False(t, e.Matches("a.component.ts"))

	lines := e.Warning("a.ts")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "configured the proc processor")
	assert.Equal(t, "- Supported file extensions for inline Component template extraction are: .view.ts, .widget.ts", lines[2])
}
