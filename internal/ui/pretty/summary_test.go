package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/msclfmt/internal/ui/pretty"
	"github.com/yaklabco/msclfmt/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 3},
			want:  "Already formatted, 3 files checked\n",
		},
		{
			name:  "check",
			stats: runner.Stats{FilesProcessed: 4, FilesChanged: 1, LinesChanged: 5},
			want:  "1 file needs formatting (5 lines), 4 files checked\n",
		},
		{
			name: "written with backups and errors",
			stats: runner.Stats{
				FilesProcessed: 2, FilesChanged: 2, FilesWritten: 2, LinesChanged: 1,
				BackupsCreated: 1, FilesErrored: 1,
			},
			want: "Formatted 2 files (1 line changed), 2 files checked, 1 backup, 1 error\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{
		FilesProcessed:    10,
		FilesChanged:      3,
		LinesChanged:      12,
		BlankLinesRemoved: 2,
	})

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files checked:       10")
	assert.Contains(t, result, "Files changed:       3")
	assert.Contains(t, result, "Lines re-indented:   12")
	assert.Contains(t, result, "Blank lines removed: 2")
	assert.Contains(t, result, "Some files need formatting")
	assert.NotContains(t, result, "Files written")
}

func TestFormatSummary_Clean(t *testing.T) {
	t.Parallel()

	result := pretty.NewStyles(false).FormatSummary(runner.Stats{FilesProcessed: 5})
	assert.Contains(t, result, "All files formatted")
}
