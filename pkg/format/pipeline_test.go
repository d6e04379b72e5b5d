package format_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/msclfmt/internal/logging"
	"github.com/yaklabco/msclfmt/pkg/config"
	"github.com/yaklabco/msclfmt/pkg/format"
	"github.com/yaklabco/msclfmt/pkg/fsutil"
)

const (
	unformatted = "if a\nb\nendif\n"
	formatted   = "if a\n    b\nendif\n"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "main.mscl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newPipeline() *format.Pipeline {
	return format.NewPipeline()
}

func TestProcessContent(t *testing.T) {
	t.Parallel()

	opts := format.PipelineOptions{Format: format.DefaultOptions()}
	result, err := newPipeline().ProcessContent(context.Background(), "main.mscl", []byte(unformatted), opts)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Equal(t, formatted, string(result.Formatted))
	assert.Equal(t, unformatted, string(result.Original))
	assert.Equal(t, 1, result.Stats.Changed)
	require.NotNil(t, result.Diff)
	assert.Equal(t, 1, result.Diff.Added)
	assert.Equal(t, 1, result.Diff.Removed)
	assert.Equal(t, "needs formatting", result.Summary())
}

func TestProcessContent_Unchanged(t *testing.T) {
	t.Parallel()

	opts := format.PipelineOptions{Format: format.DefaultOptions()}
	result, err := newPipeline().ProcessContent(context.Background(), "main.mscl", []byte(formatted), opts)
	require.NoError(t, err)

	assert.False(t, result.Changed)
	assert.Nil(t, result.Diff)
	assert.Equal(t, "ok", result.Summary())
}

func TestProcessContent_Range(t *testing.T) {
	t.Parallel()

	opts := format.PipelineOptions{
		Format: format.DefaultOptions(),
		Range:  format.LineRange(0, 0),
	}
	result, err := newPipeline().ProcessContent(context.Background(), "main.mscl", []byte(unformatted), opts)
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestProcessContent_Binary(t *testing.T) {
	t.Parallel()

	opts := format.PipelineOptions{Format: format.DefaultOptions()}
	_, err := newPipeline().ProcessContent(context.Background(), "blob.mscl", []byte("if\x00\x01\x02"), opts)
	require.ErrorIs(t, err, format.ErrBinaryFile)
}

func TestProcessContent_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPipeline().ProcessContent(ctx, "main.mscl", []byte(unformatted), format.PipelineOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestProcessFile_CheckOnly(t *testing.T) {
	t.Parallel()

	path := writeFile(t, unformatted)
	opts := format.PipelineOptions{Format: format.DefaultOptions()}

	result, err := newPipeline().ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.False(t, result.Written)
	assert.NotNil(t, result.Snapshot)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, unformatted, string(content))
}

func TestProcessFile_Write(t *testing.T) {
	t.Parallel()

	path := writeFile(t, unformatted)
	opts := format.PipelineOptions{Format: format.DefaultOptions(), Write: true}

	result, err := newPipeline().ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)

	assert.True(t, result.Written)
	assert.False(t, result.BackupCreated)
	assert.Equal(t, "formatted", result.Summary())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, formatted, string(content))

	_, err = os.Stat(path + fsutil.BackupSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestProcessFile_WriteWithBackup(t *testing.T) {
	t.Parallel()

	path := writeFile(t, unformatted)
	opts := format.PipelineOptions{
		Format: format.DefaultOptions(),
		Write:  true,
		Backup: fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar},
	}

	result, err := newPipeline().ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)
	assert.True(t, result.BackupCreated)
	assert.Equal(t, "formatted (backup created)", result.Summary())

	backup, err := os.ReadFile(path + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, unformatted, string(backup))
}

func TestProcessFile_UnchangedIsNotWritten(t *testing.T) {
	t.Parallel()

	path := writeFile(t, formatted)
	before, err := os.Stat(path)
	require.NoError(t, err)

	opts := format.PipelineOptions{Format: format.DefaultOptions(), Write: true}
	result, err := newPipeline().ProcessFile(context.Background(), path, opts)
	require.NoError(t, err)
	assert.False(t, result.Written)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestProcessFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := newPipeline().ProcessFile(context.Background(), filepath.Join(t.TempDir(), "nope.mscl"), format.PipelineOptions{})
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Write = true
	cfg.Backups.Enabled = true

	opts := format.PipelineOptionsFromConfig(cfg)
	assert.True(t, opts.Write)
	assert.True(t, opts.Backup.Enabled)
	assert.Equal(t, fsutil.BackupModeSidecar, opts.Backup.Mode)

	cfg.Check = true
	cfg.NoBackups = true
	opts = format.PipelineOptionsFromConfig(cfg)
	assert.False(t, opts.Write, "check wins over write")
	assert.False(t, opts.Backup.Enabled)

	assert.Equal(t, format.DefaultOptions(), format.PipelineOptionsFromConfig(nil).Format)
}

func TestProcessFile_LogsThroughContext(t *testing.T) {
	t.Parallel()

	path := writeFile(t, unformatted)

	var out bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWriter(&out, "debug"))

	_, err := newPipeline().ProcessFile(ctx, path, format.PipelineOptions{Format: format.DefaultOptions()})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "processed file")
	assert.Contains(t, out.String(), "lines_changed=1")
}
