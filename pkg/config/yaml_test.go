package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/msclfmt/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies optional booleans", func(t *testing.T) {
		original := &config.Config{DeleteTrailingWhitespace: config.Bool(true)}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original.DeleteTrailingWhitespace, clone.DeleteTrailingWhitespace)

		*clone.DeleteTrailingWhitespace = false
		assert.True(t, *original.DeleteTrailingWhitespace)
	})

	t.Run("deep copies slices", func(t *testing.T) {
		original := &config.Config{
			Ignore:     []string{"vendor/**"},
			Extensions: []string{".mscl"},
		}

		clone := original.Clone()
		clone.Ignore[0] = "changed"
		clone.Extensions[0] = ".changed"
		assert.Equal(t, "vendor/**", original.Ignore[0])
		assert.Equal(t, ".mscl", original.Extensions[0])
	})

	t.Run("preserves CLI fields", func(t *testing.T) {
		original := config.NewConfig()
		original.Write = true
		original.Check = true
		original.Format = config.FormatJSON
		original.Jobs = 3
		original.NoBackups = true

		clone := original.Clone()
		assert.Equal(t, original, clone)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("round trips file options", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Edition = config.EditionClassic
		cfg.IndentOffset = 2
		cfg.DeleteTrailingBlankLines = config.Bool(false)
		cfg.Write = true

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "edition: classic")
		assert.Contains(t, string(data), "indent_offset: 2")
		assert.NotContains(t, string(data), "delete_trailing_whitespace")

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.EditionClassic, parsed.Edition)
		assert.Equal(t, 2, parsed.IndentOffset)
		require.NotNil(t, parsed.DeleteTrailingBlankLines)
		assert.False(t, *parsed.DeleteTrailingBlankLines)
		assert.False(t, parsed.Write, "CLI fields are not persisted")
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("unset booleans stay nil", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte("edition: modern\n"))
		require.NoError(t, err)
		assert.Nil(t, cfg.DeleteTrailingWhitespace)
		assert.Nil(t, cfg.DeleteTrailingBlankLines)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		_, err := config.FromYAML([]byte("edition: [modern"))
		require.Error(t, err)
	})
}

func TestConfig_EditionDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		edition    config.Edition
		explicit   *bool
		wantDelete bool
	}{
		{"modern keeps", config.EditionModern, nil, false},
		{"classic deletes", config.EditionClassic, nil, true},
		{"explicit wins over classic", config.EditionClassic, config.Bool(false), false},
		{"explicit wins over modern", config.EditionModern, config.Bool(true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.Edition = tt.edition
			cfg.DeleteTrailingWhitespace = tt.explicit
			assert.Equal(t, tt.wantDelete, cfg.TrailingWhitespace())
		})
	}

	cfg := config.NewConfig()
	assert.True(t, cfg.TrailingBlankLines())
	assert.Equal(t, 4, cfg.Offset())
	cfg.IndentOffset = 0
	assert.Equal(t, config.DefaultIndentOffset, cfg.Offset())
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	for _, full := range []bool{false, true} {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: full})
		require.NoError(t, err)

		parsed := &config.Config{}
		require.NoError(t, yaml.Unmarshal(data, parsed), "template must be valid YAML")
		assert.Equal(t, config.EditionModern, parsed.Edition)
		assert.Equal(t, config.DefaultIndentOffset, parsed.IndentOffset)
	}

	data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"indent_offset": 4`)
	assert.True(t, config.FormatDiff.IsValid())
	assert.False(t, config.Edition("future").IsValid())
}
