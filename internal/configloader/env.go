package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/msclfmt/pkg/config"
)

// envVarPrefix is the prefix for all msclfmt environment variables.
const envVarPrefix = "MSCLFMT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"EDITION":                     {field: "edition", typ: envTypeString},
	"INDENT_OFFSET":               {field: "indent_offset", typ: envTypeInt},
	"DELETE_TRAILING_WHITESPACE":  {field: "delete_trailing_whitespace", typ: envTypeBool},
	"DELETE_TRAILING_BLANK_LINES": {field: "delete_trailing_blank_lines", typ: envTypeBool},
	"EXTENSIONS":                  {field: "extensions", typ: envTypeSlice},
	"IGNORE":                      {field: "ignore", typ: envTypeSlice},
	"JOBS":                        {field: "jobs", typ: envTypeInt},
	"FORMAT":                      {field: "format", typ: envTypeString},
	"BACKUPS_ENABLED":             {field: "backups.enabled", typ: envTypeBool},
	"BACKUPS_MODE":                {field: "backups.mode", typ: envTypeString},
	"NO_BACKUPS":                  {field: "no_backups", typ: envTypeBool},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MSCLFMT_ (e.g., MSCLFMT_EDITION).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "edition":
		cfg.Edition = config.Edition(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "delete_trailing_whitespace":
		cfg.DeleteTrailingWhitespace = config.Bool(value)
	case "delete_trailing_blank_lines":
		cfg.DeleteTrailingBlankLines = config.Bool(value)
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "indent_offset":
		cfg.IndentOffset = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"MSCLFMT_EDITION":                     "Edition defaults: classic or modern",
		"MSCLFMT_INDENT_OFFSET":               "Columns per nesting level",
		"MSCLFMT_DELETE_TRAILING_WHITESPACE":  "Strip trailing whitespace: true or false",
		"MSCLFMT_DELETE_TRAILING_BLANK_LINES": "Strip trailing blank lines: true or false",
		"MSCLFMT_EXTENSIONS":                  "Comma-separated list of MSCL file extensions",
		"MSCLFMT_IGNORE":                      "Comma-separated list of ignore patterns",
		"MSCLFMT_JOBS":                        "Number of parallel workers (0 = auto)",
		"MSCLFMT_FORMAT":                      "Output format: text, diff, or json",
		"MSCLFMT_BACKUPS_ENABLED":             "Enable backups when writing: true or false",
		"MSCLFMT_BACKUPS_MODE":                "Backup mode: sidecar or none",
		"MSCLFMT_NO_BACKUPS":                  "Disable backups: true or false",
	}
}
