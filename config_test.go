package transcoder

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/transcoder/types"
)

func TestLoadConfig(t *testing.T) {
	var testCases = []struct {
		description string
		file        string
		content     string
		expect      *Config
		hasError    bool
	}{
		{
			description: "toml",
			file:        "mapper.toml",
			content: `tracing = true
timeLayout = "2006-01-02"
immutables = ["uuid.UUID"]
logLevel = "debug"
`,
			expect: &Config{Tracing: true, TimeLayout: "2006-01-02", Immutables: []string{"uuid.UUID"}, LogLevel: "debug"},
		},
		{
			description: "yaml",
			file:        "mapper.yaml",
			content: `accessUnexported: true
dateFormat: yyyy-MM-dd
unmatchedAsNil: true
`,
			expect: &Config{AccessUnexported: true, DateFormat: "yyyy-MM-dd", UnmatchedAsNil: true},
		},
		{description: "unsupported extension", file: "mapper.json", content: `{}`, hasError: true},
		{description: "invalid toml", file: "broken.toml", content: `tracing = `, hasError: true},
	}

	for _, testCase := range testCases {
		location := filepath.Join(t.TempDir(), testCase.file)
		require.Nil(t, os.WriteFile(location, []byte(testCase.content), 0o644), testCase.description)
		actual, err := LoadConfig(location)
		if testCase.hasError {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotNil(t, err)
}

func TestConfig_Options(t *testing.T) {
	cfg := &Config{DateFormat: "yyyy-MM-dd", UnmatchedAsNil: true, Immutables: []string{"uuid.UUID"}, LogLevel: "warn"}
	opts, err := cfg.Options()
	require.Nil(t, err)
	mapper := New(opts...)

	actual, err := mapper.Map(time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC), types.For[string]())
	require.Nil(t, err)
	assert.Equal(t, "2024-02-03", actual)

	actual, err = mapper.Map(struct{}{}, types.For[int]())
	require.Nil(t, err)
	assert.Nil(t, actual)

	id := uuid.New()
	actual, err = mapper.Map(id, types.For[uuid.UUID]())
	require.Nil(t, err)
	assert.Equal(t, id, actual)

	_, err = (&Config{Immutables: []string{"unknown.Type"}}).Options()
	assert.NotNil(t, err)
	_, err = (&Config{LogLevel: "loud"}).Options()
	assert.NotNil(t, err)
}
