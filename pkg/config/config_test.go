package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0.30, cfg.Thresholds.SimilarityFloor)
	assert.Equal(t, 0.75, cfg.Thresholds.ReviewThreshold)
	assert.Equal(t, 15, cfg.Thresholds.MinTokens)
	assert.Equal(t, "duplication_report.mmd", cfg.Output.ReportFile)
	assert.Contains(t, cfg.Exclude.Dirs, "venv")
	assert.Contains(t, cfg.Exclude.Dirs, ".git")
}

func TestLoadTOML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "dupmap.toml")
	content := `[thresholds]
similarity_floor = 0.5
review_threshold = 0.9
min_tokens = 30

[output]
report_file = "out.mmd"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Thresholds.SimilarityFloor)
	assert.Equal(t, 0.9, cfg.Thresholds.ReviewThreshold)
	assert.Equal(t, 30, cfg.Thresholds.MinTokens)
	assert.Equal(t, "out.mmd", cfg.Output.ReportFile)

	// Unspecified sections keep defaults.
	assert.Contains(t, cfg.Exclude.Dirs, "venv")
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "dupmap.yaml")
	content := `thresholds:
  min_tokens: 25
exclude:
  dirs:
    - venv
    - tmp
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Thresholds.MinTokens)
	assert.Equal(t, []string{"venv", "tmp"}, cfg.Exclude.Dirs)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.toml")
	assert.Error(t, err)
}

func TestShouldExcludeSubstring(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.ShouldExclude("project/venv/lib/site.py"))
	assert.True(t, cfg.ShouldExclude("project/.git/hooks/sample.py"))
	assert.True(t, cfg.ShouldExclude("node_modules/pkg/index.js"))

	// Substring semantics: markers match anywhere in the path, so
	// unrelated names containing a marker as a prefix are excluded too.
	assert.True(t, cfg.ShouldExclude("project/venvs/tool.py"))
	assert.True(t, cfg.ShouldExclude("project/environment/app.py"))

	assert.False(t, cfg.ShouldExclude("project/src/app.py"))
}
