package cli

import (
	"bytes"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/terrain-viewer/internal/assets"
	"github.com/Faultbox/terrain-viewer/internal/config"
	"github.com/Faultbox/terrain-viewer/internal/logger"
)

// sandbox isolates a test from config files in the working directory and
// the user's config dir.
func sandbox(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(logger.InitNop)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func quadDataset(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, assets.Save(path, &assets.Dataset{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 0, 1, 1, 1, 1},
		Indices:  []uint32{0, 2, 1, 1, 2, 3},
	}))
}

func TestPresetsCommand(t *testing.T) {
	sandbox(t)

	out, err := execute(t, "presets")
	require.NoError(t, err)

	for _, want := range []string{"dataset", "grassy", "heightmap", "100x100/100", "128x128/100", "#4caf50", "static"} {
		assert.Contains(t, out, want)
	}
}

func TestGenerateToStdout(t *testing.T) {
	sandbox(t)

	out, err := execute(t, "generate", "--resolution", "4", "--size", "10", "--seed", "3", "--out", "-")
	require.NoError(t, err)

	d, err := assets.Decode(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, d.Vertices, 4*4*3)
	assert.Len(t, d.Indices, 3*3*2*3)
}

func TestGenerateFileIsDeterministicPerSeed(t *testing.T) {
	sandbox(t)

	_, err := execute(t, "generate", "--preset", "heightmap", "--resolution", "6", "--seed", "9", "-o", "a.json")
	require.NoError(t, err)
	_, err = execute(t, "generate", "--preset", "heightmap", "--resolution", "6", "--seed", "9", "-o", "b.json")
	require.NoError(t, err)

	a, err := assets.Load("a.json")
	require.NoError(t, err)
	b, err := assets.Load("b.json")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a.Vertices, 6*6*3)
}

func TestGenerateRejectsStaticPreset(t *testing.T) {
	sandbox(t)

	_, err := execute(t, "generate", "--preset", "dataset", "--dataset", "x.json")
	require.Error(t, err)
}

func TestInfoDataset(t *testing.T) {
	sandbox(t)
	quadDataset(t, "quad.json")

	out, err := execute(t, "info", "quad.json", "--up-axis", "y")
	require.NoError(t, err)
	assert.Contains(t, out, "source:    quad.json")
	assert.Contains(t, out, "vertices:  4")
	assert.Contains(t, out, "triangles: 2")
	assert.Contains(t, out, "up axis:   y")
	assert.Contains(t, out, "heights:   -0.500 .. 0.500")
}

func TestInfoProcedural(t *testing.T) {
	sandbox(t)

	out, err := execute(t, "info", "--preset", "heightmap", "--resolution", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "source:    heightmap")
	assert.Contains(t, out, "vertices:  25")
	assert.Contains(t, out, "triangles: 32")
}

func TestInfoMissingDataset(t *testing.T) {
	sandbox(t)

	_, err := execute(t, "info", "missing.json")
	require.Error(t, err)
}

func TestPreviewPNG(t *testing.T) {
	sandbox(t)

	_, err := execute(t, "preview", "--preset", "heightmap", "--resolution", "8", "--width", "32", "-o", "out/p.png")
	require.NoError(t, err)

	f, err := os.Open("out/p.png")
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestPreviewBMPToStdout(t *testing.T) {
	sandbox(t)

	out, err := execute(t, "preview", "--resolution", "4", "--width", "16", "--height", "8",
		"--mode", "gradient", "--time", "2", "--smooth", "0.8", "--format", "bmp", "-o", "-")
	require.NoError(t, err)

	img, err := bmp.Decode(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestPreviewRejectsBadInput(t *testing.T) {
	sandbox(t)

	_, err := execute(t, "preview", "--mode", "sparkle", "-o", "p.png")
	assert.Error(t, err)

	_, err = execute(t, "preview", "--color", "not-a-colour", "-o", "p.png")
	assert.Error(t, err)

	_, err = execute(t, "preview", "--format", "gif", "-o", "p.png")
	assert.Error(t, err)

	_, err = execute(t, "preview", "--width", "1", "-o", "p.png")
	assert.Error(t, err)
}

func TestConfigFileAndEnvOverrides(t *testing.T) {
	sandbox(t)
	require.NoError(t, os.WriteFile("config.yaml", []byte("terrain:\n  resolution: 3\n"), 0644))

	out, err := execute(t, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "vertices:  9")

	t.Setenv("TERRAIN_TERRAIN_RESOLUTION", "4")
	out, err = execute(t, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "vertices:  16")

	out, err = execute(t, "info", "--resolution", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "vertices:  25")
}

func TestExplicitConfigMustExist(t *testing.T) {
	sandbox(t)

	_, err := execute(t, "--config", "missing.yaml", "presets")
	require.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	sandbox(t)

	_, err := execute(t, "--log-level", "chatty", "presets")
	require.Error(t, err)
}

func TestInitWritesConfig(t *testing.T) {
	sandbox(t)

	out, err := execute(t, "init", "--preset", "heightmap", "--seed", "9")
	require.NoError(t, err)
	path := strings.TrimSpace(out)
	assert.Equal(t, config.DefaultPath(), path)

	// The written file is picked up by later runs.
	out, err = execute(t, "info", "--resolution", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "heightmap")

	_, err = execute(t, "init")
	require.Error(t, err, "existing config should be kept")

	_, err = execute(t, "init", "--force")
	require.NoError(t, err)
}

func TestInitExplicitPath(t *testing.T) {
	sandbox(t)

	_, err := execute(t, "init", "nested/terrain.yaml", "--resolution", "12")
	require.NoError(t, err)

	_, err = execute(t, "--config", "nested/terrain.yaml", "info")
	require.NoError(t, err)

	data, err := os.ReadFile("nested/terrain.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "resolution: 12")

	_, err = execute(t, "init", "bad.yaml", "--up-axis", "w")
	assert.Error(t, err)
	assert.NoFileExists(t, "bad.yaml")
}
