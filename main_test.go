package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planeScene = `2 1      world size
0 4 5    eye
10
1 1 1
0 5 -5
14
0.1 0.1 0.1
0.5 0.5 0.5
0 0 0
0 1 0
0 -1 0
`

func TestRun_SceneFromStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"2", "2"}, strings.NewReader(planeScene), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.Bytes()
	header := []byte("P6 2 2 255\n")
	require.True(t, bytes.HasPrefix(out, header))
	pixels := out[len(header):]
	assert.Equal(t, []byte{4, 4, 4, 4, 4, 4, 5, 5, 5, 5, 5, 5}, pixels)
	assert.Empty(t, stderr.String(), "warn level stays quiet on success")
}

func TestRun_OutputFileAndFormat(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "plane.txt")
	require.NoError(t, os.WriteFile(scenePath, []byte(planeScene), 0o644))
	output := filepath.Join(dir, "out.png")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-scene", scenePath, "-o", output, "-format", "png", "-v", "8", "6"}, nil, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
	assert.Empty(t, stdout.Bytes())
	assert.Contains(t, stderr.String(), "Rendered image")
	assert.Contains(t, stderr.String(), "stats.primary_rays=48")
}

func TestRun_ExpandsHomeInPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	require.NoError(t, os.WriteFile(filepath.Join(home, "plane.txt"), []byte(planeScene), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-scene", "~/plane.txt", "-o", "~/out.ppm", "2", "2"}, nil, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(filepath.Join(home, "out.ppm"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("P6 2 2 255\n")))
}

func TestRun_Builtin(t *testing.T) {
	for _, name := range []string{"default", "mirrors"} {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run([]string{"-builtin", name, "16", "12"}, nil, &stdout, &stderr)
			require.Equal(t, 0, code, stderr.String())
			assert.Len(t, stdout.Bytes(), len("P6 16 12 255\n")+16*12*3)
		})
	}
}

func TestRun_DebugDump(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-vv", "2", "2"}, strings.NewReader(planeScene), &stdout, &stderr)
	require.Equal(t, 0, code)
	assert.Contains(t, stderr.String(), "msg=projection")
	assert.Contains(t, stderr.String(), "object.type=plane")
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "from-config.bmp")
	configPath := filepath.Join(dir, "render.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"[render]\nformat = \"bmp\"\noutput = \""+filepath.ToSlash(output)+"\"\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", configPath, "2", "2"}, strings.NewReader(planeScene), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("BM")))

	// Flags win over the file
	code = run([]string{"-config", configPath, "-o", "-", "-format", "ppm", "2", "2"}, strings.NewReader(planeScene), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.True(t, bytes.HasPrefix(stdout.Bytes(), []byte("P6")))
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		msg   string
	}{
		{"missing size", []string{"4"}, planeScene, "expected <width> <height>"},
		{"bad width", []string{"wide", "4"}, planeScene, "invalid width"},
		{"too small", []string{"1", "4"}, planeScene, "at least 2 pixels"},
		{"bad format", []string{"-format", "gif", "4", "4"}, planeScene, "gif"},
		{"bad distance", []string{"-max-distance", "0", "4", "4"}, planeScene, "max_distance"},
		{"unknown object", []string{"4", "4"}, planeScene + "18\n", "unknown object type"},
		{"truncated object", []string{"4", "4"}, planeScene + "13\n1 1 1\n", "unexpected end"},
		{"unknown builtin", []string{"-builtin", "teapot", "4", "4"}, "", "unknown built-in scene"},
		{"scene and builtin", []string{"-builtin", "default", "-scene", "x", "4", "4"}, "", "mutually exclusive"},
		{"missing scene file", []string{"-scene", "does-not-exist.txt", "4", "4"}, "", "failed to open scene file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, strings.NewReader(tt.stdin), &stdout, &stderr)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr.String(), tt.msg)
			assert.Empty(t, stdout.Bytes(), "no image on failure")
		})
	}
}

func TestRun_FailureWritesNoFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "never.ppm")
	var stdout, stderr bytes.Buffer
	code := run([]string{"-o", output, "4", "4"}, strings.NewReader(planeScene+"20\n1 1 1\n1 1 1\n0 0 0\n0 1 0\n0 -1 0\n7\n"), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "shader index out of range")
	assert.NoFileExists(t, output)
}

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, levelFromFlags(true, true, true))
	assert.Equal(t, slog.LevelInfo, levelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, levelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, levelFromFlags(false, false, false))
}
