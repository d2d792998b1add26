// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestMigrateCommand_OnDisk(t *testing.T) {
	root := t.TempDir()
	notes := filepath.Join(root, "notes")
	posts := filepath.Join(root, "_notes")
	media := filepath.Join(root, "media")
	require.NoError(t, os.MkdirAll(posts, 0o755))
	require.NoError(t, os.MkdirAll(media, 0o755))

	writeFile(t, filepath.Join(notes, "Note A.html"),
		`<html><head><title>Hi</title><meta name="created" content="2020-01-01"></head>`+
			`<body>See <img src="Note%20A.resources/x.png"></body></html>`)
	writeFile(t, filepath.Join(notes, "Note A.resources", "x.png"), "png-bytes")

	_, err := execute(t, "migrate",
		"--input-dir", notes,
		"--posts-dir", posts,
		"--media-dir", media,
		"--log-level", "error",
	)
	require.NoError(t, err)

	out, err := os.ReadFile(filepath.Join(posts, "Note-A.html"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "title: Hi\n")
	assert.Contains(t, string(out), "created: '2020-01-01'\n")
	assert.Contains(t, string(out), media+"/x.png")

	png, err := os.ReadFile(filepath.Join(media, "x.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(png))

	_, err = os.Stat(notes)
	assert.True(t, os.IsNotExist(err), "input directory should be removed")

	// Inspect reads the header back.
	stdout, err := execute(t, "inspect", filepath.Join(posts, "Note-A.html"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "title: Hi\n")
	assert.Contains(t, stdout, "# 2 fields")
}

func TestInspectCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "inspect", filepath.Join(t.TempDir(), "absent.html"))
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	stdout, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "notemigrate dev\n", stdout)
}
