package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeDef(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVersionCmd(t *testing.T) {
	out, _, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)

	out, _, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Go version:")
}

func TestDecoratorsCmd(t *testing.T) {
	out, _, err := run(t, "decorators")
	require.NoError(t, err)
	for _, name := range []string{"Label", "Errors", "HtmlTag", "Fieldset", "Description"} {
		assert.Contains(t, out, name+"\n")
	}

	out, _, err = run(t, "decorators", "--elements")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(strings.TrimSpace(out), "\n"), "textarea")
}

func TestRenderCmd(t *testing.T) {
	dir := t.TempDir()
	path := writeDef(t, dir, "search.yaml", "name: search\nmethod: get\nelements:\n  - {type: text, name: q, validators: [minlength=3]}\n")

	out, _, err := run(t, "render", path)
	require.NoError(t, err)
	assert.Equal(t, `<form name="search" method="get"><input type="text" name="q"/></form>`+"\n", out)

	out, stderr, err := run(t, "render", path, "--set", "q=ab", "--validate")
	require.NoError(t, err)
	assert.Contains(t, out, `value="ab"`)
	assert.Contains(t, stderr, "form is invalid")

	target := filepath.Join(dir, "out.html")
	_, _, err = run(t, "render", path, "-o", target)
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<form name="search"`)
}

func TestRenderCmdSelectsForm(t *testing.T) {
	dir := t.TempDir()
	writeDef(t, dir, "a.yaml", "name: a\n")
	writeDef(t, dir, "b.yaml", "name: b\naction: /b\n")

	_, _, err := run(t, "render", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "choose one with --form")

	out, _, err := run(t, "render", dir, "--form", "b")
	require.NoError(t, err)
	assert.Contains(t, out, `action="/b"`)

	_, _, err = run(t, "render", dir, "--form", "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "X001")
}

func TestRenderCmdErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeDef(t, dir, "bad.yaml", "name: bad\nelements:\n  - {type: slider, name: s}\n")

	_, _, err := run(t, "render", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "F002")

	good := writeDef(t, dir, "good.yaml", "name: good\n")
	_, _, err = run(t, "render", good, "--set", "novalue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name=value")
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	writeDef(t, dir, "f.yaml", "name: f\nelements:\n  - {type: text, name: a}\n  - {type: text, name: b}\n")
	cfgPath := writeDef(t, dir, "htmlkit.yaml", "render:\n  pretty: true\nforms: [f.yaml]\n")

	out, _, err := run(t, "--config", cfgPath, "render")
	require.NoError(t, err)
	assert.Equal(t, "<form name=\"f\" method=\"post\"><input type=\"text\" name=\"a\"/>\n<input type=\"text\" name=\"b\"/></form>\n", out)

	_, _, err = run(t, "--config", cfgPath, "--log-level", "loud", "render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "C003")

	_, _, err = run(t, "--config", filepath.Join(dir, "missing.yaml"), "render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "C001")
}

func TestInitCmd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "support")
	out, _, err := run(t, "init", dir, "--template", "contact")
	require.NoError(t, err)
	assert.Contains(t, out, "Created contact project")

	out, _, err = run(t, "--config", filepath.Join(dir, "htmlkit.yaml"), "render", filepath.Join(dir, "forms"))
	require.NoError(t, err)
	assert.Contains(t, out, `<form name="contact" method="post">`)
	assert.Contains(t, out, "<strong>no</strong>")

	out, _, err = run(t, "init", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "signup")

	_, _, err = run(t, "init", t.TempDir(), "--template", "wizard")
	assert.ErrorContains(t, err, "X003")
}
