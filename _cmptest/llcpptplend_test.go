package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/goplus/llcpptpl/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const expectFile = "expect.txt"

type testCase struct {
	name    string
	dir     string
	sources []string
	args    []string
}

var testCases = []testCase{
	{
		name:    "shapes",
		dir:     "./testdata/shapes",
		sources: []string{"main.cc"},
	},
}

func TestEnd2End(t *testing.T) {
	for _, tool := range []string{"clang", "llcpptpl"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not found in PATH", tool)
		}
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			testFrom(t, tc, false)
		})
	}
}

func testFrom(t *testing.T, tc testCase, gen bool) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := filepath.Join(wd, tc.dir)
	require.FileExists(t, filepath.Join(dir, config.LLCPPTPL_CFG))

	var stdout, stderr bytes.Buffer
	args := append([]string{"--color=off"}, tc.sources...)
	args = append(args, tc.args...)
	cmd := exec.Command("llcpptpl", args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	require.NoError(t, cmd.Run(), stderr.String())

	expectPath := filepath.Join(dir, expectFile)
	if gen {
		require.NoError(t, os.WriteFile(expectPath, stdout.Bytes(), 0644))
		return
	}
	expect, err := os.ReadFile(expectPath)
	require.NoError(t, err)
	assert.Equal(t, string(expect), stdout.String())
}
