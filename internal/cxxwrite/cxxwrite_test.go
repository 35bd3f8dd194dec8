package cxxwrite

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goplus/llcpptpl/cl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() cl.Registry {
	return cl.Registry{
		"std::vector<int>":         {Type: "std::vector<int>", Source: "vector"},
		"std::set<std::string>":    {Type: "std::set<std::string>", Source: "set"},
		"std::vector<double>":      {Type: "std::vector<double>", Source: "vector"},
		"detail::Box<int, char>":   {Type: "detail::Box<int, char>", Source: ""},
		"std::unique_ptr<Widget>":  {Type: "std::unique_ptr<Widget>", Source: "memory"},
		"std::map<int, long long>": {Type: "std::map<int, long long>", Source: "map"},
	}
}

func TestWriteInstances(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInstances(&buf, testRegistry()))
	assert.Equal(t, `#include "map"
#include "memory"
#include "set"
#include "vector"

template class detail::Box<int, char>;
template class std::map<int, long long>;
template class std::set<std::string>;
template class std::unique_ptr<Widget>;
template class std::vector<double>;
template class std::vector<int>;
`, buf.String())
}

func TestWriteExtern(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExtern(&buf, cl.Registry{
		"std::vector<int>": {Type: "std::vector<int>", Source: "vector"},
	}))
	assert.Equal(t, "#pragma once\n\nextern template class std::vector<int>;\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteExtern(&buf, cl.NewRegistry()))
	assert.Equal(t, "#pragma once\n\n", buf.String())
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "extern_templates.hpp")
	reg := cl.Registry{"Foo<int>": {Type: "Foo<int>", Source: "foo.h"}}
	require.NoError(t, WriteFile(out, reg, WriteExtern))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, GeneratedHeader+"#pragma once\n\nextern template class Foo<int>;\n", string(data))

	err = WriteFile(filepath.Join(dir, "missing", "x.cc"), reg, WriteInstances)
	assert.Error(t, err)
}
