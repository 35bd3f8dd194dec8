package cl_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/goplus/llcpptpl/ast"
	"github.com/goplus/llcpptpl/cl"
	"github.com/goplus/llcpptpl/config"
	"github.com/goplus/llcpptpl/internal/clangast"
	"github.com/goplus/llcpptpl/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func templateIn(name, file string, params ...string) *ast.RecordDecl {
	tmpl := &ast.ClassTemplateDecl{
		DeclBase: ast.DeclBase{Loc: &ast.Location{File: file, Line: 2, Column: 7, IncludedFrom: "main.cc"}},
		Name:     name,
	}
	for _, p := range params {
		tmpl.Params = append(tmpl.Params, &ast.TemplateParam{Name: p})
	}
	tmpl.Record = &ast.RecordDecl{DeclBase: tmpl.DeclBase, Name: name, Template: tmpl}
	return tmpl.Record
}

func run(t *testing.T, unit ast.Unit) string {
	t.Helper()
	reg := cl.Extract(&cl.ExtractConfig{
		Unit:    unit,
		Headers: config.DefaultHeaderTable(),
	})
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, reg))
	return buf.String()
}

func TestNestedTemplateArguments(t *testing.T) {
	templateClass := templateIn("TemplateClass", "a.h", "T1", "T2")
	templateIn("Other", "b.h", "T")

	unit := &ast.MemUnit{Main: "main.cc", Exprs: []*ast.ConstructExpr{{
		Type: &ast.QualType{
			Spelling: "TemplateClass<int, Other<float> >",
			Decl:     &ast.RecordDecl{Name: "TemplateClass", Pattern: templateClass},
		},
		Loc: &ast.Location{File: "main.cc", Line: 4, Column: 39},
	}}}
	assert.Equal(t, "template TemplateClass<int, Other<float>>\n\n#include \"a.h\"\n", run(t, unit))
}

func TestLocalTemplate(t *testing.T) {
	local := templateIn("Local", "main.cc", "T")
	local.Loc.IncludedFrom = ""

	unit := &ast.MemUnit{Main: "main.cc", Exprs: []*ast.ConstructExpr{{
		Type: &ast.QualType{Spelling: "Local<int>", Decl: &ast.RecordDecl{Name: "Local", Pattern: local}},
		Loc:  &ast.Location{File: "main.cc", Line: 8, Column: 3},
	}}}
	assert.Equal(t, "\n", run(t, unit))
}

func TestExtractFromDump(t *testing.T) {
	f, err := os.Open("../internal/clangast/testdata/unit.json")
	require.NoError(t, err)
	defer f.Close()
	unit, err := clangast.Parse(f, "main.cc")
	require.NoError(t, err)

	var matched []string
	reg := cl.Extract(&cl.ExtractConfig{
		Unit:    unit,
		Headers: config.NewHeaderTable(map[string]string{"tpl.hpp": "tpl.h"}),
		OnMatch: func(inst *cl.Instantiation) {
			matched = append(matched, inst.Loc.String()+" "+inst.Template)
		},
	})
	assert.Equal(t, []string{"main.cc:7:47 TemplateClass", "main.cc:8:7 vector"}, matched)

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, reg))
	assert.Equal(t, `template lib::TemplateClass<int, lib::Other<float>>
template std::vector<int>

#include "tpl.h"
`, buf.String())
}

func TestExtractSkipsSpecializations(t *testing.T) {
	f, err := os.Open("../internal/clangast/testdata/specialization.json")
	require.NoError(t, err)
	defer f.Close()
	unit, err := clangast.Parse(f, "main.cc")
	require.NoError(t, err)

	reg := cl.Extract(&cl.ExtractConfig{Unit: unit})
	var got []string
	for _, inst := range reg.Sorted() {
		got = append(got, inst.Type+" @ "+inst.Source)
	}
	assert.Equal(t, []string{"Box<char> @ ./box.hpp", "Box<long> @ ./box.hpp"}, got)
}

func TestCanonicalizeKeepsInput(t *testing.T) {
	reg := cl.Registry{"std::vector<int>": {Type: "std::vector<int>", Source: "bits/stl_vector.h"}}
	got := cl.Canonicalize(reg, config.DefaultHeaderTable())
	assert.Equal(t, "vector", got["std::vector<int>"].Source)
	assert.Equal(t, "bits/stl_vector.h", reg["std::vector<int>"].Source)
}
