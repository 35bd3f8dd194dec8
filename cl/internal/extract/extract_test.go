package extract_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/goplus/llcpptpl/ast"
	"github.com/goplus/llcpptpl/cl/internal/extract"
	"github.com/goplus/llcpptpl/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mainFile = "main.cc"

func classTemplate(name, file string, params ...string) *ast.ClassTemplateDecl {
	tmpl := &ast.ClassTemplateDecl{
		DeclBase: ast.DeclBase{Loc: &ast.Location{File: file, Line: 1, Column: 7}},
		Name:     name,
	}
	for _, p := range params {
		tmpl.Params = append(tmpl.Params, &ast.TemplateParam{Name: p})
	}
	tmpl.Record = &ast.RecordDecl{
		DeclBase:     tmpl.DeclBase,
		Name:         name,
		TagUsed:      "class",
		IsDefinition: true,
		Template:     tmpl,
	}
	return tmpl
}

func construct(tmpl *ast.ClassTemplateDecl, spelling, desugared string, file string, line int) *ast.ConstructExpr {
	typ := &ast.QualType{Spelling: spelling, Desugared: desugared}
	if tmpl != nil {
		typ.Decl = &ast.RecordDecl{Name: tmpl.Name, Pattern: tmpl.Record}
	} else {
		typ.Decl = &ast.RecordDecl{Name: spelling}
	}
	return &ast.ConstructExpr{
		Type: typ,
		Loc:  &ast.Location{File: file, Line: line, Column: 3},
	}
}

func unitOf(exprs ...*ast.ConstructExpr) *ast.MemUnit {
	return &ast.MemUnit{Main: mainFile, Exprs: exprs}
}

func types(reg extract.Registry) []string {
	var ret []string
	for _, inst := range reg.Sorted() {
		ret = append(ret, inst.Type)
	}
	return ret
}

func TestExtract(t *testing.T) {
	vector := classTemplate("vector", "/usr/include/c++/13/bits/stl_vector.h", "_Tp", "_Alloc")
	pair := classTemplate("Pair", "pair.h", "T1", "T2")
	local := classTemplate("Local", mainFile, "T")

	tests := []struct {
		name  string
		exprs []*ast.ConstructExpr
		want  []string
	}{
		{
			name: "isolation",
			exprs: []*ast.ConstructExpr{
				construct(vector, "std::vector<char>", "", "other.h", 3),
				construct(vector, "std::vector<int>", "", mainFile, 4),
			},
			want: []string{"std::vector<int>"},
		},
		{
			name: "self reference",
			exprs: []*ast.ConstructExpr{
				construct(local, "Local<int>", "", mainFile, 5),
			},
			want: nil,
		},
		{
			name: "dedup",
			exprs: []*ast.ConstructExpr{
				construct(vector, "std::vector<int>", "", mainFile, 4),
				construct(vector, "IntVec", "std::vector<int>", mainFile, 9),
				construct(vector, "const std::vector<int>", "", mainFile, 12),
			},
			want: []string{"std::vector<int>"},
		},
		{
			name: "multi argument",
			exprs: []*ast.ConstructExpr{
				construct(pair, "Pair<int, float>", "", mainFile, 2),
			},
			want: []string{"Pair<int, float>"},
		},
		{
			name: "ordinary class",
			exprs: []*ast.ConstructExpr{
				construct(nil, "Plain", "", mainFile, 2),
				{Type: &ast.QualType{Spelling: "int"}, Loc: &ast.Location{File: mainFile}},
				{Loc: &ast.Location{File: mainFile}},
			},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := extract.Extract(unitOf(tt.exprs...), nil)
			assert.Equal(t, tt.want, types(reg), spew.Sdump(reg))
		})
	}
}

func TestResolve(t *testing.T) {
	pair := classTemplate("Pair", "/inc/pair.h", "T1", "T2")
	expr := construct(pair, "Pair<int, float>", "", mainFile, 2)

	inst, ok := extract.Resolve(unitOf(), expr)
	require.True(t, ok)
	assert.Equal(t, &extract.Instantiation{
		Type:     "Pair<int, float>",
		Source:   "/inc/pair.h",
		Template: "Pair",
		Params:   []string{"T1", "T2"},
		Loc:      expr.Loc,
	}, inst)

	// the described template is only reachable through the pattern
	broken := construct(pair, "Pair<int, int>", "", mainFile, 3)
	broken.Type.Decl = &ast.RecordDecl{Name: "Pair", Pattern: &ast.RecordDecl{Name: "Pair"}}
	_, ok = extract.Resolve(unitOf(), broken)
	assert.False(t, ok)

	direct := construct(nil, "Pair<int, int>", "", mainFile, 3)
	direct.Type.Decl.Template = pair
	_, ok = extract.Resolve(unitOf(), direct)
	assert.False(t, ok)
}

func TestExtractLastWriteWins(t *testing.T) {
	a := classTemplate("Box", "a/box.h", "T")
	b := classTemplate("Box", "b/box.h", "T")
	var matched []string
	reg := extract.Extract(unitOf(
		construct(a, "Box<int>", "", mainFile, 1),
		construct(b, "Box<int>", "", mainFile, 2),
	), func(inst *extract.Instantiation) {
		matched = append(matched, inst.Source)
	})
	require.Len(t, reg, 1)
	assert.Equal(t, "b/box.h", reg["Box<int>"].Source)
	assert.Equal(t, []string{"a/box.h", "b/box.h"}, matched)
}

func TestExtractIdempotent(t *testing.T) {
	vector := classTemplate("vector", "stl_vector.h", "_Tp", "_Alloc")
	set := classTemplate("set", "stl_set.h", "_Key", "_Compare", "_Alloc")
	unit := unitOf(
		construct(set, "std::set<int>", "", mainFile, 1),
		construct(vector, "std::vector<int>", "", mainFile, 2),
		construct(vector, "std::vector<float>", "", mainFile, 3),
	)
	first := extract.Extract(unit, nil)
	second := extract.Extract(unit, nil)
	assert.Equal(t, first, second)
	assert.Equal(t, types(first), types(second))
	assert.Equal(t, []string{"stl_set.h", "stl_vector.h"}, first.Headers())
}

func TestCanonicalize(t *testing.T) {
	reg := extract.Registry{
		"std::vector<int>": {Type: "std::vector<int>", Source: "/usr/include/c++/13/bits/stl_vector.h"},
		"std::set<int>":    {Type: "std::set<int>", Source: `C:\msys\include\c++\bits\stl_set.h`},
		"Foo<int>":         {Type: "Foo<int>", Source: "include/foo.h"},
		"Bar<int>":         {Type: "Bar<int>", Source: ""},
		"Mine<int>":        {Type: "Mine<int>", Source: "detail/mine_impl.h"},
	}
	table := config.NewHeaderTable(map[string]string{"mine_impl.h": "mine.h"})

	got := extract.Canonicalize(reg, table)
	want := map[string]string{
		"std::vector<int>": "vector",
		"std::set<int>":    "set",
		"Foo<int>":         "include/foo.h",
		"Bar<int>":         "",
		"Mine<int>":        "mine.h",
	}
	for typ, header := range want {
		require.Contains(t, got, typ)
		assert.Equal(t, header, got[typ].Source, typ)
	}
	// the input is left untouched
	assert.Equal(t, "/usr/include/c++/13/bits/stl_vector.h", reg["std::vector<int>"].Source)
	assert.Equal(t, "include/foo.h", reg["Foo<int>"].Source)
}

func TestRegistryMerge(t *testing.T) {
	a := extract.Registry{
		"A<int>": {Type: "A<int>", Source: "a.h"},
		"C<int>": {Type: "C<int>", Source: "old.h"},
	}
	b := extract.Registry{
		"B<int>": {Type: "B<int>", Source: "b.h"},
		"C<int>": {Type: "C<int>", Source: "new.h"},
	}
	a.Merge(b)
	assert.Equal(t, []string{"A<int>", "B<int>", "C<int>"}, types(a))
	assert.Equal(t, "new.h", a["C<int>"].Source)
	assert.Equal(t, []string{"a.h", "b.h", "new.h"}, a.Headers())
}
