package clangast

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goplus/llcpptpl/ast"
)

// Unit is a translation unit decoded from clang's JSON AST dump.
// It is immutable once Parse returns and may be shared between goroutines.
type Unit struct {
	main  string
	exprs []*ast.ConstructExpr

	templates map[string][]*ast.ClassTemplateDecl // qualified name -> decls
	byName    map[string][]*ast.ClassTemplateDecl // unqualified name -> decls
	records   map[string]*ast.RecordDecl          // canonical type -> record

	specs       map[string][]*specialization // qualified template name -> specializations
	specsByName map[string][]*specialization
	partials    map[string]bool // locations of partial specializations
}

// Parse decodes a JSON AST dump of mainFile.
func Parse(r io.Reader, mainFile string) (*Unit, error) {
	var root node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to decode ast of %s: %w", mainFile, err)
	}
	if root.Kind != kindTranslationUnit {
		return nil, fmt.Errorf("failed to decode ast of %s: unexpected root %q", mainFile, root.Kind)
	}
	u := &Unit{
		main:      mainFile,
		templates: make(map[string][]*ast.ClassTemplateDecl),
		byName:    make(map[string][]*ast.ClassTemplateDecl),
		records:   make(map[string]*ast.RecordDecl),

		specs:       make(map[string][]*specialization),
		specsByName: make(map[string][]*specialization),
		partials:    make(map[string]bool),
	}
	b := &builder{unit: u}
	b.walkInner(&root)
	for _, expr := range u.exprs {
		if expr.Type != nil {
			expr.Type.Decl = u.recordOf(expr.Type.Canonical())
		}
	}
	logf("parsed %s: %d construct exprs, %d class templates", mainFile, len(u.exprs), len(u.templates))
	return u, nil
}

func (u *Unit) MainFile() string { return u.main }

func (u *Unit) IsInMainFile(loc *ast.Location) bool {
	if loc == nil || loc.File == "" {
		return false
	}
	if loc.File == u.main {
		return true
	}
	return loc.IncludedFrom == "" && !isBuiltinBuffer(loc.File)
}

func (u *Unit) VisitConstructExprs(fn func(expr *ast.ConstructExpr)) {
	for _, expr := range u.exprs {
		fn(expr)
	}
}

// LookupTemplate returns the class template with the given qualified name,
// preferring the declaration that carries the definition.
func (u *Unit) LookupTemplate(qualName string) *ast.ClassTemplateDecl {
	if decls := u.templates[qualName]; len(decls) > 0 {
		return preferDefinition(decls)
	}
	parts := ast.SplitScope(qualName)
	if decls := u.byName[parts[len(parts)-1]]; len(decls) > 0 && sameTemplate(decls) {
		return preferDefinition(decls)
	}
	return nil
}

func preferDefinition(decls []*ast.ClassTemplateDecl) *ast.ClassTemplateDecl {
	for _, decl := range decls {
		if decl.Record != nil && decl.Record.IsDefinition {
			return decl
		}
	}
	return decls[0]
}

// sameTemplate reports whether decls all redeclare one template, i.e. an
// unqualified lookup is unambiguous.
func sameTemplate(decls []*ast.ClassTemplateDecl) bool {
	for _, decl := range decls[1:] {
		if qualifiedName(decl) != qualifiedName(decls[0]) {
			return false
		}
	}
	return true
}

func qualifiedName(d ast.Decl) string {
	var parts []string
	for d != nil {
		if name := d.DeclName(); name != "" {
			parts = append([]string{name}, parts...)
		}
		d = parent(d)
	}
	return strings.Join(parts, "::")
}

func parent(d ast.Decl) ast.Decl {
	switch d := d.(type) {
	case *ast.NamedDecl:
		return d.Parent
	case *ast.RecordDecl:
		return d.Parent
	case *ast.ClassTemplateDecl:
		return d.Parent
	}
	return nil
}

// recordOf returns the record declaration behind a canonical type spelling.
// Instantiations are synthesized once per canonical type and point at the
// templated record of their class template. Explicit specializations and
// types generated from a partial specialization are ordinary records.
func (u *Unit) recordOf(canon string) *ast.RecordDecl {
	if canon == "" || strings.HasSuffix(canon, "]") || strings.HasSuffix(canon, "*") {
		return nil
	}
	if rec, ok := u.records[canon]; ok {
		return rec
	}
	parts := ast.SplitScope(canon)
	name, args, isSpec := ast.SplitTemplateArgs(parts[len(parts)-1])
	rec := &ast.RecordDecl{Name: name}
	if isSpec {
		scope := make([]string, 0, len(parts))
		for _, p := range parts[:len(parts)-1] {
			n, _, _ := ast.SplitTemplateArgs(p)
			scope = append(scope, n)
		}
		qualName := strings.Join(append(scope, name), "::")
		tmpl := u.LookupTemplate(qualName)
		if tmpl == nil || tmpl.Record == nil {
			logf("no class template found for %s", canon)
			u.records[canon] = rec
			return rec
		}
		rec.Args = args
		rec.TagUsed = tmpl.Record.TagUsed
		rec.Parent = tmpl.Parent
		if u.isInstantiation(tmpl, qualName, name, args) {
			rec.Pattern = tmpl.Record
		} else {
			logf("%s is a specialization of %s, not an instantiation", canon, tmpl.Name)
		}
	}
	u.records[canon] = rec
	return rec
}

func (u *Unit) isInstantiation(tmpl *ast.ClassTemplateDecl, qualName, name string, args []string) bool {
	spec := u.lookupSpecialization(qualName, name, args)
	return spec == nil || spec.instantiated(tmpl, u.partials)
}
