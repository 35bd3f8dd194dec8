package clangast

import (
	"strings"

	"github.com/goplus/llcpptpl/ast"
)

type scope struct {
	name        string
	transparent bool // inline or anonymous namespace
}

// builder walks the dump in document order. Locations must be consumed for
// every node, including the ones it ignores, to keep locTracker in sync.
type builder struct {
	unit   *Unit
	locs   locTracker
	scopes []scope
	ctx    ast.Decl

	owner    *ast.ClassTemplateDecl // set while walking direct children of a class template
	injected *ast.Location          // injected-class-name of the record being walked
}

func (b *builder) walkInner(n *node) {
	for _, child := range n.Inner {
		b.walk(child)
	}
}

func (b *builder) walk(n *node) {
	if n == nil {
		return
	}
	owner := b.owner
	b.owner = nil

	loc := b.locs.resolve(n.Loc)
	begin := b.locs.resolveRange(n.Range)

	switch n.Kind {
	case kindConstructExpr, kindTemporaryObjectEx:
		b.unit.exprs = append(b.unit.exprs, &ast.ConstructExpr{
			Type:    newQualType(n.Type),
			Loc:     begin,
			Context: b.ctx,
		})
		b.walkInner(n)
	case kindTypeParam, kindNonTypeParam, kindTemplateParam:
		if owner != nil {
			owner.Params = append(owner.Params, &ast.TemplateParam{Name: n.Name})
		}
		b.walkInner(n)
	case kindClassTemplate:
		b.classTemplate(n, loc)
	case kindNamespace:
		ns := &ast.NamedDecl{
			DeclBase: ast.DeclBase{Loc: loc, Parent: b.ctx},
			Kind:     n.Kind,
			Name:     n.Name,
		}
		s := scope{name: n.Name, transparent: n.IsInline}
		if n.Name == "" {
			s = scope{name: "(anonymous namespace)", transparent: true}
		}
		b.nested(n, ns, &s)
	case kindRecord, kindSpecialization, kindPartialSpec:
		if n.IsImplicit && n.Kind == kindRecord {
			// injected-class-name
			if b.injected == nil {
				b.injected = loc
			}
			b.walkInner(n)
			return
		}
		rec := &ast.RecordDecl{
			DeclBase:     ast.DeclBase{Loc: loc, Parent: b.ctx},
			Name:         n.Name,
			TagUsed:      n.TagUsed,
			IsDefinition: n.CompleteDefinition,
		}
		if owner != nil && owner.Record == nil && n.Kind == kindRecord {
			rec.Template = owner
			owner.Record = rec
		}
		full, lookup := b.qualify(n.Name)
		saved := b.injected
		b.injected = nil
		b.nested(n, rec, &scope{name: n.Name})
		injected := b.injected
		b.injected = saved

		switch n.Kind {
		case kindPartialSpec:
			for _, l := range []*ast.Location{loc, injected} {
				if l != nil {
					b.unit.partials[l.String()] = true
				}
			}
		case kindSpecialization:
			b.unit.addSpecialization(full, lookup, n.Name, &specialization{
				args:     templateArgs(n.Inner),
				loc:      loc,
				injected: injected,
				implicit: owner != nil,
			})
		}
	default:
		if contextKinds[n.Kind] {
			fn := &ast.NamedDecl{
				DeclBase: ast.DeclBase{Loc: loc, Parent: b.ctx},
				Kind:     n.Kind,
				Name:     n.Name,
			}
			b.nested(n, fn, nil)
			return
		}
		b.walkInner(n)
	}
}

// nested walks the children of n with decl as enclosing context and, when s
// is not nil, s pushed on the naming scope.
func (b *builder) nested(n *node, decl ast.Decl, s *scope) {
	saved := b.ctx
	b.ctx = decl
	if s != nil {
		b.scopes = append(b.scopes, *s)
	}
	b.walkInner(n)
	if s != nil {
		b.scopes = b.scopes[:len(b.scopes)-1]
	}
	b.ctx = saved
}

func (b *builder) classTemplate(n *node, loc *ast.Location) {
	tmpl := &ast.ClassTemplateDecl{
		DeclBase: ast.DeclBase{Loc: loc, Parent: b.ctx},
		Name:     n.Name,
	}
	for _, child := range n.Inner {
		b.owner = tmpl
		b.walk(child)
	}
	b.owner = nil

	full, lookup := b.qualify(n.Name)
	u := b.unit
	u.templates[full] = append(u.templates[full], tmpl)
	if lookup != full {
		u.templates[lookup] = append(u.templates[lookup], tmpl)
	}
	u.byName[n.Name] = append(u.byName[n.Name], tmpl)
}

// qualify returns the fully qualified name and the name as it is usually
// printed, with inline and anonymous namespaces left out.
func (b *builder) qualify(name string) (full, lookup string) {
	var all, visible []string
	for _, s := range b.scopes {
		all = append(all, s.name)
		if !s.transparent {
			visible = append(visible, s.name)
		}
	}
	full = strings.Join(append(all, name), "::")
	lookup = strings.Join(append(visible, name), "::")
	return
}

// templateArgs returns the spelling of the TemplateArgument children of a
// specialization, with packs expanded. Arguments that are neither types nor
// integral values are left empty.
func templateArgs(inner []*node) []string {
	var args []string
	for _, n := range inner {
		if n.Kind != kindTemplateArgument {
			continue
		}
		switch {
		case n.Type != nil:
			t := n.Type.DesugaredQualType
			if t == "" {
				t = n.Type.QualType
			}
			args = append(args, ast.Normalize(t))
		case n.Value != "":
			args = append(args, n.Value)
		case len(n.Inner) > 0:
			args = append(args, templateArgs(n.Inner)...)
		default:
			args = append(args, "")
		}
	}
	return args
}

func newQualType(t *qualType) *ast.QualType {
	if t == nil {
		return nil
	}
	return &ast.QualType{Spelling: t.QualType, Desugared: t.DesugaredQualType}
}
