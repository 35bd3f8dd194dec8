package extract

import (
	"github.com/goplus/llcpptpl/ast"
)

// Instantiation is a class template instantiation found at a construction site.
type Instantiation struct {
	Type   string // canonical type, e.g. std::vector<int, std::allocator<int>>
	Source string // file declaring the class template

	Template string   // name of the class template
	Params   []string // its parameter names
	Loc      *ast.Location
}

// Resolve traces the type constructed by expr back to the class template it
// instantiates. It reports false for ordinary classes and for templates
// declared in the main file of unit.
func Resolve(unit ast.Unit, expr *ast.ConstructExpr) (*Instantiation, bool) {
	rec := expr.Type.RecordDecl()
	if rec == nil {
		logResolve("%s: no record type", expr.Loc)
		return nil, false
	}
	switch rec.Kind() {
	case ast.OrdinaryRecord:
		return nil, false
	case ast.TemplateInstantiation:
	default:
		logResolve("%s: %s has unknown record kind %v", expr.Loc, rec.Name, rec.Kind())
		return nil, false
	}
	// The described template hangs off the pattern, never off the
	// instantiated record.
	tmpl := rec.TemplateInstantiationPattern().DescribedClassTemplate()
	if tmpl == nil {
		logResolve("%s: %s has no described class template", expr.Loc, rec.Name)
		return nil, false
	}
	if unit.IsInMainFile(tmpl.Location()) {
		logResolve("%s: %s is declared in the main file", expr.Loc, tmpl.Name)
		return nil, false
	}
	typ := expr.Type.Canonical()
	if typ == "" {
		return nil, false
	}
	inst := &Instantiation{
		Type:     typ,
		Template: tmpl.Name,
		Params:   tmpl.ParamNames(),
		Loc:      expr.Loc,
	}
	if loc := tmpl.Location(); loc != nil {
		inst.Source = loc.File
	}
	return inst, true
}
