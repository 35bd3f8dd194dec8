package extract

import "github.com/goplus/llcpptpl/ast"

// Extract collects the class template instantiations constructed in the main
// file of unit. When onMatch is not nil it is called for every accepted
// construction site in traversal order, including the ones a later site of
// the same type overwrites.
func Extract(unit ast.Unit, onMatch func(inst *Instantiation)) Registry {
	reg := NewRegistry()
	unit.VisitConstructExprs(func(expr *ast.ConstructExpr) {
		if !Match(unit, expr) {
			return
		}
		inst, ok := Resolve(unit, expr)
		if !ok {
			return
		}
		if onMatch != nil {
			onMatch(inst)
		}
		reg.Add(inst)
	})
	return reg
}
