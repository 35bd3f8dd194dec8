package ast

// MemUnit is a Unit whose construct expressions are already materialized,
// in traversal order.
type MemUnit struct {
	Main  string
	Exprs []*ConstructExpr
}

func (u *MemUnit) MainFile() string { return u.Main }

func (u *MemUnit) IsInMainFile(loc *Location) bool {
	return loc != nil && loc.File == u.Main
}

func (u *MemUnit) VisitConstructExprs(fn func(expr *ConstructExpr)) {
	for _, expr := range u.Exprs {
		fn(expr)
	}
}
