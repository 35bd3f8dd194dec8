package extract

import (
	"log"

	"github.com/goplus/llcpptpl/ast"
)

// Match reports whether expr is a construction site the analysis looks at:
// a constructor call whose expansion location lies in the main file.
func Match(unit ast.Unit, expr *ast.ConstructExpr) bool {
	if expr == nil || !unit.IsInMainFile(expr.Loc) {
		return false
	}
	if debugMatch {
		log.Printf("match %s %s", expr.Loc, expr.Type.Canonical())
	}
	return true
}
