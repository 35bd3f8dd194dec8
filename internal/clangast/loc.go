package clangast

import (
	"strings"

	"github.com/goplus/llcpptpl/ast"
)

// locTracker replays clang's location de-duplication: a location inherits
// the file and line of the previously printed one when it omits them.
type locTracker struct {
	file string
	line int
}

func (l *srcLoc) valid() bool {
	return l != nil && (l.Offset != nil || l.Col != 0 || l.File != "")
}

func (t *locTracker) bare(l *srcLoc) *ast.Location {
	if !l.valid() {
		return nil
	}
	if l.File != "" {
		t.file = l.File
	}
	if l.Line != 0 {
		t.line = l.Line
	}
	loc := &ast.Location{File: t.file, Line: t.line, Column: l.Col}
	if l.IncludedFrom != nil {
		loc.IncludedFrom = l.IncludedFrom.File
	}
	return loc
}

// resolve consumes l and returns its expansion location.
func (t *locTracker) resolve(l *srcLoc) *ast.Location {
	if l == nil {
		return nil
	}
	if l.SpellingLoc != nil || l.ExpansionLoc != nil {
		t.bare(l.SpellingLoc)
		return t.bare(l.ExpansionLoc)
	}
	return t.bare(l)
}

// resolveRange consumes both ends of r and returns the begin location.
func (t *locTracker) resolveRange(r *srcRange) *ast.Location {
	if r == nil {
		return nil
	}
	begin := t.resolve(r.Begin)
	t.resolve(r.End)
	return begin
}

// isBuiltinBuffer reports buffers like <built-in> and <scratch space> that
// are not backed by a file.
func isBuiltinBuffer(file string) bool {
	return strings.HasPrefix(file, "<")
}
