package clangast

import (
	"github.com/goplus/llcpptpl/ast"
)

// specialization is a ClassTemplateSpecializationDecl seen in the dump.
//
// The dump does not say which pattern a specialization was generated from,
// but instantiated members keep the locations of the pattern's members. The
// injected-class-name of an explicit specialization sits at its own name;
// that of an instantiation sits at the primary template or at the partial
// specialization it was instantiated from.
type specialization struct {
	args     []string
	loc      *ast.Location
	injected *ast.Location // nil when the specialization has no definition
	implicit bool          // listed under its class template
}

// instantiated reports whether s was generated from the templated record of
// tmpl. partials holds the locations of all partial specializations.
func (s *specialization) instantiated(tmpl *ast.ClassTemplateDecl, partials map[string]bool) bool {
	if s.injected == nil {
		return true
	}
	inj := s.injected.String()
	if partials[inj] {
		return false
	}
	if s.implicit || inj != s.loc.String() {
		return true
	}
	return tmpl.Record != nil && tmpl.Record.Loc.String() == inj
}

func (u *Unit) addSpecialization(full, lookup, name string, s *specialization) {
	u.specs[full] = append(u.specs[full], s)
	if lookup != full {
		u.specs[lookup] = append(u.specs[lookup], s)
	}
	u.specsByName[name] = append(u.specsByName[name], s)
}

// lookupSpecialization finds the specialization of the template qualName
// with the given arguments. Printed types leave out trailing default
// arguments, so args may be a prefix of the specialization's arguments; an
// exact match wins over a prefix match.
func (u *Unit) lookupSpecialization(qualName, name string, args []string) *specialization {
	cands := u.specs[qualName]
	if len(cands) == 0 && len(u.templates[qualName]) == 0 {
		cands = u.specsByName[name]
	}
	var prefix *specialization
	for _, s := range cands {
		if !matchArgs(s.args, args) {
			continue
		}
		if len(s.args) == len(args) {
			return s
		}
		if prefix == nil {
			prefix = s
		}
	}
	return prefix
}

func matchArgs(spec, args []string) bool {
	if len(args) > len(spec) {
		return false
	}
	for i, arg := range args {
		if spec[i] != "" && spec[i] != arg {
			return false
		}
	}
	return true
}
