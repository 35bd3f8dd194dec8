package ast

import "fmt"

// Location is a resolved source position. File is the buffer name the
// front end used for the file, which may be relative to the compile directory.
type Location struct {
	File         string
	Line         int
	Column       int
	IncludedFrom string // file that included File, empty for the main file
}

func (l *Location) String() string {
	if l == nil {
		return "<invalid loc>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

type Decl interface {
	DeclName() string
	Location() *Location
}

type DeclBase struct {
	Loc    *Location
	Parent Decl // semantic parent, nil at translation unit scope
}

func (d *DeclBase) Location() *Location { return d.Loc }

// NamedDecl is a scope-forming declaration without semantics of its own
// for the analysis, like a namespace or a function.
type NamedDecl struct {
	DeclBase
	Kind string
	Name string
}

func (d *NamedDecl) DeclName() string { return d.Name }

type RecordKind int

const (
	OrdinaryRecord RecordKind = iota
	TemplateInstantiation
)

func (k RecordKind) String() string {
	switch k {
	case OrdinaryRecord:
		return "ordinary"
	case TemplateInstantiation:
		return "template-instantiation"
	}
	return fmt.Sprintf("RecordKind(%d)", int(k))
}

// RecordDecl is a class, struct or union declaration.
//
// For an implicit instantiation the front end synthesizes a new record whose
// Pattern points at the templated record it was generated from. Only the
// pattern record is described by a ClassTemplateDecl; the instantiated record
// never is.
type RecordDecl struct {
	DeclBase
	Name         string
	TagUsed      string
	IsDefinition bool
	Args         []string // template arguments, set on instantiations

	Pattern  *RecordDecl
	Template *ClassTemplateDecl
}

func (r *RecordDecl) DeclName() string { return r.Name }

func (r *RecordDecl) Kind() RecordKind {
	if r.Pattern != nil {
		return TemplateInstantiation
	}
	return OrdinaryRecord
}

func (r *RecordDecl) TemplateInstantiationPattern() *RecordDecl {
	return r.Pattern
}

func (r *RecordDecl) DescribedClassTemplate() *ClassTemplateDecl {
	return r.Template
}

type TemplateParam struct {
	Name string
}

type ClassTemplateDecl struct {
	DeclBase
	Name   string
	Params []*TemplateParam
	Record *RecordDecl // the templated record, i.e. the instantiation pattern
}

func (t *ClassTemplateDecl) DeclName() string { return t.Name }

// ParamNames returns the names of the template parameters in declaration order.
func (t *ClassTemplateDecl) ParamNames() []string {
	names := make([]string, len(t.Params))
	for i, p := range t.Params {
		names[i] = p.Name
	}
	return names
}

// QualType is the type of an expression as the front end printed it.
type QualType struct {
	Spelling  string // as written, may use aliases
	Desugared string // alias-free form, empty when equal to Spelling
	Decl      *RecordDecl
}

// RecordDecl returns the declaration of the underlying record type, or nil
// when the type is not a class type.
func (t *QualType) RecordDecl() *RecordDecl {
	if t == nil {
		return nil
	}
	return t.Decl
}

// Canonical returns the alias-free, unqualified spelling of the type with
// every template argument expanded.
func (t *QualType) Canonical() string {
	if t == nil {
		return ""
	}
	s := t.Desugared
	if s == "" {
		s = t.Spelling
	}
	return Unqualified(s)
}

// ConstructExpr is a constructor call, including temporary object construction.
type ConstructExpr struct {
	Type    *QualType
	Loc     *Location
	Context Decl // enclosing declaration, may be nil
}

// Unit is a parsed translation unit.
type Unit interface {
	MainFile() string
	IsInMainFile(loc *Location) bool
	VisitConstructExprs(fn func(expr *ConstructExpr))
}
