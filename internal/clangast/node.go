package clangast

// node is one entry of clang's -ast-dump=json output. Only the attributes
// the analysis needs are decoded.
type node struct {
	ID                 string    `json:"id"`
	Kind               string    `json:"kind"`
	Name               string    `json:"name"`
	Loc                *srcLoc   `json:"loc"`
	Range              *srcRange `json:"range"`
	Type               *qualType `json:"type"`
	Value              string    `json:"value"` // integral template arguments
	TagUsed            string    `json:"tagUsed"`
	IsInline           bool      `json:"isInline"`
	IsImplicit         bool      `json:"isImplicit"`
	CompleteDefinition bool      `json:"completeDefinition"`
	Inner              []*node   `json:"inner"`
}

// srcLoc is a bare location or, for locations inside macro expansions, a
// pair of spelling and expansion locations.
//
// clang omits "file" and "line" when they equal the previously printed
// location, so a srcLoc can only be resolved in document order.
type srcLoc struct {
	Offset       *int      `json:"offset"`
	File         string    `json:"file"`
	Line         int       `json:"line"`
	Col          int       `json:"col"`
	IncludedFrom *inclFrom `json:"includedFrom"`
	SpellingLoc  *srcLoc   `json:"spellingLoc"`
	ExpansionLoc *srcLoc   `json:"expansionLoc"`
}

type inclFrom struct {
	File string `json:"file"`
}

type srcRange struct {
	Begin *srcLoc `json:"begin"`
	End   *srcLoc `json:"end"`
}

type qualType struct {
	QualType          string `json:"qualType"`
	DesugaredQualType string `json:"desugaredQualType"`
}

const (
	kindTranslationUnit   = "TranslationUnitDecl"
	kindNamespace         = "NamespaceDecl"
	kindRecord            = "CXXRecordDecl"
	kindClassTemplate     = "ClassTemplateDecl"
	kindSpecialization    = "ClassTemplateSpecializationDecl"
	kindPartialSpec       = "ClassTemplatePartialSpecializationDecl"
	kindTypeParam         = "TemplateTypeParmDecl"
	kindNonTypeParam      = "NonTypeTemplateParmDecl"
	kindTemplateParam     = "TemplateTemplateParmDecl"
	kindTemplateArgument  = "TemplateArgument"
	kindConstructExpr     = "CXXConstructExpr"
	kindTemporaryObjectEx = "CXXTemporaryObjectExpr"
)

// declaration kinds that form the enclosing context of an expression
var contextKinds = map[string]bool{
	kindNamespace:        true,
	kindRecord:           true,
	kindSpecialization:   true,
	kindPartialSpec:      true,
	"FunctionDecl":       true,
	"CXXMethodDecl":      true,
	"CXXConstructorDecl": true,
	"CXXDestructorDecl":  true,
	"CXXConversionDecl":  true,
}
