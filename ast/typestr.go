package ast

import "strings"

var tagKeywords = []string{"class", "struct", "union", "enum"}

// Unqualified strips cv-qualifiers, references and elaborated tag keywords
// from a printed type and normalizes its spacing.
func Unqualified(typ string) string {
	s := Normalize(typ)
	for {
		prev := s
		s = strings.TrimSpace(s)
		s = strings.TrimSuffix(s, "&&")
		s = strings.TrimSuffix(s, "&")
		s = trimWord(s, "const", false)
		s = trimWord(s, "volatile", false)
		s = trimWord(s, "const", true)
		s = trimWord(s, "volatile", true)
		if s == prev {
			return s
		}
	}
}

// Normalize collapses whitespace and drops elaborated type keywords, leaving
// qualifiers in place.
func Normalize(typ string) string {
	return dropTagKeywords(normalizeSpace(typ))
}

func trimWord(s, word string, prefix bool) string {
	if prefix {
		if strings.HasPrefix(s, word+" ") {
			return s[len(word)+1:]
		}
		return s
	}
	if strings.HasSuffix(s, " "+word) {
		return s[:len(s)-len(word)-1]
	}
	return s
}

func normalizeSpace(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	for strings.Contains(s, "> >") {
		s = strings.ReplaceAll(s, "> >", ">>")
	}
	s = strings.ReplaceAll(s, "< ", "<")
	s = strings.ReplaceAll(s, " >", ">")
	return s
}

func dropTagKeywords(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if i == 0 || !isIdentChar(s[i-1]) {
			if kw := tagKeywordAt(s, i); kw != "" {
				i += len(kw) + 1
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func tagKeywordAt(s string, i int) string {
	for _, kw := range tagKeywords {
		end := i + len(kw)
		if end < len(s) && s[i:end] == kw && s[end] == ' ' {
			return kw
		}
	}
	return ""
}

func isIdentChar(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// SplitScope splits a qualified name on the "::" separators that are not
// nested inside template arguments or parentheses.
//
//	ns::Outer<a::b>::Inner -> [ns Outer<a::b> Inner]
func SplitScope(name string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case ':':
			if depth == 0 && i+1 < len(name) && name[i+1] == ':' {
				parts = append(parts, name[start:i])
				start = i + 2
				i++
			}
		}
	}
	return append(parts, name[start:])
}

// SplitTemplateArgs splits "Name<A, B<C>>" into "Name" and ["A", "B<C>"].
// ok is false when typ is not a template specialization spelling.
func SplitTemplateArgs(typ string) (name string, args []string, ok bool) {
	open := strings.IndexByte(typ, '<')
	if open <= 0 || !strings.HasSuffix(typ, ">") {
		return typ, nil, false
	}
	name = strings.TrimSpace(typ[:open])
	inner := typ[open+1 : len(typ)-1]
	depth, start := 0, 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<', '(', '[', '{':
			depth++
		case '>', ')', ']', '}':
			depth--
			if depth < 0 {
				return typ, nil, false
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return typ, nil, false
	}
	if last := strings.TrimSpace(inner[start:]); last != "" || len(args) > 0 {
		args = append(args, last)
	}
	return name, args, true
}
