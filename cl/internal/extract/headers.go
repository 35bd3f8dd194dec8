package extract

import "strings"

// HeaderLookup maps the bare filename of a header to its public name.
type HeaderLookup interface {
	Lookup(filename string) (header string, ok bool)
}

// Canonicalize returns a copy of reg whose sources are replaced by their
// public header when the bare filename is known to table. Unknown sources
// are kept verbatim.
func Canonicalize(reg Registry, table HeaderLookup) Registry {
	ret := make(Registry, len(reg))
	for key, inst := range reg {
		cp := *inst
		if header, ok := table.Lookup(baseName(inst.Source)); ok {
			cp.Source = header
		}
		ret[key] = &cp
	}
	return ret
}

// baseName returns the last path component of file for both / and \
// separators, independent of the host.
func baseName(file string) string {
	if i := strings.LastIndexAny(file, `/\`); i >= 0 {
		return file[i+1:]
	}
	return file
}
