package config

// HeaderTable maps the bare filename of an implementation-detail header to
// the public header that should be included instead. It is never mutated
// once built, so one table can serve every analysis of a process.
type HeaderTable struct {
	m map[string]string
}

var stdHeaders = map[string]string{
	"": "",

	"stringfwd.h":  "string",
	"stl_set.h":    "set",
	"random.h":     "random",
	"stl_vector.h": "vector",

	"basic_string.h":    "string",
	"stl_bvector.h":     "vector",
	"stl_multiset.h":    "set",
	"stl_map.h":         "map",
	"stl_multimap.h":    "map",
	"stl_list.h":        "list",
	"stl_deque.h":       "deque",
	"stl_queue.h":       "queue",
	"stl_stack.h":       "stack",
	"stl_pair.h":        "utility",
	"unordered_map.h":   "unordered_map",
	"unordered_set.h":   "unordered_set",
	"unique_ptr.h":      "memory",
	"shared_ptr.h":      "memory",
	"shared_ptr_base.h": "memory",
	"std_function.h":    "functional",
}

// DefaultHeaderTable returns the built-in table.
func DefaultHeaderTable() HeaderTable {
	return NewHeaderTable(nil)
}

// NewHeaderTable returns the built-in table extended by overrides. An
// override maps a bare filename to a header and wins over a built-in entry.
func NewHeaderTable(overrides map[string]string) HeaderTable {
	m := make(map[string]string, len(stdHeaders)+len(overrides))
	for k, v := range stdHeaders {
		m[k] = v
	}
	for k, v := range overrides {
		m[k] = v
	}
	return HeaderTable{m: m}
}

func (t HeaderTable) Lookup(filename string) (header string, ok bool) {
	header, ok = t.m[filename]
	return
}

func (t HeaderTable) Len() int {
	return len(t.m)
}
