// Package report renders the instantiations of a run.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/goplus/llcpptpl/cl"
)

// Write prints one template line per instantiation, a blank line and one
// include line per distinct header, both sorted.
func Write(w io.Writer, reg cl.Registry) error {
	bw := bufio.NewWriter(w)
	for _, inst := range reg.Sorted() {
		fmt.Fprintf(bw, "template %s\n", inst.Type)
	}
	bw.WriteByte('\n')
	for _, header := range reg.Headers() {
		fmt.Fprintf(bw, "#include \"%s\"\n", header)
	}
	return bw.Flush()
}

// WriteMatch prints a construction site accepted by the analysis:
//
//	main.cc:7:3:
//	  std::vector<int>
//	    vector <_Tp, _Alloc>   @ /usr/include/c++/13/bits/stl_vector.h
func WriteMatch(w io.Writer, inst *cl.Instantiation) error {
	_, err := fmt.Fprintf(w, "%s:\n  %s\n    %s <%s>   @ %s\n\n",
		inst.Loc, inst.Type, inst.Template, strings.Join(inst.Params, ", "), inst.Source)
	return err
}
