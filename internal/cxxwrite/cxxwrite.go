// Package cxxwrite generates C++ sources from the instantiations of a run:
// explicit instantiation definitions and the matching extern declarations.
package cxxwrite

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goplus/llcpptpl/cl"
)

const GeneratedHeader = "// Code generated by llcpptpl. DO NOT EDIT.\n\n"

// WriteFile writes the generated header and the output of write to outFile.
func WriteFile(outFile string, reg cl.Registry, write func(io.Writer, cl.Registry) error) error {
	var buf bytes.Buffer
	buf.WriteString(GeneratedHeader)
	if err := write(&buf, reg); err != nil {
		return err
	}
	if err := os.WriteFile(outFile, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outFile, err)
	}
	return nil
}

// WriteInstances writes an include per known header followed by an explicit
// instantiation definition per instantiation. Instantiations whose header is
// unknown still get a definition; the file then relies on the includes of
// the translation unit it is compiled with.
func WriteInstances(w io.Writer, reg cl.Registry) error {
	bw := bufio.NewWriter(w)
	for _, header := range reg.Headers() {
		if header == "" {
			continue
		}
		fmt.Fprintf(bw, "#include \"%s\"\n", header)
	}
	bw.WriteByte('\n')
	for _, inst := range reg.Sorted() {
		fmt.Fprintf(bw, "template class %s;\n", inst.Type)
	}
	return bw.Flush()
}

// WriteExtern writes a header declaring every instantiation extern, so that
// translation units including it skip implicit instantiation.
func WriteExtern(w io.Writer, reg cl.Registry) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("#pragma once\n\n")
	for _, inst := range reg.Sorted() {
		fmt.Fprintf(bw, "extern template class %s;\n", inst.Type)
	}
	return bw.Flush()
}
