package cl

import (
	"github.com/goplus/llcpptpl/ast"
	"github.com/goplus/llcpptpl/cl/internal/extract"
)

const DbgFlagAll = extract.DbgFlagAll

func SetDebug(flag int) {
	extract.SetDebug(flag)
}

type (
	Instantiation = extract.Instantiation
	Registry      = extract.Registry
	HeaderLookup  = extract.HeaderLookup
)

func NewRegistry() Registry {
	return extract.NewRegistry()
}

type ExtractConfig struct {
	Unit    ast.Unit
	Headers HeaderLookup
	OnMatch func(inst *Instantiation) // optional, called per accepted construction site
}

// Extract collects the class template instantiations constructed in the main
// file of config.Unit. When config.Headers is set, sources are rewritten to
// public header names.
func Extract(config *ExtractConfig) Registry {
	reg := extract.Extract(config.Unit, config.OnMatch)
	if config.Headers != nil {
		reg = extract.Canonicalize(reg, config.Headers)
	}
	return reg
}

func Canonicalize(reg Registry, table HeaderLookup) Registry {
	return extract.Canonicalize(reg, table)
}
