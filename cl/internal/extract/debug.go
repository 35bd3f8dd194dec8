package extract

import "log"

type dbgFlags = int

const (
	DbgMatch dbgFlags = 1 << iota
	DbgResolve

	DbgFlagAll = DbgMatch | DbgResolve
)

var (
	debugMatch   bool
	debugResolve bool
)

func SetDebug(dbgFlags dbgFlags) {
	debugMatch = (dbgFlags & DbgMatch) != 0
	debugResolve = (dbgFlags & DbgResolve) != 0
}

func logResolve(format string, args ...any) {
	if debugResolve {
		log.Printf(format, args...)
	}
}
