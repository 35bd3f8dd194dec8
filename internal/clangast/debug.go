package clangast

import "log"

type dbgFlags = int

const (
	DbgParse dbgFlags = 1 << iota

	DbgFlagAll = DbgParse
)

var debugParse bool

func SetDebug(dbgFlags dbgFlags) {
	debugParse = (dbgFlags & DbgParse) != 0
}

func logf(format string, args ...any) {
	if debugParse {
		log.Printf(format, args...)
	}
}
