package lineproto

import (
	"io"
	"time"
)

const (
	// MaxLineLen caps the request line; longer lines are truncated,
	// never an overflow.
	MaxLineLen = 255

	// DefaultIdleTimeout is the longest gap allowed between bytes
	// while a line is being read.
	DefaultIdleTimeout = 2 * time.Second

	// Verb is the only request verb dispatched, matched
	// case-sensitively.
	Verb = "GET"
)

type (
	// Param is one key=value pair parsed from the request line.
	Param struct {
		Key   string
		Value string
	}

	// PathFunc renders the response for a matched path. Parameter
	// handlers have already run by the time it is invoked.
	PathFunc func(w io.Writer, params []Param)

	// ParamFunc consumes one matched key=value pair.
	ParamFunc func(value string)

	PathHandler struct {
		Path string
		Fn   PathFunc
	}

	ParamHandler struct {
		Key string
		Fn  ParamFunc
	}

	// Table is one surface's dispatch configuration: an ordered
	// first-match-wins path table and a parameter table. The reader
	// mechanics are identical for every surface; only the table
	// differs.
	Table struct {
		Paths  []PathHandler
		Params []ParamHandler
	}
)
