package docfmt

import (
	"fmt"
	"strings"
)

// Stats summarizes a document for the status bar.
type Stats struct {
	Keys  int // mapping keys at every depth
	Bytes int // size of the minified JSON
	Lines int // lines of the displayed output
}

// Measure computes the statistics of v as displayed in output.
func Measure(v Value, output string) Stats {
	s := Stats{Keys: countKeys(v)}
	// An invalid number literal leaves Bytes at zero.
	if b, err := v.MarshalJSON(); err == nil {
		s.Bytes = len(b)
	}
	if output != "" {
		s.Lines = strings.Count(output, "\n") + 1
	}
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("%d keys • %d bytes • %d lines", s.Keys, s.Bytes, s.Lines)
}

func countKeys(v Value) int {
	switch v.kind {
	case MappingKind:
		n := v.m.Len()
		for _, key := range v.m.keys {
			n += countKeys(v.m.vals[key])
		}
		return n
	case ListKind:
		n := 0
		for _, item := range v.items {
			n += countKeys(item)
		}
		return n
	default:
		return 0
	}
}
