package config

import (
	"fmt"
	"strings"
)

// OutputFmt is requested product dump format.
type OutputFmt string

const (
	OutputFmtYAML OutputFmt = "yaml"
	OutputFmtText OutputFmt = "text"
)

// OutputFmtNames lists supported formats for help text.
func OutputFmtNames() []string {
	return []string{string(OutputFmtYAML), string(OutputFmtText)}
}

// ParseOutputFmt converts name to OutputFmt, case insensitive.
func ParseOutputFmt(name string) (OutputFmt, error) {
	switch f := OutputFmt(strings.ToLower(name)); f {
	case OutputFmtYAML, OutputFmtText:
		return f, nil
	}
	return "", fmt.Errorf("%q is not a valid output format, try [%s]", name, strings.Join(OutputFmtNames(), ", "))
}

func (o OutputFmt) String() string {
	return string(o)
}

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtYAML:
		return ".yaml"
	case OutputFmtText:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// used by CleanFileName when nothing is left
const badFileName = "_bad_file_name_"
