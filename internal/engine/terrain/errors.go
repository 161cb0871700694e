package terrain

import "fmt"

// InvalidParameterError reports a generation or render parameter outside its
// accepted domain (resolution < 2, size <= 0, scale <= 0, ...).
type InvalidParameterError struct {
	Param  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Param, e.Value, e.Reason)
}

// InvalidGeometryError reports a malformed vertex or index buffer.
// Index is the offending index position, or -1 when the whole buffer is at fault.
type InvalidGeometryError struct {
	Reason string
	Index  int
}

func (e *InvalidGeometryError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid geometry at index %d: %s", e.Index, e.Reason)
	}
	return "invalid geometry: " + e.Reason
}
