package mesh

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoActiveUVLayer is returned when a mesh has no UV data to build islands from.
var ErrNoActiveUVLayer = errors.New("mesh: no active UV layer")

// DegenerateFaceError reports a face that cannot bound a polygon.
type DegenerateFaceError struct {
	Face   int
	Reason string
}

func (e *DegenerateFaceError) Error() string {
	return fmt.Sprintf("mesh: degenerate face %d: %s", e.Face, e.Reason)
}

// LayerMismatchError reports a UV layer whose shape disagrees with the topology.
// Face is -1 when the face counts differ.
type LayerMismatchError struct {
	Face int
	Want int
	Got  int
}

func (e *LayerMismatchError) Error() string {
	if e.Face < 0 {
		return fmt.Sprintf("mesh: uv layer has %d faces, topology has %d", e.Got, e.Want)
	}
	return fmt.Sprintf("mesh: uv layer face %d has %d corners, want %d", e.Face, e.Got, e.Want)
}
