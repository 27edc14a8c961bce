package openlr

import (
	"errors"
	"fmt"
)

var (
	ErrNoCandidatesFound       = errors.New("no candidates within search radius")
	ErrNoRouteFound            = errors.New("no plausible route")
	ErrDiscontinuousMatch      = errors.New("discontinuous match")
	ErrTagClassificationFailed = errors.New("tag classification failed")
	ErrInvalidInput            = errors.New("invalid input")
)

// LocationError. Index is the LRP index, or the edge id for ErrTagClassificationFailed.
// Index is -1 when no single point is at fault.
type LocationError struct {
	Kind  error
	Index int
	Err   error
}

func (e *LocationError) Error() string {
	msg := e.Kind.Error()
	if e.Index >= 0 {
		if e.Kind == ErrTagClassificationFailed {
			msg = fmt.Sprintf("%s at edge %d", msg, e.Index)
		} else {
			msg = fmt.Sprintf("%s at lrp %d", msg, e.Index)
		}
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *LocationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func NoCandidatesFound(lrpIndex int) error {
	return &LocationError{Kind: ErrNoCandidatesFound, Index: lrpIndex}
}

func NoRouteFound(lrpIndex int) error {
	return &LocationError{Kind: ErrNoRouteFound, Index: lrpIndex}
}

func DiscontinuousMatch(lrpIndex int) error {
	return &LocationError{Kind: ErrDiscontinuousMatch, Index: lrpIndex}
}

func TagClassificationFailed(edgeId int) error {
	return &LocationError{Kind: ErrTagClassificationFailed, Index: edgeId}
}

func InvalidInput(format string, a ...interface{}) error {
	return &LocationError{Kind: ErrInvalidInput, Index: -1, Err: fmt.Errorf(format, a...)}
}

// IndexOf. offending LRP/edge index of err, -1 if err is not a LocationError.
func IndexOf(err error) int {
	var le *LocationError
	if errors.As(err, &le) {
		return le.Index
	}
	return -1
}
