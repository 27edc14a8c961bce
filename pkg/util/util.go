package util

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

var (
	ErrInternalServerError = errors.New("internal Server Error")
	ErrNotFound            = errors.New("your requested Item is not found")
	ErrBadParamInput       = errors.New("given Param is not valid")
	ErrUnprocessable       = errors.New("given location can not be processed")
)

var MessageInternalServerError string = "internal server error"

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func RadiansToDegree(rad float64) float64 {
	return 180.0 * rad / math.Pi
}

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func ReverseG[T any](arr []T) []T {
	copyArr := make([]T, len(arr)) // should do on the copy )
	copy(copyArr, arr)
	for i, j := 0, len(copyArr)-1; i < j; i, j = i+1, j-1 {
		copyArr[i], copyArr[j] = copyArr[j], copyArr[i]
	}
	return copyArr
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func MaxG[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
