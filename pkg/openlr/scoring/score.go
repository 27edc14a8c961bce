// Package scoring. composable confidence values used to rank map matching candidates.
package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	CANDIDATE_ROUTE     = "candidate_route"
	DISTANCE_COMPARISON = "distance_comparison"
	VERTEX_DISTANCE     = "vertex_distance"
	MATCH_ARC           = "match_arc"
	BEARING_DIFF        = "bearing_diff"
)

// minReference. references <= 0 are clamped to this.
const minReference = 1e-12

type operator uint8

const (
	leaf operator = iota
	sum
	product
)

// Score. immutable score tree, either a leaf or the sum/product of two scores.
// The zero Score is a leaf with value 0 and must not be used as a reference.
type Score struct {
	name        string
	description string
	value       float64
	reference   float64

	op          operator
	left, right *Score
}

// New. leaf score, reference is the value at a perfect match.
func New(name, description string, value, reference float64) Score {
	if !(reference > 0) {
		reference = minReference
	}
	return Score{
		name:        name,
		description: description,
		value:       value,
		reference:   reference,
		op:          leaf,
	}
}

// Sum. independent evidence, value & reference are added.
func Sum(a, b Score) Score {
	return Score{
		name:        a.name + "+" + b.name,
		description: a.description + " + " + b.description,
		value:       a.value + b.value,
		reference:   a.reference + b.reference,
		op:          sum,
		left:        &a,
		right:       &b,
	}
}

// Product. gating factors, value & reference are multiplied.
func Product(a, b Score) Score {
	return Score{
		name:        a.name + "*" + b.name,
		description: a.description + " * " + b.description,
		value:       a.value * b.value,
		reference:   a.reference * b.reference,
		op:          product,
		left:        &a,
		right:       &b,
	}
}

func (s Score) GetName() string {
	return s.name
}

func (s Score) GetDescription() string {
	return s.description
}

func (s Score) GetValue() float64 {
	return s.value
}

func (s Score) GetReference() float64 {
	return s.reference
}

// Ratio. value/reference, 1 is a perfect match.
func (s Score) Ratio() float64 {
	ref := s.reference
	if !(ref > 0) {
		ref = minReference
	}
	return s.value / ref
}

func (s Score) IsLeaf() bool {
	return s.op == leaf
}

// GetByName. depth-first search (node, then left, then right) for a node named name.
func (s Score) GetByName(name string) (Score, bool) {
	if s.name == name {
		return s, true
	}
	if s.op == leaf {
		return Score{}, false
	}
	if found, ok := s.left.GetByName(name); ok {
		return found, true
	}
	return s.right.GetByName(name)
}

// Equal. structural equality over name, description, value, reference and operands.
func Equal(a, b Score) bool {
	if a.name != b.name || a.description != b.description ||
		a.value != b.value || a.reference != b.reference || a.op != b.op {
		return false
	}
	if a.op == leaf {
		return true
	}
	return Equal(*a.left, *b.left) && Equal(*a.right, *b.right)
}

// Key. structural hash key, Equal(a, b) iff a.Key() == b.Key().
func (s Score) Key() string {
	var sb strings.Builder
	s.writeKey(&sb)
	return sb.String()
}

func (s Score) writeKey(sb *strings.Builder) {
	switch s.op {
	case leaf:
		sb.WriteString(strconv.Quote(s.name))
		sb.WriteByte(',')
		sb.WriteString(strconv.Quote(s.description))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(s.value, 'g', -1, 64))
		sb.WriteByte('/')
		sb.WriteString(strconv.FormatFloat(s.reference, 'g', -1, 64))
	case sum, product:
		if s.op == sum {
			sb.WriteString("sum(")
		} else {
			sb.WriteString("product(")
		}
		s.left.writeKey(sb)
		sb.WriteByte(';')
		s.right.writeKey(sb)
		sb.WriteByte(')')
	}
}

func (s Score) String() string {
	return fmt.Sprintf("%s %g/%g", s.name, s.value, s.reference)
}
