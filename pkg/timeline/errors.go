package timeline

import "errors"

var (
	ErrEmptySequence    = errors.New("sequence has no keyframes")
	ErrSequenceNotFound = errors.New("sequence not found")
	ErrSequenceType     = errors.New("sequence has a different value type")
)
