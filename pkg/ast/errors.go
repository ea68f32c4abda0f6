package ast

import "errors"

// Sentinel errors returned by plan and evaluator construction. Validation
// failures wrap one of these so callers can classify them with [errors.Is].
var (
	ErrIndex        = errors.New("index error")
	ErrType         = errors.New("type error")
	ErrArity        = errors.New("arity error")
	ErrIntermediate = errors.New("intermediate error")
	ErrOutput       = errors.New("output error")
)
