package model

import "errors"

// Exceptional failures: raised by the loader and model constructors,
// caught by the application layer. Plan content problems never use this
// channel — every plan issue becomes a Violation instead.
var (
	ErrRegistryNotFound   = errors.New("registry not found")
	ErrPrimitiveNotFound  = errors.New("primitive not found")
	ErrMalformedPrimitive = errors.New("malformed primitive")
	ErrMalformedPlan      = errors.New("malformed plan")
	ErrUnsupportedTarget  = errors.New("unsupported compilation target")
	ErrUnsupportedNode    = errors.New("unsupported node")
)
