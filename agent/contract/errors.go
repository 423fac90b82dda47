package contract

import "errors"

var (
	ErrModelInvoke     = errors.New("model invoke failed")
	ErrUnknownProvider = errors.New("unknown llm provider")
	ErrPersonaNotFound = errors.New("persona not found")
	ErrModelNotFound   = errors.New("model not found")
)
