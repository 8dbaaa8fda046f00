package backend

import (
	"errors"
	"fmt"
)

// ErrCallFailed matches every failed backend call: transport errors,
// non-2xx responses and undecodable bodies are not told apart.
var ErrCallFailed = errors.New("backend call failed")

type CallError struct {
	Op     string
	Status int
	Err    error
}

func (e *CallError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: backend responded with status %d: %s", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

func (e *CallError) Is(target error) bool {
	return target == ErrCallFailed
}
