package consult

import "fmt"

// OpState tracks one asynchronous operation of the view.
type OpState int

const (
	StateIdle OpState = iota
	StateLoading
	StateError
)

func (s OpState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("OpState(%d)", int(s))
	}
}

func (s OpState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
