package networks

import "errors"

// ErrUnknownNetwork matches any lookup failure via errors.Is.
var ErrUnknownNetwork = errors.New("unknown network")

// unknownNetworkError carries the offending identifier.
type unknownNetworkError struct{ id string }

func (e unknownNetworkError) Error() string { return "unknown network ID: " + e.id }

func (e unknownNetworkError) Is(target error) bool { return target == ErrUnknownNetwork }

// ErrUnknown returns the error reported for an unrecognized network id.
func ErrUnknown(id string) error { return unknownNetworkError{id: id} }

// IsUnknownNetwork reports whether err is a lookup failure.
func IsUnknownNetwork(err error) bool { return errors.Is(err, ErrUnknownNetwork) }

// UnknownID extracts the offending id from a lookup failure.
func UnknownID(err error) (string, bool) {
	var e unknownNetworkError
	if errors.As(err, &e) {
		return e.id, true
	}
	return "", false
}
