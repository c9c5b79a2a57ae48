package mocks

import "errors"

// ErrNotImplemented is returned by a mock method whose Fn field is unset.
var ErrNotImplemented = errors.New("mock method not implemented")
