package availability

import "errors"

var ErrInvalidInput = errors.New("invalid input")
