package pharmacy

import "errors"

var ErrNotFound = errors.New("pharmacy not found")
