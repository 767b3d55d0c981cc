package sovt

import "errors"

// ErrBlankName is returned when a blank name is passed to any node
// construction entry point.
var ErrBlankName = errors.New("sovt: name must not be blank")
