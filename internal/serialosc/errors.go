package serialosc

import "errors"

// ErrNotAttached is returned by Render before discovery has produced a
// device or after the attached device was removed.
var ErrNotAttached = errors.New("serialosc: no grid attached")
