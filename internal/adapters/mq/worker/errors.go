package worker

import "errors"

// ErrProcessorPanic wraps a panic recovered from a Processor.
var ErrProcessorPanic = errors.New("processor panicked")
