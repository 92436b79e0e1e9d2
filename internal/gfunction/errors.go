package gfunction

import (
	"strconv"

	"github.com/fatalSec/DaliVM/internal/errs"
)

func indexOutOfBounds(method string, idx int) error {
	return errs.New(errs.KindRuntime, method, 0, "", "index out of bounds: "+strconv.Itoa(idx))
}

func runtimeError(method, message string) error {
	return errs.New(errs.KindRuntime, method, 0, "", message)
}
