package asm

import (
	"errors"

	"github.com/ezrec/sifive/translate"
)

var f = translate.From

var (
	// Control returned from an instruction that never returns.
	ErrNoReturn = errors.New(f("non-returning instruction returned"))
)

type ErrCsrOp CsrOp

func (err ErrCsrOp) Error() string {
	return f("csr op %v invalid", CsrOp(err).String())
}
