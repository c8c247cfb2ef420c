package script

import (
	"github.com/ezrec/sifive/translate"
)

var f = translate.From

type ErrUnsupported string

func (err ErrUnsupported) Error() string {
	return f("%v: not supported by this hart", string(err))
}

type ErrValue struct {
	Builtin string
	Arg     string
	Kind    string
}

func (err ErrValue) Error() string {
	return f("%v: %v is not %v", err.Builtin, err.Arg, err.Kind)
}
