package feature

import (
	"github.com/ezrec/sifive/translate"
)

var f = translate.From

type ErrFeatureUnknown string

func (err ErrFeatureUnknown) Error() string {
	return f("feature '%v' unknown", string(err))
}
