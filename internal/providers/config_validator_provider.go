package providers

import (
	"regexp"

	"dbpd/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

var unixPathPattern = regexp.MustCompile(`^/[^\x00]*$`)

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	v.AddValidator("unixPath", func(val interface{}) bool {
		s, ok := val.(string)
		if !ok {
			return false
		}
		return unixPathPattern.MatchString(s)
	})
	if !v.Validate() {
		return v.Errors.OneError()
	}
	return nil
}
