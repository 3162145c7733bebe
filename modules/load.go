package modules

import (
	"github.com/go-faster/errors"

	"github.com/jacksonlee411/hcdash/pkg/application"
)

// Load registers modules in order and stops at the first failure.
func Load(app application.Application, modules ...application.Module) error {
	for _, module := range modules {
		if err := module.Register(app); err != nil {
			return errors.Wrapf(err, "register module %s", module.Name())
		}
	}
	return nil
}
