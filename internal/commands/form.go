package commands

import (
	"github.com/spendtrack/spendtrack/internal/app"
	"github.com/spendtrack/spendtrack/internal/ui"
)

type runner interface {
	Run() error
}

// newForm is swapped out in tests that cannot open a terminal.
var newForm = func(a *app.App) runner {
	return ui.NewForm(a)
}
