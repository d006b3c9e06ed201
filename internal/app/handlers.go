package app

import (
	"github.com/dshills/selkit/internal/dispatcher"
	"github.com/dshills/selkit/internal/dispatcher/handlers/geometry"
	"github.com/dshills/selkit/internal/dispatcher/handlers/pipe"
	"github.com/dshills/selkit/internal/dispatcher/handlers/setop"
)

// RegisterHandlers registers every subcommand with the dispatcher.
func RegisterHandlers(d *dispatcher.Dispatcher) {
	d.RegisterNamespace(geometry.NewHandler())
	d.RegisterNamespace(setop.NewHandler())
	d.RegisterNamespace(pipe.NewHandler())
}
