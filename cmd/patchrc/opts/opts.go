package opts

import (
	"github.com/MBoussel/patchrc/pkg/config"
	"github.com/MBoussel/patchrc/pkg/console"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config  *config.Config
	Printer *console.Printer
	Changes *console.ChangeLogger
}
