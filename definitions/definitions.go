// Package definitions carries the default unit-system sources, embedded in
// the binary so a caller gets a working SI registry with no files on disk.
//
// The sources load in a fixed order (base constants first, then coherent
// derived units, then the BIPM-accepted and customary sets) because each
// statement may only reference symbols defined before it. Callers who want
// a modified system append their own sources after the defaults; a later
// definition of the same symbol wins.
package definitions

import (
	"embed"

	"github.com/unitspace/unitspace/units"
	"github.com/unitspace/unitspace/units/deffile"
)

//go:embed *.ini
var files embed.FS

// DefaultFiles lists the embedded sources in evaluation order.
var DefaultFiles = []string{
	"base-SI.ini",
	"derived.ini",
	"BIPM.ini",
	"other.ini",
}

// Sources returns the embedded default sources in evaluation order.
func Sources() ([]deffile.Source, error) {
	return deffile.ReadFS(files, DefaultFiles)
}

// Load builds the default SI registry from the embedded sources.
func Load() (*units.Registry, error) {
	sources, err := Sources()
	if err != nil {
		return nil, err
	}
	return deffile.Load(sources)
}
