/*
Package pointillism converts raster images into brush-painting toolpaths
for a CNC painting machine. An image is reduced to a limited palette,
either by nearest-color classification against six discrete paints or by
error-diffusion halftoning against four process inks, and the resulting
dabs are ordered into per-color passes with brush re-conditioning inserted
as the brush runs dry.
*/
package pointillism

import (
	"log"

	"github.com/1fifoto/cnc-pointillism/palette"
)

// Painter generates painting programs for one machine configuration.
type Painter struct {
	config   Config
	stations map[palette.Color]palette.Station
	logger   *log.Logger
}

// New validates cfg and returns a Painter. All configuration errors are
// reported here, before any instruction is generated.
func New(cfg Config, logger *log.Logger) (*Painter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	stations, err := cfg.Layout.Stations(cfg.Palette)
	if err != nil {
		return nil, err
	}
	return &Painter{
		config:   cfg,
		stations: stations,
		logger:   logger,
	}, nil
}

// Config returns the configuration the painter was built with.
func (p *Painter) Config() Config {
	return p.config
}
