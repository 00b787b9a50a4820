package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	pointillism "github.com/1fifoto/cnc-pointillism"
	"github.com/1fifoto/cnc-pointillism/gcode"
	"github.com/1fifoto/cnc-pointillism/palette"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newPainter(c *cli.Context) (*pointillism.Painter, error) {
	mode, err := palette.ParseMode(c.String("palette"))
	if err != nil {
		return nil, err
	}

	cfg := pointillism.DefaultConfig()
	cfg.Palette = mode
	if c.IsSet("dot-pitch-mm") {
		cfg.Canvas.Pitch = c.Float64("dot-pitch-mm")
	}
	cfg.Canvas.OriginX = c.Float64("origin-x")
	cfg.Canvas.OriginY = c.Float64("origin-y")
	cfg.Canvas.Margin = c.Float64("margin-mm")
	if c.IsSet("redip-dabs") {
		cfg.Redip.MaxDabs = c.Int("redip-dabs")
	}
	if c.IsSet("redip-travel-mm") {
		cfg.Redip.MaxTravel = c.Float64("redip-travel-mm")
	}
	if c.Bool("no-clean") {
		cfg.Redip.CleanAtEnd = false
	}

	return pointillism.New(cfg, newLogger(c))
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func writeProgram(path string, program *gcode.Program) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := program.WriteTo(f); err != nil {
		return err
	}
	return nil
}

func paletteFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "palette",
		Value: "rgb6",
		Usage: "palette mode, rgb6 or cmyk",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "pointillism"
	app.Usage = "CNC brush-painting toolpath generator"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:  "paint",
			Usage: "Convert an image into a painting program",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "input", Required: true, Usage: "input image (PNG, JPEG or GIF)"},
				&cli.StringFlag{Name: "output", Required: true, Usage: "output program file"},
				&cli.Float64Flag{Name: "width-mm", Required: true, Usage: "canvas width"},
				&cli.Float64Flag{Name: "height-mm", Required: true, Usage: "canvas height"},
				&cli.Float64Flag{Name: "dot-pitch-mm", Value: 3.0, Usage: "distance between dab centers"},
				&cli.Float64Flag{Name: "origin-x", Usage: "canvas X origin"},
				&cli.Float64Flag{Name: "origin-y", Usage: "canvas Y origin"},
				&cli.Float64Flag{Name: "margin-mm", Usage: "unpainted margin"},
				&cli.IntFlag{Name: "redip-dabs", Usage: "re-dip after this many dabs"},
				&cli.Float64Flag{Name: "redip-travel-mm", Usage: "re-dip after this much travel, 0 disables"},
				&cli.BoolFlag{Name: "no-clean", Usage: "skip the final blot before returning each brush"},
				paletteFlag(),
			},
			Action: func(c *cli.Context) error {
				painter, err := newPainter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				cols, rows, err := pointillism.GridSize(c.Float64("width-mm"), c.Float64("height-mm"), c.Float64("margin-mm"), c.Float64("dot-pitch-mm"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				img, err := loadImage(c.String("input"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				program, err := painter.Paint(img, cols, rows)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := writeProgram(c.String("output"), program); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "swatch",
			Usage: "Generate a calibration swatch program",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "output", Required: true, Usage: "output program file"},
				&cli.Float64Flag{Name: "origin-x", Usage: "X of the first swatch dot"},
				&cli.Float64Flag{Name: "origin-y", Usage: "Y of the first swatch dot"},
				&cli.Float64Flag{Name: "dot-pitch-mm", Value: 20.0, Usage: "spacing between dots"},
				&cli.IntFlag{Name: "dots", Value: 5, Usage: "dots per color"},
				paletteFlag(),
			},
			Action: func(c *cli.Context) error {
				painter, err := newPainter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				opts := pointillism.DefaultSwatchOptions()
				opts.OriginX = c.Float64("origin-x")
				opts.OriginY = c.Float64("origin-y")
				opts.Pitch = c.Float64("dot-pitch-mm")
				opts.Dots = c.Int("dots")

				program, err := painter.Swatch(opts)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := writeProgram(c.String("output"), program); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "mixgrid",
			Usage: "Generate a paint-mixing test grid program",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "output", Required: true, Usage: "output program file"},
				&cli.Float64Flag{Name: "origin-x", Usage: "X of the first cluster"},
				&cli.Float64Flag{Name: "origin-y", Usage: "Y of the first cluster"},
				&cli.Float64Flag{Name: "dot-pitch-mm", Value: 30.0, Usage: "spacing between clusters"},
				&cli.IntFlag{Name: "grid-cols", Value: 5, Usage: "clusters per row"},
				&cli.IntFlag{Name: "grid-rows", Value: 5, Usage: "cluster rows"},
				paletteFlag(),
			},
			Action: func(c *cli.Context) error {
				painter, err := newPainter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				opts := pointillism.DefaultMixGridOptions()
				opts.OriginX = c.Float64("origin-x")
				opts.OriginY = c.Float64("origin-y")
				opts.Pitch = c.Float64("dot-pitch-mm")
				opts.Cols = c.Int("grid-cols")
				opts.Rows = c.Int("grid-rows")

				program, err := painter.MixGrid(opts)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := writeProgram(c.String("output"), program); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "analyze",
			Usage: "Report how an image maps onto the machine palette",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "input", Required: true, Usage: "input image (PNG, JPEG or GIF)"},
				&cli.IntFlag{Name: "colors", Value: 8, Usage: "palette colors to extract"},
				paletteFlag(),
			},
			Action: func(c *cli.Context) error {
				painter, err := newPainter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				img, err := loadImage(c.String("input"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				report, err := painter.Analyze(img, c.Int("colors"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Print(report)
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
