package main

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"huematch/convert"
	"huematch/find"
	"huematch/palette"
	"huematch/parallel"
	"huematch/remap"
	"huematch/scheme"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type cli struct {
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info" env:"HUEMATCH_LOG_LEVEL"`
	Workers  int    `help:"Number of parallel workers, 0 for one per CPU" default:"0" env:"HUEMATCH_WORKERS"`

	Find    find.CLICmd    `cmd:"" help:"Search a palette for the nearest or farthest colors"`
	Scheme  scheme.CLICmd  `cmd:"" help:"Generate harmony schemes from base colors"`
	Convert convert.CLICmd `cmd:"" help:"Print colors as hex, RGB, HSL and Lab, optionally saving them as a PAL file"`
	Remap   remap.CLICmd   `cmd:"" help:"Redraw images with the colors of a palette"`
}

func (c *cli) AfterApply() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not load .env file", "error", err)
	}

	var conf cli
	kctx := kong.Parse(&conf,
		kong.Name("huematch"),
		kong.Description("Perceptual color matching with CIEDE2000."),
		kong.UsageOnError(),
		kong.Vars{"builtins": strings.Join(palette.Builtins, ", ")},
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)

	pool := parallel.Start(conf.Workers)
	slog.Debug("running", "command", kctx.Command(), "workers", pool.Workers())

	kctx.FatalIfErrorf(kctx.Run(pool))
}
