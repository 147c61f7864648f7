// Command odeglue builds a piecewise solution of x·y' = 2y − 6x⁴√y,
// y(0) = 0 from the command line, an interactive terminal UI or an HTTP
// service, and plots it.
//
//	odeglue -piece zero:-2,0 -piece pos:1 -piece point:0,0 -out plot.png
//	odeglue -tui -out plot.png
//	odeglue -serve :8080
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/odeglue"
	"github.com/gogpu/odeglue/analysis"
	"github.com/gogpu/odeglue/plot"
	"github.com/gogpu/odeglue/server"
	"github.com/gogpu/odeglue/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

type config struct {
	pieces     pieceFlags
	out        string
	svg        string
	width      int
	height     int
	samples    int
	ymin, ymax float64
	lang       string
	analyze    bool
	tui        bool
	serve      string
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("odeglue", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c config
	fs.Var(&c.pieces, "piece", "piece to add, repeatable: zero:a,b | pos:x0[,limit] | neg:x0[,limit] | point:x,y")
	fs.StringVar(&c.out, "out", "", "write the plot as PNG to this file")
	fs.StringVar(&c.svg, "svg", "", "write the plot as SVG to this file")
	fs.IntVar(&c.width, "width", plot.DefaultWidth, "image width")
	fs.IntVar(&c.height, "height", plot.DefaultHeight, "image height")
	fs.IntVar(&c.samples, "samples", odeglue.DefaultSamples, "samples per curve piece")
	fs.Float64Var(&c.ymin, "ymin", 0, "fixed lower y bound (auto-scaled unless -ymin < -ymax)")
	fs.Float64Var(&c.ymax, "ymax", 0, "fixed upper y bound")
	fs.StringVar(&c.lang, "lang", "en", "description language: en or he")
	fs.BoolVar(&c.analyze, "analyze", false, "check the pieces against the equation")
	fs.BoolVar(&c.tui, "tui", false, "start the interactive terminal UI")
	fs.StringVar(&c.serve, "serve", "", "serve the HTTP API on this address, e.g. :8080")
	fs.BoolVar(&c.verbose, "v", false, "log debug output to stderr")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return &c, nil
}

func (c *config) plotOptions() []plot.Option {
	opts := []plot.Option{plot.WithSize(c.width, c.height)}
	if c.ymin < c.ymax {
		opts = append(opts, plot.WithYRange(c.ymin, c.ymax))
	}
	return opts
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if c.verbose {
		odeglue.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	lang := odeglue.MatchLanguage(c.lang)
	ev := odeglue.NewEvaluator(odeglue.WithSamples(c.samples))

	catalog := odeglue.NewCatalog(lang)
	for _, arg := range c.pieces {
		p, err := parsePiece(arg, catalog.Toolbox())
		if err != nil {
			return fmt.Errorf("piece %q: %w", arg, err)
		}
		catalog.Append(p)
	}

	switch {
	case c.serve != "":
		srv := server.New(odeglue.NewSessions(),
			server.WithEvaluator(ev),
			server.WithLanguage(lang),
			server.WithPlotOptions(c.plotOptions()...))
		return srv.ListenAndServe(ctx, c.serve)
	case c.tui:
		m := tui.New(lang,
			tui.WithCatalog(catalog),
			tui.WithEvaluator(ev),
			tui.WithOutput(c.out),
			tui.WithPlotOptions(c.plotOptions()...))
		if catalog, err = tui.Run(ctx, m); err != nil {
			return err
		}
	}

	pieces := catalog.List()
	if err := plot.WriteList(stdout, pieces, lang); err != nil {
		return err
	}
	if c.analyze {
		fmt.Fprint(stdout, analysis.Check(pieces, analysis.WithEvaluator(ev)).Summary())
	}

	traces := ev.EvaluateAll(pieces)
	if c.out != "" {
		if err := plot.New(c.plotOptions()...).SavePNG(c.out, traces); err != nil {
			return err
		}
		odeglue.Logger().Info("wrote plot", "path", c.out, "pieces", len(pieces))
	}
	if c.svg != "" {
		if err := writeSVG(c.svg, traces, c.plotOptions()); err != nil {
			return err
		}
		odeglue.Logger().Info("wrote plot", "path", c.svg, "pieces", len(pieces))
	}
	return nil
}

func writeSVG(path string, traces []odeglue.Trace, opts []plot.Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return plot.RenderSVG(f, traces, opts...)
}
