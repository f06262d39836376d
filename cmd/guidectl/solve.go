package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-constraint/internal/config"
	"github.com/grindlemire/go-constraint/internal/debug"
	"github.com/grindlemire/go-constraint/internal/layout"
	"github.com/grindlemire/go-constraint/internal/telemetry"
)

type solveOptions struct {
	width, height int
	json          bool
	draw          bool
	metrics       bool
	fit           bool
}

// maxParallel bounds how many files are solved at once.
const maxParallel = 8

func newSolveCmd() *cobra.Command {
	var (
		opts  solveOptions
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "solve FILE...",
		Short: "Allocate layout descriptions and print the rectangles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if opts.fit {
				if err := fitTerminal(&opts); err != nil {
					return err
				}
			}
			if !watch {
				return solveAll(cmd.Context(), args, opts, out)
			}
			if len(args) > 1 {
				return errors.New("--watch takes a single file")
			}
			path := args[0]

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchFile(ctx, path, func() {
				if err := solve(path, opts, out); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				}
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.width, "width", 0, "allocation width (default: the file's width)")
	f.IntVar(&opts.height, "height", 0, "allocation height (default: the file's height)")
	f.BoolVar(&opts.json, "json", false, "print JSON instead of a table")
	f.BoolVar(&opts.draw, "draw", false, "also draw the allocation as text")
	f.BoolVar(&opts.metrics, "metrics", false, "print solver metrics after solving")
	f.BoolVar(&opts.fit, "fit", false, "size the allocation to the current terminal")
	f.BoolVarP(&watch, "watch", "w", false, "re-solve whenever the file changes")
	return cmd
}

// solution is the result of one solve, in output order.
type solution struct {
	File   string `json:"file"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Items  []item `json:"items"`
}

type item struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func newItem(name, kind string, r layout.Rect) item {
	return item{Name: name, Kind: kind, X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func (i item) rect() layout.Rect {
	return layout.NewRect(i.X, i.Y, i.Width, i.Height)
}

// fitTerminal fills unset dimensions from the terminal on stdout.
func fitTerminal(opts *solveOptions) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) {
		return errors.New("--fit needs stdout to be a terminal")
	}
	w, h, err := terminalSize(int(fd))
	if err != nil {
		return err
	}
	if opts.width <= 0 {
		opts.width = w
	}
	if opts.height <= 0 {
		opts.height = h
	}
	return nil
}

// solveAll solves every file concurrently and writes the results in argument
// order. The first failure cancels the remaining work.
func solveAll(ctx context.Context, paths []string, opts solveOptions, w io.Writer) error {
	if len(paths) == 1 {
		return solve(paths[0], opts, w)
	}

	outs := make([]bytes.Buffer, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return solve(path, opts, &outs[i])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range outs {
		if _, err := outs[i].WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}

func solve(path string, opts solveOptions, w io.Writer) error {
	f, err := config.Load(path)
	if err != nil {
		return err
	}
	b, err := config.Build(f, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	width, height := f.Width, f.Height
	if opts.width > 0 {
		width = opts.width
	}
	if opts.height > 0 {
		height = opts.height
	}

	name := filepath.Base(path)
	collector := telemetry.NewCollector()
	collector.Track(name, b.Layout.Solver())

	start := time.Now()
	b.Layout.Allocate(width, height)
	collector.ObserveAllocation(name, time.Since(start))
	debug.Log("solve %s: %dx%d in %s", path, width, height, time.Since(start))

	sol := solution{File: name, Width: width, Height: height}
	for _, child := range b.Layout.Children() {
		sol.Items = append(sol.Items, newItem(child.Name(), "widget", child.Allocation()))
	}
	for _, g := range b.Layout.Guides() {
		sol.Items = append(sol.Items, newItem(g.Name(), "guide", g.Allocation()))
	}

	if opts.json {
		if err := writeJSON(w, sol); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w, renderTable(sol))
	}
	if opts.draw {
		fmt.Fprintln(w, draw(sol))
	}
	if opts.metrics {
		families, err := collector.Gather()
		if err != nil {
			return fmt.Errorf("gathering metrics: %w", err)
		}
		writeMetrics(w, families)
	}
	return nil
}
