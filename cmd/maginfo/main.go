// Command maginfo inspects magnetization arrays saved in a store and prints
// their spectral summary.
//
// Usage:
//
//	maginfo -db <path> [flags]
//
// Examples:
//
//	maginfo -db ./data -list
//	maginfo -db ./data -key run1
//	maginfo -db ./data -key run1 -component ft_y -backend gonum
//	maginfo -db ./data -key run1 -magnitude -dc
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-magspec/labeled"
	"github.com/cwbudde/algo-magspec/spectral"
	"github.com/cwbudde/algo-magspec/store"
)

var backends = map[string]spectral.Backend{
	"auto":    spectral.BackendAuto,
	"algofft": spectral.BackendAlgoFFT,
	"gonum":   spectral.BackendGonum,
}

type options struct {
	db        string
	list      bool
	key       string
	component string
	backend   string
	magnitude bool
	keepDC    bool
}

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("maginfo", flag.ContinueOnError)
	fs.StringVar(&o.db, "db", "", "store directory (required)")
	fs.BoolVar(&o.list, "list", false, "list stored keys")
	fs.StringVar(&o.key, "key", "", "transform the array stored under this key")
	fs.StringVar(&o.component, "component", "", "report only this spectral component (ft_x, ft_y, ft_z)")
	fs.StringVar(&o.backend, "backend", "auto", "FFT backend: auto, algofft or gonum")
	fs.BoolVar(&o.magnitude, "magnitude", false, "rank bins by summed magnitude instead of power")
	fs.BoolVar(&o.keepDC, "dc", false, "also print the zero-frequency bin value")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: maginfo -db <path> [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the spectral summary of stored magnetization arrays.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.db == "" {
		return o, errors.New("-db is required")
	}
	if !o.list && o.key == "" {
		return o, errors.New("one of -list or -key is required")
	}
	if _, ok := backends[strings.ToLower(o.backend)]; !ok {
		return o, fmt.Errorf("unknown backend %q", o.backend)
	}
	return o, nil
}

func run(w io.Writer, args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg := store.DefaultConfig()
	cfg.Path = o.db
	s, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if o.list {
		return printList(w, s)
	}
	return printSummary(w, s, o)
}

func printList(w io.Writer, s *store.Store) error {
	keys, err := s.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		fmt.Fprintln(w, k)
	}
	return nil
}

func printSummary(w io.Writer, s *store.Store, o options) error {
	a, err := s.Get(o.key)
	if err != nil {
		return err
	}
	out, err := spectral.Transform(a, spectral.WithBackend(backends[strings.ToLower(o.backend)]))
	if err != nil {
		return err
	}

	reduce := spectral.PowerSpectrum
	if o.magnitude {
		reduce = spectral.MagnitudeSpectrum
	}
	spec, err := reduce(out)
	if err != nil {
		return err
	}

	components := labeled.SpectralLabels()
	if o.component != "" {
		components = []string{o.component}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "key\t%s\n", o.key)
	if out.Attrs.Driver != "" {
		fmt.Fprintf(tw, "driver\t%s\n", out.Attrs.Driver)
	}
	fmt.Fprintf(tw, "n\t%d\n", out.Attrs.N)
	fmt.Fprintf(tw, "shape\t%v\n", out.Shape())
	fmt.Fprintf(tw, "max_frequency\t%s\n", out.Attrs.MaxFrequency)
	fmt.Fprintf(tw, "frequency_resolution\t%s\n", out.Attrs.FrequencyResolution)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "component\tpeak\tpeak bin value\tcentroid\tspread\tdc value")

	for _, comp := range components {
		peak, err := spectral.PeakFrequency(spec, comp)
		if err != nil {
			return err
		}
		centroid, err := spectral.Centroid(spec, comp)
		if err != nil {
			return err
		}
		spread, err := spectral.Spread(spec, comp)
		if err != nil {
			return err
		}
		c := spec.Axes[1].Index(comp)
		f, _ := spec.Axis(labeled.DimF)
		bin := slices.Index(f.Values, peak)
		dc := "-"
		if o.keepDC {
			dc = fmt.Sprintf("%.6g", spec.At(0, c))
		}
		fmt.Fprintf(tw, "%s\t%s\t%.6g\t%s\t%s\t%s\n", comp, spectral.FormatHz(peak), spec.At(bin, c),
			spectral.FormatHz(centroid), spectral.FormatHz(spread), dc)
	}
	return tw.Flush()
}
