// Command edasymp computes sympathetic activity indices from an
// electrodermal activity record.
//
// Usage:
//
//	edasymp [flags] [file]
//
// The record is read from file, or from stdin when no file is given,
// one sample per line. Blank lines and lines starting with '#' are
// skipped.
//
// Examples:
//
//	edasymp -rate 100 record.txt
//	edasymp -rate 400 -method ghiasi record.txt
//	edasymp -rate 100 -band 0.045:0.25 -all record.txt
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-eda/dsp/spectral"
	"github.com/cwbudde/algo-eda/eda"
)

func main() {
	rate := flag.Float64("rate", 0, "sampling rate of the record in Hz (required)")
	methodName := flag.String("method", "posada", "index method: posada or ghiasi")
	bandSpec := flag.String("band", "", "frequency band as low:high in Hz (default 0.045:0.25)")
	all := flag.Bool("all", false, "compute every method, one row per method")
	correctedUnits := flag.Bool("resampled-rate-units", false,
		"size the ghiasi analysis in units of the 50 Hz analysis rate (corrected behavior)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: edasymp [flags] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Computes sympathetic activity indices from an EDA record,\n")
		fmt.Fprintf(os.Stderr, "read one sample per line from file or stdin.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  edasymp -rate 100 record.txt\n")
		fmt.Fprintf(os.Stderr, "  edasymp -rate 400 -method ghiasi record.txt\n")
		fmt.Fprintf(os.Stderr, "  edasymp -rate 100 -all record.txt\n")
	}
	flag.Parse()

	if *rate <= 0 {
		fmt.Fprintf(os.Stderr, "error: -rate must be a positive sampling rate in Hz\n")
		os.Exit(1)
	}

	methods, err := selectMethods(*methodName, *all)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	opts := []eda.Option{}
	if *bandSpec != "" {
		band, err := parseBand(*bandSpec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, eda.WithBand(band))
	}
	if *correctedUnits {
		opts = append(opts, eda.WithResampledRateOverlap())
	}

	signal, err := readSamples(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Method\tSamples\tDuration [s]\tSymp\tSympN\n")
	fmt.Fprintf(tw, "------\t-------\t------------\t----\t-----\n")

	duration := float64(len(signal)) / *rate

	for _, method := range methods {
		indices, err := eda.Sympathetic(signal, *rate, append(opts, eda.WithMethod(method))...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", method, err)
			os.Exit(1)
		}

		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.6g\t%.6g\n",
			method, len(signal), duration, indices.Symp, indices.SympN)
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
		os.Exit(1)
	}
}

func selectMethods(name string, all bool) ([]eda.Method, error) {
	if all {
		return []eda.Method{eda.MethodPosada, eda.MethodGhiasi}, nil
	}

	method, err := eda.ParseMethod(name)
	if err != nil {
		return nil, err
	}

	return []eda.Method{method}, nil
}

func parseBand(spec string) (spectral.Band, error) {
	low, high, ok := strings.Cut(spec, ":")
	if !ok {
		return spectral.Band{}, fmt.Errorf("band %q: expected low:high", spec)
	}

	lo, err := strconv.ParseFloat(strings.TrimSpace(low), 64)
	if err != nil {
		return spectral.Band{}, fmt.Errorf("band %q: %w", spec, err)
	}

	hi, err := strconv.ParseFloat(strings.TrimSpace(high), 64)
	if err != nil {
		return spectral.Band{}, fmt.Errorf("band %q: %w", spec, err)
	}

	band := spectral.Band{Low: lo, High: hi}
	if err := band.Validate(); err != nil {
		return spectral.Band{}, err
	}

	return band, nil
}

func readSamples(path string) ([]float64, error) {
	var reader io.Reader = os.Stdin

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		reader = f
	}

	var signal []float64

	scanner := bufio.NewScanner(reader)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		signal = append(signal, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(signal) == 0 {
		return nil, fmt.Errorf("no samples read")
	}

	return signal, nil
}
