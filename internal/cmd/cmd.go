/*
Copyright © 2019 the Cubical authors.
This file is part of Cubical.

Cubical is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Cubical is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Cubical.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package cmd implements the cubical command line.
package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spatialmodel/cubical"
)

// These variables hold the configuration flags.
var (
	// configFile optionally names a TOML file with the same options as
	// the flags; explicitly set flags win.
	configFile string

	// threshold is the filtration cutoff; cells born at or above it are
	// ignored.
	threshold float64

	// maxdim is the highest homology dimension to compute (0 to 2).
	maxdim int

	// method selects the algorithm: link_find, compute_pairs, or top_dim.
	method string

	// minCacheSize is the smallest reduced column worth caching; higher
	// values are slower but use less memory.
	minCacheSize int

	// output is the path of the persistence diagram file to write
	// (.csv, .npy, or DIPHA otherwise). Empty means no file output.
	output string

	// location selects the reported pair coordinates: birth, death, or
	// none.
	location string

	// print echoes each pair to the console as it is found.
	printPairs bool
)

func init() {
	Root.AddCommand(versionCmd)

	Root.Flags().StringVar(&configFile, "config", "", "TOML configuration file location")
	Root.Flags().Float64Var(&threshold, "threshold", math.Inf(1),
		"Compute the cubical complex up to this birth value.")
	Root.Flags().IntVar(&maxdim, "maxdim", 2,
		"Compute persistent homology up to this dimension.")
	Root.Flags().StringVar(&method, "method", "link_find",
		"Method for computing persistent homology: link_find computes dimension 0 "+
			"with the union-find sweep, compute_pairs computes every dimension by "+
			"matrix reduction, and top_dim computes only the top dimension by "+
			"Alexander duality.")
	Root.Flags().IntVar(&minCacheSize, "min_cache_size", 0,
		"Minimum number of entries of a reduced column to be cached "+
			"(higher is slower but uses less memory).")
	Root.Flags().StringVar(&output, "output", "",
		"Name of the file that will contain the persistence diagram.")
	Root.Flags().StringVar(&location, "location", "birth",
		"Type of location to output with each pair: birth, death, or none.")
	Root.Flags().BoolVar(&printPairs, "print", false,
		"Print persistence pairs on the console.")
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "cubical [flags] input_filename",
	Short: "Persistent homology of cubical complexes.",
	Long: `Cubical computes the persistent homology of the sublevel-set filtration
of a 1-, 2- or 3-dimensional scalar grid, such as a grayscale image or a
volume. Input formats are Perseus text (.txt), NumPy (.npy), and DIPHA
image data (.complex), inferred from the file name.`,
	Args: cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, input, err := buildConfig(cmd, args)
		if err != nil {
			return err
		}
		if input == "" {
			return fmt.Errorf("an input file is required")
		}
		// The arguments are valid; later errors are not usage errors.
		cmd.SilenceUsage = true
		g, err := cubical.ReadGrid(input, cfg.Threshold)
		if err != nil {
			return err
		}
		d, err := cfg.Run(g)
		if err != nil {
			return err
		}
		if output == "" {
			return nil
		}
		return cubical.WriteDiagram(d, output, cfg.Location)
	},
	DisableAutoGenTag: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of Cubical.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Cubical v%s\n", cubical.Version)
	},
}

// buildConfig merges the configuration file, if any, with the flags and
// returns the run configuration and the input file name.
func buildConfig(cmd *cobra.Command, args []string) (*cubical.Config, string, error) {
	fileCfg, err := readConfigFile(configFile)
	if err != nil {
		return nil, "", err
	}
	merge := func(name string, file, flag string) string {
		if file != "" && !cmd.Flags().Changed(name) {
			return file
		}
		return flag
	}
	if fileCfg.Threshold != nil && !cmd.Flags().Changed("threshold") {
		threshold = *fileCfg.Threshold
	}
	if fileCfg.MaxDim != nil && !cmd.Flags().Changed("maxdim") {
		maxdim = *fileCfg.MaxDim
	}
	if fileCfg.MinCacheSize != nil && !cmd.Flags().Changed("min_cache_size") {
		minCacheSize = *fileCfg.MinCacheSize
	}
	if fileCfg.Print != nil && !cmd.Flags().Changed("print") {
		printPairs = *fileCfg.Print
	}
	method = merge("method", fileCfg.Method, method)
	location = merge("location", fileCfg.Location, location)
	output = merge("output", fileCfg.Output, output)

	input := fileCfg.Input
	if len(args) > 0 {
		input = args[0]
	}

	m, err := cubical.ParseMethod(method)
	if err != nil {
		return nil, "", err
	}
	loc, err := cubical.ParseLocation(location)
	if err != nil {
		return nil, "", err
	}
	if maxdim < 0 || maxdim > 2 {
		return nil, "", fmt.Errorf("maxdim must be 0, 1, or 2, not %d", maxdim)
	}
	if minCacheSize < 0 {
		return nil, "", fmt.Errorf("min_cache_size must not be negative")
	}
	cfg := &cubical.Config{
		Threshold:    threshold,
		MaxDim:       maxdim,
		Method:       m,
		MinCacheSize: minCacheSize,
		Location:     loc,
	}
	if printPairs {
		cfg.Print = os.Stdout
	}
	return cfg, input, nil
}

// Log configures the logger used by the library.
func Log() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:  true,
		DisableSorting: true,
	})
}
