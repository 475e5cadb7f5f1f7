/*
Copyright © 2025 the gefsplots authors.
This file is part of gefsplots.

gefsplots is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

gefsplots is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with gefsplots.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package gefsplotsutil holds the command-line interface of the
// gefsplots plotting tool.
package gefsplotsutil

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bbakernoaa/gefsplots"
	"github.com/ctessum/geom/index/rtree"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is the version of this program.
const Version = "0.1.0"

// Cfg holds configuration information.
var Cfg *viper.Viper

var logger *logrus.Logger

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	})

	// Options are the configuration options available to gefsplots.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "date",
			usage: `
              date is the forecast initialization date in MM-DD-YYYY format.`,
			shorthand:  "d",
			defaultVal: gefsplots.DefaultDate,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "cycle",
			usage: `
              cycle is the forecast cycle (00, 06, 12, or 18).`,
			shorthand:  "c",
			defaultVal: gefsplots.DefaultCycle,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "variable",
			usage: `
              variable is the variable to plot. If empty, the default
              variable of the chosen product is plotted. Run 'gefsplots
              variables' for the recognized names.`,
			shorthand:  "v",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "levels",
			usage: `
              levels are the contour levels for plotting, in strictly
              increasing order.`,
			defaultVal: []string{"1", "2", "4", "8", "16", "32", "64", "128"},
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "output",
			usage: `
              output is the file the plot is saved to. The extension
              selects the image format (.png, .jpg, .jpeg, or .tiff).`,
			shorthand:  "o",
			defaultVal: gefsplots.DefaultOutput,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "model_level",
			usage: `
              model_level is the hybrid model level to plot from the
              three-dimensional half-degree product.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{halfdegreeCmd.Flags()},
		},
		{
			name: "cache_dir",
			usage: `
              cache_dir is the local directory where downloaded files
              are cached between invocations.`,
			defaultVal: gefsplots.DefaultCacheDir,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "states",
			usage: `
              states is the location of a shapefile of political
              boundaries to overlay on the map. It may be a local path,
              an http(s) URL, or a blob-storage URL; if empty, no
              boundaries are drawn.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "show",
			usage: `
              show opens the saved plot in the system image viewer.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "aws_region",
			usage: `
              aws_region is the AWS region used when fetching from S3.`,
			defaultVal: gefsplots.DefaultRegion,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "retries",
			usage: `
              retries bounds how many times a failed download is retried
              before giving up. Missing remote files are never retried.`,
			defaultVal: 3,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GEFSPLOTS")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(variablesCmd)
	Root.AddCommand(atmosphereCmd)
	Root.AddCommand(surfaceCmd)
	Root.AddCommand(halfdegreeCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("gefsplots: reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "gefsplots",
	Short: "Plot GEFS aerosol and chemistry forecasts.",
	Long: `gefsplots downloads GEFS-chem forecast files from the public
noaa-gefs-pds bucket and plots a chosen aerosol variable over North
America. Use the subcommands below to choose a product family.

Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the
format 'GEFSPLOTS_var' where 'var' is the name of the variable to be
set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gefsplots v%s\n", Version)
	},
}

var variablesCmd = &cobra.Command{
	Use:   "variables",
	Short: "List the recognized variables of each product family.",
	Run: func(cmd *cobra.Command, args []string) {
		for _, family := range []gefsplots.ProductFamily{
			gefsplots.EntireAtmosphere, gefsplots.Surface, gefsplots.HalfDegree,
		} {
			vars := family.Variables()
			fmt.Printf("%s:\n", family)
			for _, name := range vars.Names() {
				fmt.Printf("  %-15s %s\n", name, vars[name].Description)
			}
		}
	},
}

var atmosphereCmd = &cobra.Command{
	Use:   "atmosphere",
	Short: "Plot an entire-atmosphere column variable from the 0.25° product.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(gefsplots.EntireAtmosphere)
	},
}

var surfaceCmd = &cobra.Command{
	Use:   "surface",
	Short: "Plot a surface concentration variable from the 0.25° product.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(gefsplots.Surface)
	},
}

var halfdegreeCmd = &cobra.Command{
	Use:   "halfdegree",
	Short: "Plot one model level of the half-degree 3-D aerosol product.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(gefsplots.HalfDegree)
	},
}

// run executes the fetch-select-render pipeline for one product family.
// All argument validation happens before any network access.
func run(family gefsplots.ProductFamily) error {
	levels, err := parseLevels(Cfg.GetStringSlice("levels"))
	if err != nil {
		return err
	}
	req, err := gefsplots.NewRequest(family,
		Cfg.GetString("date"),
		Cfg.GetString("cycle"),
		Cfg.GetString("variable"),
		levels,
		os.ExpandEnv(Cfg.GetString("output")),
		Cfg.GetInt("model_level"))
	if err != nil {
		return err
	}
	ctx := context.Background()

	key := family.RemoteKey(req.Date, req.Cycle)
	logger.Infof("fetching %s", key)
	fetcher := gefsplots.NewFetcher(os.ExpandEnv(Cfg.GetString("cache_dir")), logger)
	fetcher.Region = Cfg.GetString("aws_region")
	fetcher.MaxRetries = uint64(Cfg.GetInt("retries"))
	ds, err := fetcher.Fetch(ctx, key, family.Variables(), family.Filter())
	if err != nil {
		return err
	}

	v, err := ds.Select(req.Variable)
	if err != nil {
		return err
	}
	if family == gefsplots.HalfDegree {
		field, err := v.AtLevel(float64(req.ModelLevel))
		if err != nil {
			return err
		}
		v = &gefsplots.Variable{Name: v.Name, Fields: []*gefsplots.Field{field}}
	}

	var states *rtree.Rtree
	if s := os.ExpandEnv(Cfg.GetString("states")); s != "" {
		path, err := maybeDownload(ctx, s)
		if err != nil {
			return err
		}
		states, err = gefsplots.LoadStates(path)
		if err != nil {
			return err
		}
	}

	if err := savePlot(v, req.Levels, states, req.Output); err != nil {
		return err
	}
	logger.Infof("saved %s plot of %s to %s", family, req.Variable, req.Output)

	if Cfg.GetBool("show") {
		if err := open.Run(req.Output); err != nil {
			logger.Warnf("opening %s for display: %v", req.Output, err)
		}
	}
	return nil
}

// savePlot renders v and writes the image to path, choosing the format
// from the file extension. The image is rendered in memory first so a
// failed render leaves no file behind at path.
func savePlot(v *gefsplots.Variable, levels []float64, states *rtree.Rtree, path string) error {
	renderer := gefsplots.NewRenderer()
	renderer.Logger = logger
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	var buf bytes.Buffer
	if err := renderer.Render(v, levels, states, &buf, format); err != nil {
		return err
	}
	if err := ioutil.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("gefsplots: writing output file: %v", err)
	}
	return nil
}

// parseLevels converts the levels flag values to numbers.
func parseLevels(raw []string) ([]float64, error) {
	levels := make([]float64, len(raw))
	for i, s := range raw {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, &gefsplots.InvalidArgumentError{Field: "levels",
				Reason: fmt.Sprintf("%q is not a number", s)}
		}
		levels[i] = v
	}
	return levels, nil
}
