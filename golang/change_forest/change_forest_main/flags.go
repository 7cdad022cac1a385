package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"gonum.org/v1/gonum/mat"

	"github.com/tarstars/change_forest/golang/change_forest/cfl"
)

const (
	dataFlag                 = "data"
	configFlag               = "config"
	startFlag                = "start"
	stopFlag                 = "stop"
	minimalSegmentLengthFlag = "minimal-relative-segment-length"
	forbiddenSegmentFlag     = "forbidden-segment"
	seedFlag                 = "seed"
	reportFlag               = "report"
	gainCurveFlag            = "gain-curve"
)

func joinFlagNames(ids ...string) string { return strings.Join(ids, ", ") }

func segmentFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.StringFlag{
			Name:  joinFlagNames(dataFlag, "d"),
			Usage: "path to a two dimensional npy file, one observation per row",
		},
		cli.StringFlag{
			Name:  joinFlagNames(configFlag, "c"),
			Usage: "path to a yaml file with the control parameters",
		},
		cli.IntFlag{
			Name:  startFlag,
			Usage: "first row of the segment",
		},
		cli.IntFlag{
			Name:  stopFlag,
			Usage: "row after the last row of the segment (defaults to the number of rows)",
		},
		cli.Float64Flag{
			Name:  minimalSegmentLengthFlag,
			Usage: "minimal length of both sides of a split relative to the segment length",
		},
		cli.StringSliceFlag{
			Name:  forbiddenSegmentFlag,
			Usage: "closed range 'a:b' of rows no split may land in, repeatable",
		},
	)
}

func outputFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.Uint64Flag{
			Name:  seedFlag,
			Usage: "seed of the permutation test",
		},
		cli.StringFlag{
			Name:  joinFlagNames(reportFlag, "o"),
			Usage: "path to the json report",
		},
		cli.StringFlag{
			Name:  gainCurveFlag,
			Usage: "path to a npy file receiving the gain curve",
		},
	)
}

//controlFromFlags starts from the config file, if any, and applies the flags set on the command line.
func controlFromFlags(c *cli.Context) (cfl.Control, error) {
	control := cfl.DefaultControl()
	if fileName := c.String(configFlag); fileName != "" {
		var err error
		if control, err = cfl.LoadControl(fileName); err != nil {
			return control, errors.Wrap(err, "problem loading control")
		}
	}

	if c.IsSet(minimalSegmentLengthFlag) {
		control = control.WithMinimalRelativeSegmentLength(c.Float64(minimalSegmentLengthFlag))
	}
	for _, value := range c.StringSlice(forbiddenSegmentFlag) {
		segment, err := parseForbiddenSegment(value)
		if err != nil {
			return control, err
		}
		control = control.WithForbiddenSegments(segment)
	}
	if c.IsSet(seedFlag) {
		control = control.WithSeed(c.Uint64(seedFlag))
	}
	return control, errors.Wrap(control.Validate(), "invalid control")
}

//parseForbiddenSegment parses 'a:b' into a closed range.
func parseForbiddenSegment(value string) ([2]int, error) {
	var segment [2]int
	bounds := strings.Split(value, ":")
	if len(bounds) != 2 {
		return segment, errors.Errorf("forbidden segment '%s' is not of the form 'a:b'", value)
	}
	for idx, bound := range bounds {
		parsed, err := strconv.Atoi(strings.TrimSpace(bound))
		if err != nil {
			return segment, errors.Wrapf(err, "forbidden segment '%s'", value)
		}
		segment[idx] = parsed
	}
	return segment, nil
}

//loadSegment reads the data matrix and resolves the segment bounds.
func loadSegment(c *cli.Context) (x *mat.Dense, start, stop int, err error) {
	fileName := c.String(dataFlag)
	if fileName == "" {
		return nil, 0, 0, errors.Errorf("must specify a data file with --%s", dataFlag)
	}

	x, err = cfl.ReadNpy(fileName)
	if err != nil {
		return nil, 0, 0, errors.Wrap(err, "problem loading data")
	}

	start = c.Int(startFlag)
	stop, _ = x.Dims()
	if c.IsSet(stopFlag) {
		stop = c.Int(stopFlag)
	}
	return x, start, stop, nil
}
