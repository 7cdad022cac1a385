package main

import (
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/tarstars/change_forest/golang/change_forest/cfl"
)

func split() cli.Command {
	return cli.Command{
		Name:  "split",
		Usage: "find the best change in mean of a segment and test its significance",
		Flags: outputFlags(segmentFlags()...),
		Action: func(c *cli.Context) error {
			control, err := controlFromFlags(c)
			if err != nil {
				return err
			}
			x, start, stop, err := loadSegment(c)
			if err != nil {
				return err
			}

			gridSearch := cfl.NewGridSearch(cfl.NewChangeInMean(x, control), control)
			result, err := gridSearch.FindBestSplit(start, stop)
			if err != nil {
				return errors.Wrap(err, "problem finding the best split")
			}
			report := cfl.NewReport(result, gridSearch.ModelSelection(result))

			grip.Info(message.Fields{
				"message":        "best split",
				"start":          report.Start,
				"stop":           report.Stop,
				"best_split":     report.BestSplit,
				"max_gain":       report.MaxGain,
				"is_significant": report.IsSignificant,
			})

			if fileName := c.String(reportFlag); fileName != "" {
				if err = report.Save(fileName); err != nil {
					return errors.Wrap(err, "problem saving report")
				}
				grip.Infoln("report written to:", fileName)
			}
			if fileName := c.String(gainCurveFlag); fileName != "" {
				if err = report.DumpGainCurve(fileName); err != nil {
					return errors.Wrap(err, "problem saving gain curve")
				}
				grip.Infoln("gain curve written to:", fileName)
			}
			return nil
		},
	}
}

func candidates() cli.Command {
	return cli.Command{
		Name:  "candidates",
		Usage: "list the admissible splits of a segment",
		Flags: segmentFlags(),
		Action: func(c *cli.Context) error {
			control, err := controlFromFlags(c)
			if err != nil {
				return err
			}
			x, start, stop, err := loadSegment(c)
			if err != nil {
				return err
			}
			n, _ := x.Dims()
			if err = cfl.ValidateSegment(n, start, stop); err != nil {
				return errors.Wrap(err, "problem listing candidates")
			}

			splitCandidates := cfl.SplitCandidates(control, start, stop)
			grip.Info(message.Fields{
				"message":    "split candidates",
				"start":      start,
				"stop":       stop,
				"count":      len(splitCandidates),
				"candidates": splitCandidates,
			})
			return nil
		},
	}
}
