// Command assess runs a casing assessment from a parameter workbook and writes the PDF report.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"CasingSafe/internal/calc/assessment"
	"CasingSafe/internal/calc/importer"
	"CasingSafe/internal/calc/report"
	"CasingSafe/internal/logging"

	"go.uber.org/zap"
)

func main() {
	in := flag.String("in", "input.xlsx", "parameter workbook")
	out := flag.String("out", "report.pdf", "report file")
	well := flag.String("well", "gas", "well type: gas or oil")
	formation := flag.String("formation", "nonplastic", "formation: nonplastic or plastic")
	project := flag.String("project", "", "project name for the report")
	author := flag.String("author", os.Getenv("USER"), "report author")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log, err := logging.New(*level)
	if err != nil {
		zap.NewExample().Fatal("logger", zap.Error(err))
	}
	defer log.Sync()

	if err := run(*in, *out, *well, *formation, report.Meta{Project: *project, Author: *author, Date: time.Now()}, log); err != nil {
		log.Fatal("assessment failed", zap.Error(err))
	}
}

func run(inPath, outPath, wellArg, formationArg string, meta report.Meta, log *zap.Logger) error {
	well, err := assessment.ParseWellType(wellArg)
	if err != nil {
		return err
	}
	formation, err := assessment.ParseFormation(formationArg)
	if err != nil {
		return err
	}

	f, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer f.Close()

	input, err := importer.Load(f, well, formation)
	if err != nil {
		return err
	}
	bundle, err := assessment.Run(context.Background(), input)
	if err != nil {
		return err
	}
	log.Info("assessed",
		zap.String("level", string(bundle.Assessment.Level)),
		zap.Float64("collapse_margin", bundle.Assessment.CollapseMargin),
		zap.Float64("burst_margin", bundle.Assessment.BurstMargin),
	)

	dst, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := report.Render(dst, meta, bundle); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}
	log.Info("report written", zap.String("path", outPath))
	return nil
}
