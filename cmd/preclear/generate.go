package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/solardome/preclear-demo/internal/generator"
	"github.com/solardome/preclear-demo/internal/policy"
	"github.com/solardome/preclear-demo/internal/report"
)

type generateFlags struct {
	file          string
	demo          bool
	policyPath    string
	seed          uint64
	outJSON       string
	outHTML       string
	checksumsPath string
	noHTML        bool
}

func newGenerateCmd() *cobra.Command {
	f := generateFlags{outJSON: "report.json", outHTML: "report.html"}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a single report to disk without starting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.demo == (strings.TrimSpace(f.file) != "") {
				return errors.New("exactly one of --file or --demo is required")
			}
			rep, pol, err := generateReport(f)
			if err != nil {
				return err
			}

			artifacts := []string{f.outJSON}
			if err := report.WriteJSON(f.outJSON, rep); err != nil {
				return err
			}
			if !f.noHTML {
				opts := report.DefaultRenderOptions()
				opts.SOCPreviewLimit = pol.SOCNoise.PreviewLimit
				if err := report.NewRenderer(opts).WriteHTML(f.outHTML, rep); err != nil {
					return errors.Wrap(err, "write html")
				}
				artifacts = append(artifacts, f.outHTML)
			}

			checksums := f.checksumsPath
			if strings.TrimSpace(checksums) == "" {
				checksums = report.DefaultChecksumsPath(f.outJSON)
			}
			if err := report.WriteChecksums(checksums, artifacts); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "report_id=%s verdict=%s final_risk=%d deception=%t report=%s checksums=%s\n",
				rep.ID, rep.Verdict, rep.FinalRisk, rep.DeceptionTriggered, f.outJSON, checksums)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.file, "file", "f", "", "artifact to analyze")
	cmd.Flags().BoolVar(&f.demo, "demo", false, "write the scripted investor demo report instead")
	cmd.Flags().StringVar(&f.policyPath, "policy", "", "path to scoring policy YAML")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "fix the random source (0 = random)")
	cmd.Flags().StringVar(&f.outJSON, "out-json", f.outJSON, "output report JSON path")
	cmd.Flags().StringVar(&f.outHTML, "out-html", f.outHTML, "output report HTML path")
	cmd.Flags().StringVar(&f.checksumsPath, "checksums", "", "output checksums.sha256 path (default next to out-json)")
	cmd.Flags().BoolVar(&f.noHTML, "no-html", false, "skip the HTML report")

	return cmd
}

func generateReport(f generateFlags) (report.Report, policy.Policy, error) {
	pol, err := policy.Load(f.policyPath)
	if err != nil {
		return report.Report{}, policy.Policy{}, err
	}
	var opts []generator.Option
	if f.seed != 0 {
		opts = append(opts, generator.WithSeed(f.seed))
	}
	gen := generator.New(pol, opts...)

	if f.demo {
		return gen.DemoReport(), pol, nil
	}
	content, err := os.ReadFile(f.file)
	if err != nil {
		return report.Report{}, policy.Policy{}, errors.Wrapf(err, "read artifact %s", f.file)
	}
	return gen.Analyze(filepath.Base(f.file), content), pol, nil
}
