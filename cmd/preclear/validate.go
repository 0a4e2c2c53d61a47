package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/solardome/preclear-demo/internal/policy"
)

func newValidatePolicyCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate-policy",
		Short: "Check a scoring policy file and print its effective values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				return errors.New("--policy is required")
			}
			pol, err := policy.Load(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "policy ok: %s\n", path)
			fmt.Fprintf(out, "schema_version=%s behavior=%d..%d deception=1/%d(+%d) quarantine_floor=%d block_floor=%d soc_noise=%d..%d\n",
				pol.SchemaVersion,
				pol.Behavior.MinScore, pol.Behavior.MaxScore,
				pol.Deception.OneIn, pol.Deception.RiskBoost,
				pol.Verdict.QuarantineFloor, pol.Verdict.BlockFloor,
				pol.SOCNoise.MinAlerts, pol.SOCNoise.MaxAlerts,
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "policy", "p", "", "path to scoring policy YAML")
	return cmd
}
