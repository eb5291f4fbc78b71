package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	planConfig   string
	planTemplate string
	planOut      string
	planPolicy   string
	planAuditDir string
	planStoreDir string
	planOTEL     string
	planDebug    bool
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan log subscription wiring for a resource graph",
	Long: `Plan walks the generated resource graph, decides which log groups
should forward to the configured destination, and merges the resulting
subscription filters back into the template.

The forwarder is validated first; a missing forwarder aborts the pass.
Quota conflicts, policy exclusions and unresolvable destinations are
reported as warnings and never fail the pass.`,
	Example: `  virta plan --config virta.yaml --template out/template.json
  virta plan --config virta.yaml --template t.json --out wired.json
  virta plan --config virta.yaml --template t.json --policy exclusions.rego
  virta plan --config virta.yaml --template t.json --audit-dir .virta/wal`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVarP(&planConfig, "config", "c", "virta.yaml", "Path to the virta configuration file")
	planCmd.Flags().StringVarP(&planTemplate, "template", "t", "", "Path to the generated resource graph template (JSON)")
	planCmd.Flags().StringVarP(&planOut, "out", "o", "", "Where to write the wired template (defaults to the template path)")
	planCmd.Flags().StringVar(&planPolicy, "policy", "", "Optional Rego exclusion policy file")
	planCmd.Flags().StringVar(&planAuditDir, "audit-dir", "", "Directory for the decision journal (disabled when empty)")
	planCmd.Flags().StringVar(&planStoreDir, "store-dir", "", "Directory for the pass history store (disabled when empty)")
	planCmd.Flags().StringVar(&planOTEL, "otel", "", "OTLP endpoint for traces and metrics (e.g. localhost:4317)")
	planCmd.Flags().BoolVar(&planDebug, "debug", false, "Enable debug logging")

	_ = planCmd.MarkFlagRequired("template")
}

func runPlan(cmd *cobra.Command, args []string) error {
	planCommand := &PlanCommand{
		ConfigPath:   planConfig,
		TemplatePath: planTemplate,
		OutputPath:   planOut,
		PolicyPath:   planPolicy,
		AuditDir:     planAuditDir,
		StoreDir:     planStoreDir,
		OTELEndpoint: planOTEL,
		Debug:        planDebug,
	}

	if planCommand.OutputPath == "" {
		planCommand.OutputPath = planCommand.TemplatePath
	}

	if err := planCommand.Run(cmd.Context()); err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}
	return nil
}
