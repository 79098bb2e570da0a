// flexcli runs the beam-analysis engine on a JSON request file without
// the HTTP service.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"Flexura/internal/beam/analysis"
	"Flexura/internal/beam/model"
)

var requestFile string

var rootCmd = &cobra.Command{
	Use:   "flexcli",
	Short: "Beam analysis from the command line",
	Long: `flexcli runs the same analysis engine the API serves, on a local
JSON request file.

Examples:
  flexcli analyze -f request.json
  flexcli validate -f request.json`,
	SilenceUsage: true,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a full analysis and print reactions, extremes and safety",
	RunE:  runAnalyze,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a request for configuration problems without solving",
	RunE:  runValidate,
}

func init() {
	for _, c := range []*cobra.Command{analyzeCmd, validateCmd} {
		c.Flags().StringVarP(&requestFile, "file", "f", "", "JSON request file [required]")
		c.MarkFlagRequired("file")
		rootCmd.AddCommand(c)
	}
}

func loadRequest() (model.AnalysisRequest, error) {
	var req model.AnalysisRequest
	b, err := os.ReadFile(requestFile)
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(b, &req); err != nil {
		return req, fmt.Errorf("parse %s: %w", requestFile, err)
	}
	return req, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	req, err := loadRequest()
	if err != nil {
		return err
	}
	res, err := analysis.Analyze(req)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("BEAM ANALYSIS  (%s, %.3f m, %s)\n", res.Supports.Type, res.Beam.Length, res.Method)
	fmt.Println("----------------------------------------------------------------")

	fmt.Println("REACTIONS:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, r := range res.Reactions {
		fmt.Fprintf(w, "  %s\tx = %.3f m\tV = %.2f N\tH = %.2f N\tM = %.2f N*m\n",
			r.SupportID, r.Position, r.VerticalForce, r.HorizontalForce, r.Moment)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("EXTREMES:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Shear:\t%.4g N\tat x = %.3f m\n", res.MaxShear.Value, res.MaxShear.Position)
	fmt.Fprintf(w, "  Moment:\t%.4g N*m\tat x = %.3f m\n", res.MaxMoment.Value, res.MaxMoment.Position)
	if len(res.Deflections) > 0 {
		fmt.Fprintf(w, "  Deflection:\t%.4g m\tat x = %.3f m\n", res.MaxDeflection.Value, res.MaxDeflection.Position)
	}
	if len(res.Stresses) > 0 {
		fmt.Fprintf(w, "  Stress:\t%.4g Pa\tat x = %.3f m\n", res.MaxStress.Value, res.MaxStress.Position)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("SAFETY:")
	status := "SAFE"
	if !res.SafetyCheck.IsStructurallySafe {
		status = "NOT SAFE"
	}
	fmt.Printf("  Status: %s (safety factor %.2f)\n", status, res.SafetyCheck.SafetyFactor)
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, cp := range res.SafetyCheck.CriticalPoints {
		fmt.Fprintf(w, "  %s:\tutilization %.0f%%\tat x = %.3f m\t(%s)\n",
			cp.Type, cp.UtilizationRatio*100, cp.Position, cp.Severity)
	}
	w.Flush()
	for _, warning := range res.SafetyCheck.Warnings {
		fmt.Println("  Warning:", warning)
	}
	for _, rec := range res.SafetyCheck.Recommendations {
		fmt.Println("  Recommendation:", rec)
	}
	fmt.Println()
	fmt.Printf("Done in %.2f ms.\n", res.CalculationTime)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	req, err := loadRequest()
	if err != nil {
		return err
	}
	out := analysis.Validate(req)

	if out.IsValid {
		fmt.Println("Request is valid.")
	} else {
		fmt.Println("Request is INVALID:")
		for _, e := range out.Errors {
			fmt.Println("  -", e)
		}
	}
	for _, warning := range out.Warnings {
		fmt.Println("  Warning:", warning)
	}
	for _, s := range out.Suggestions {
		fmt.Println("  Suggestion:", s)
	}
	if !out.IsValid {
		return fmt.Errorf("%d problem(s) found", len(out.Errors))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
