package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ewanh/compchart"
	"github.com/google/subcommands"
)

type reportCmd struct {
	planFile string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the projection as a table" }
func (*reportCmd) Usage() string {
	return `report -plan <plan.json>

  Computes the projection and displays a per-sample table of every component
  and the total, formatted as currency.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.planFile, "plan", "", "path to the plan JSON file")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.planFile == "" {
		fmt.Fprintln(os.Stderr, "the -plan flag is required")
		return subcommands.ExitUsageError
	}

	plan, err := DecodePlanFile(c.planFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading plan: %v\n", err)
		return subcommands.ExitFailure
	}

	traces, err := NewEngine().Project(ctx, plan)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing projection: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(reportMarkdown(plan, traces))
	return subcommands.ExitSuccess
}

// reportMarkdown lays the traces out as a markdown table, one row per sample.
func reportMarkdown(plan *compchart.CompensationPlan, traces []compchart.Trace) string {
	var b strings.Builder
	w := plan.Assumptions.Window
	fmt.Fprintf(&b, "# Compensation projection %s to %s\n\n", w.From, w.To)

	b.WriteString("| Date |")
	for _, tr := range traces {
		fmt.Fprintf(&b, " %s |", tr.Name)
	}
	b.WriteString("\n|------|")
	for range traces {
		b.WriteString("-----:|")
	}
	b.WriteString("\n")

	for i := range traces[0].X {
		fmt.Fprintf(&b, "| %s |", traces[0].X[i])
		for _, tr := range traces {
			fmt.Fprintf(&b, " %s |", compchart.USD(tr.Y[i]))
		}
		b.WriteString("\n")
	}
	return b.String()
}
