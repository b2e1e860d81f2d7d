package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/google/subcommands"
)

type projectCmd struct {
	planFile   string
	outputFile string
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "compute the projection traces for a plan file" }
func (*projectCmd) Usage() string {
	return `project -plan <plan.json> [-o <traces.json>]

  Reads a compensation plan in its JSON form, computes the per-component and
  total series over the projection window, and writes the traces as a JSON
  array to stdout or to the given file.

Usage Examples:
$ tcc project -plan plan.json > traces.json
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.planFile, "plan", "", "path to the plan JSON file")
	f.StringVar(&c.outputFile, "o", "", "output file (default stdout)")
}

func (c *projectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var out io.Writer = os.Stdout
	if c.outputFile != "" {
		file, err := os.Create(c.outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.outputFile, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		out = file
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(traces); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing traces: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
