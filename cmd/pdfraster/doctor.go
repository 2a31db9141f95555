package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfraster/internal/preflight"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that pdfraster's dependencies are available",
	Long: `Doctor runs the dependency probes without converting anything: the
in-process PDF library and the pdftoppm executable, resolved from
--poppler_path or PATH. The exit status is non-zero when any probe
fails.`,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().String("poppler_path", "", "directory containing the poppler executables if not on PATH")
	doctorCmd.Flags().Bool("yaml", false, "print the report as YAML")

	rootCmd.AddCommand(doctorCmd)
}

// doctorRow is the YAML shape of one probe result.
type doctorRow struct {
	Name   string `yaml:"name"`
	OK     bool   `yaml:"ok"`
	Detail string `yaml:"detail,omitempty"`
	Error  string `yaml:"error,omitempty"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	popplerPath, _ := cmd.Flags().GetString("poppler_path")
	if popplerPath == "" {
		popplerPath = appConfig().Render.PopplerPath
	}

	checks := preflight.CheckDependencies(popplerPath)

	asYAML, _ := cmd.Flags().GetBool("yaml")
	if asYAML {
		rows := make([]doctorRow, 0, len(checks))
		for _, c := range checks {
			row := doctorRow{Name: c.Name, OK: c.OK, Detail: c.Detail}
			if c.Err != nil {
				row.Error = c.Err.Error()
			}
			rows = append(rows, row)
		}
		out, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("rendering report: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
	} else {
		for _, c := range checks {
			if c.OK {
				color.Green("ok       %-12s %s", c.Name, c.Detail)
			} else {
				color.Red("missing  %-12s %v", c.Name, c.Err)
			}
		}
	}

	return preflight.FirstError(checks)
}
