package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/snowsecure/fieldwise/internal/schemadef"
)

// ValidateReport summarizes a doctype config validation run.
type ValidateReport struct {
	Valid     bool     `json:"valid"`
	FileCount int      `json:"file_count"`
	DocTypes  []string `json:"doctypes"`
	Errors    []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate subcommand.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	var schemasDir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate doctype configuration",
		Long:  "Loads every doctype CUE file in a directory and reports all authoring errors.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}
			return runValidate(schemasDir, formatter)
		},
	}

	cmd.Flags().StringVar(&schemasDir, "schemas", "", "directory of doctype CUE config (required)")
	cmd.MarkFlagRequired("schemas")

	return cmd
}

func runValidate(schemasDir string, formatter *OutputFormatter) error {
	registry, errs := schemadef.Load(schemasDir, schemadef.LoadModeCollectAll)
	if registry == nil {
		// Directory-level failure: nothing was loadable.
		var loadErr *schemadef.LoadError
		if len(errs) > 0 && errors.As(errs[0], &loadErr) {
			formatter.Error(loadErr.Code, loadErr.Message, nil)
			return NewExitError(ExitCommandError, loadErr.Message)
		}
		return NewExitError(ExitCommandError, "loading doctype config failed")
	}

	report := &ValidateReport{
		Valid:     len(errs) == 0,
		FileCount: registry.FileCount,
	}
	for id := range registry.Schemas {
		report.DocTypes = append(report.DocTypes, id)
	}
	sort.Strings(report.DocTypes)
	for _, err := range errs {
		report.Errors = append(report.Errors, err.Error())
	}

	if formatter.Format == "json" {
		if err := formatter.SuccessJSON(report); err != nil {
			return err
		}
	} else {
		renderValidateText(formatter, report)
	}

	if !report.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d doctype config error(s)", len(report.Errors)))
	}
	return nil
}

func renderValidateText(formatter *OutputFormatter, report *ValidateReport) {
	w := formatter.Writer
	if report.Valid {
		fmt.Fprintf(w, "OK: %d doctype(s) in %d file(s)\n", len(report.DocTypes), report.FileCount)
	} else {
		fmt.Fprintf(w, "INVALID: %d error(s)\n", len(report.Errors))
	}
	for _, id := range report.DocTypes {
		fmt.Fprintf(w, "  doctype %s\n", id)
	}
	for _, msg := range report.Errors {
		fmt.Fprintf(w, "  error: %s\n", msg)
	}
}
