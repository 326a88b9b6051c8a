package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/snowsecure/fieldwise/internal/agreement"
)

// ExplainReport is the per-document report the explain command emits.
type ExplainReport struct {
	DocumentID string                         `json:"document_id"`
	Excluded   string                         `json:"excluded,omitempty"`
	Result     *agreement.DocumentExplanation `json:"result,omitempty"`
}

// NewExplainCommand creates the explain subcommand.
func NewExplainCommand(opts *RootOptions) *cobra.Command {
	flags := &snapshotFlags{}

	cmd := &cobra.Command{
		Use:   "explain <document-id>",
		Short: "Show one document's per-field outcomes",
		Long: `Scores a single document and lists every evaluated field with its
outcome and the normalized values the classifier compared. Documents that are
not yet reviewed or were reclassified report their exclusion reason instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}
			return runExplain(cmd, flags, args[0], formatter)
		},
	}

	cmd.Flags().StringVar(&flags.SchemasDir, "schemas", "", "directory of doctype CUE config (required)")
	cmd.Flags().StringVar(&flags.SnapshotPath, "snapshot", "", "JSON document snapshot file")
	cmd.Flags().StringVar(&flags.DBPath, "db", "", "intake document database (SQLite)")
	cmd.MarkFlagRequired("schemas")

	return cmd
}

func runExplain(cmd *cobra.Command, flags *snapshotFlags, id string, formatter *OutputFormatter) error {
	evaluator, err := loadEvaluator(flags)
	if err != nil {
		return err
	}
	docs, err := loadDocuments(cmd.Context(), flags)
	if err != nil {
		return err
	}
	doc, err := findDocument(docs, id)
	if err != nil {
		return err
	}

	report := &ExplainReport{DocumentID: id}
	explanation, excluded := evaluator.ExplainDocument(doc)
	if explanation == nil {
		report.Excluded = excluded.String()
	} else {
		report.Result = explanation
	}

	if formatter.Format == "json" {
		return formatter.SuccessJSON(report)
	}
	renderExplainText(formatter.Writer, report)
	return nil
}

// renderExplainText renders the per-field breakdown for terminals.
func renderExplainText(w io.Writer, report *ExplainReport) {
	if report.Result == nil {
		fmt.Fprintf(w, "Document %s: excluded (%s)\n", report.DocumentID, report.Excluded)
		return
	}

	r := report.Result
	fmt.Fprintf(w, "Document %s (%s): %d fields evaluated\n", report.DocumentID, r.DocType, r.EvaluatedFields)
	for _, field := range r.Fields {
		marker := " "
		if field.Critical {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %-24s %-14s original=%q final=%q\n",
			marker, field.Field, field.Outcome, field.Original, field.Final)
	}
	fmt.Fprintln(w)
	renderScopeText(w, "All fields", r.Counts, r.Rates)
}
