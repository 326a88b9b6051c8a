package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/snowsecure/fieldwise/internal/agreement"
)

// ScoreReport is the corpus-wide report the score command emits.
type ScoreReport struct {
	ReportID    string                  `json:"report_id"`
	GeneratedAt string                  `json:"generated_at"`
	Documents   int                     `json:"document_count"`
	Result      *agreement.CorpusResult `json:"result"`
}

// NewReportID returns a time-ordered unique id for a report.
// Uses github.com/google/uuid for RFC 4122 compliant UUIDs.
func NewReportID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewScoreCommand creates the score subcommand.
func NewScoreCommand(opts *RootOptions) *cobra.Command {
	flags := &snapshotFlags{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute corpus-wide agreement metrics",
		Long: `Runs the agreement engine over a document snapshot and reports
corpus-wide accuracy counts and rates for all fields and for critical fields.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}
			return runScore(cmd, flags, formatter)
		},
	}

	cmd.Flags().StringVar(&flags.SchemasDir, "schemas", "", "directory of doctype CUE config (required)")
	cmd.Flags().StringVar(&flags.SnapshotPath, "snapshot", "", "JSON document snapshot file")
	cmd.Flags().StringVar(&flags.DBPath, "db", "", "intake document database (SQLite)")
	cmd.MarkFlagRequired("schemas")

	return cmd
}

func runScore(cmd *cobra.Command, flags *snapshotFlags, formatter *OutputFormatter) error {
	evaluator, err := loadEvaluator(flags)
	if err != nil {
		return err
	}
	docs, err := loadDocuments(cmd.Context(), flags)
	if err != nil {
		return err
	}
	formatter.VerboseLog("loaded %d documents, %d doctypes", len(docs), len(evaluator.Schemas))

	report := &ScoreReport{
		ReportID:    NewReportID(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Documents:   len(docs),
		Result:      evaluator.EvaluateCorpus(docs),
	}

	if formatter.Format == "json" {
		return formatter.SuccessJSON(report)
	}
	renderScoreText(formatter.Writer, report)
	return nil
}

// renderScoreText renders the report for terminals.
func renderScoreText(w io.Writer, report *ScoreReport) {
	r := report.Result

	fmt.Fprintf(w, "Report %s (%s)\n", report.ReportID, report.GeneratedAt)
	fmt.Fprintf(w, "Documents in snapshot:    %d\n", report.Documents)
	fmt.Fprintf(w, "Reviewed documents:       %d\n", r.ReviewedDocs)
	fmt.Fprintf(w, "Excluded (reclassified):  %d\n", r.ExcludedReclassified)
	fmt.Fprintf(w, "Evaluated fields:         %d\n", r.TotalEvaluatedFields)
	fmt.Fprintln(w)
	renderScopeText(w, "All fields", r.Counts, r.Rates)
	fmt.Fprintln(w)
	renderScopeText(w, "Critical fields", r.CriticalCounts, r.CriticalRates)
}

func renderScopeText(w io.Writer, title string, counts agreement.Counts, rates agreement.Rates) {
	fmt.Fprintf(w, "%s:\n", title)
	fmt.Fprintf(w, "  correct=%d wrong_value=%d miss=%d hallucination=%d correct_absent=%d\n",
		counts.Correct, counts.WrongValue, counts.Miss, counts.Hallucination, counts.CorrectAbsent)
	fmt.Fprintf(w, "  present accuracy: %s  miss rate: %s  wrong rate: %s  hallucination rate: %s\n",
		formatRate(rates.PresentAccuracy),
		formatRate(rates.MissRate),
		formatRate(rates.WrongRate),
		formatRate(rates.HallucinationRate))
}
