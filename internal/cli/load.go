package cli

import (
	"context"
	"fmt"

	"github.com/snowsecure/fieldwise/internal/agreement"
	"github.com/snowsecure/fieldwise/internal/schemadef"
	"github.com/snowsecure/fieldwise/internal/snapshot"
)

// snapshotFlags are the input-selection flags shared by score and explain.
type snapshotFlags struct {
	SchemasDir   string
	SnapshotPath string
	DBPath       string
}

// loadEvaluator loads doctype configuration and builds the evaluator.
func loadEvaluator(flags *snapshotFlags) (*agreement.Evaluator, error) {
	registry, errs := schemadef.Load(flags.SchemasDir, schemadef.LoadModeFailFast)
	if len(errs) > 0 {
		return nil, WrapExitError(ExitCommandError, "loading doctype config", errs[0])
	}
	return &agreement.Evaluator{
		Schemas:  registry.Schemas,
		Critical: registry.Critical,
	}, nil
}

// loadDocuments reads the document snapshot from whichever source was
// selected. Exactly one of --snapshot and --db must be set.
func loadDocuments(ctx context.Context, flags *snapshotFlags) ([]*agreement.Document, error) {
	switch {
	case flags.SnapshotPath != "" && flags.DBPath != "":
		return nil, NewExitError(ExitCommandError, "use either --snapshot or --db, not both")
	case flags.SnapshotPath != "":
		docs, err := snapshot.ReadFile(flags.SnapshotPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "loading snapshot", err)
		}
		return docs, nil
	case flags.DBPath != "":
		store, err := snapshot.Open(flags.DBPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "opening document database", err)
		}
		defer store.Close()

		docs, err := store.ReadDocuments(ctx)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "reading documents", err)
		}
		return docs, nil
	default:
		return nil, NewExitError(ExitCommandError, "a document source is required: --snapshot or --db")
	}
}

// findDocument locates one document by id in a snapshot.
func findDocument(docs []*agreement.Document, id string) (*agreement.Document, error) {
	for _, doc := range docs {
		if doc.ID == id {
			return doc, nil
		}
	}
	return nil, NewExitError(ExitFailure, fmt.Sprintf("document %q not found in snapshot", id))
}
