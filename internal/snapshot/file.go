package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/snowsecure/fieldwise/internal/agreement"
)

// ReadFile loads documents from a JSON snapshot export. The file is either a
// bare array of documents or an object with a "documents" key, which is what
// the intake application's export endpoint emits.
func ReadFile(path string) ([]*agreement.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return decodeSnapshot(data)
}

func decodeSnapshot(data []byte) ([]*agreement.Document, error) {
	var wrapped struct {
		Documents []*agreement.Document `json:"documents"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Documents != nil {
		return wrapped.Documents, nil
	}

	var docs []*agreement.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return docs, nil
}
