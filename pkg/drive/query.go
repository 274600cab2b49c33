package drive

import (
	"fmt"
	"strings"
)

// Property keys recorded on classified files.
const (
	PropClassified            = "classified"
	PropClassificationDate    = "classification_date"
	PropClassificationSummary = "classification_summary"
	PropOverallConfidence     = "overall_confidence"
	PropCategories            = "categories"
)

// ClassifiedQuery matches files already marked classified.
func ClassifiedQuery() string {
	return fmt.Sprintf("properties has { key='%s' and value='true' }", PropClassified)
}

// NotClassifiedQuery matches files not yet marked classified.
func NotClassifiedQuery() string {
	return "not " + ClassifiedQuery()
}

// DiscoveryQuery builds the files list query for classification discovery.
// Scopes to folderID when non-empty, restricts to the given MIME types when
// provided, and always excludes files already marked classified.
func DiscoveryQuery(folderID string, mimeTypes []string) string {
	var parts []string

	if folderID != "" {
		parts = append(parts, fmt.Sprintf("'%s' in parents", folderID))
	}

	if len(mimeTypes) > 0 {
		clauses := make([]string, len(mimeTypes))
		for i, mime := range mimeTypes {
			clauses[i] = fmt.Sprintf("mimeType = '%s'", mime)
		}
		parts = append(parts, "("+strings.Join(clauses, " or ")+")")
	}

	parts = append(parts, NotClassifiedQuery())

	return strings.Join(parts, " and ")
}
