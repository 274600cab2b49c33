package processor

import "errors"

// ErrNoDocuments indicates a classify request with no document ids.
var ErrNoDocuments = errors.New("document_ids must not be empty")
