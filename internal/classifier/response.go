package classifier

import (
	"encoding/json"
	"fmt"

	"github.com/jtrogers/goose-gdrive-classifier/pkg/formatting"
)

const parseErrorSummary = "Error parsing classification"

// responsePayload mirrors the JSON object the model is instructed to return.
// Pointer fields distinguish absent keys from zero values so required-field
// validation can report precisely what is missing.
type responsePayload struct {
	Categories        *[]categoryPayload `json:"categories"`
	OverallConfidence *int               `json:"overall_confidence"`
	Summary           *string            `json:"summary"`
}

type categoryPayload struct {
	Name       *string `json:"name"`
	Confidence *int    `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// ParseResponse extracts and validates the structured classification from raw
// model output. The model's reply may wrap the JSON object in conversational
// prose; only the outermost braced region is considered. Any extraction,
// parse, or validation failure yields an error Classification rather than an
// error return; malformed model output is data, not a fault.
func ParseResponse(raw string) Classification {
	payload, err := extract(raw)
	if err != nil {
		return errorClassification(err)
	}

	categories := make([]Category, 0, len(*payload.Categories))
	for i, cat := range *payload.Categories {
		if cat.Name == nil {
			return errorClassification(fmt.Errorf("category %d: missing required field: name", i))
		}
		if cat.Confidence == nil {
			return errorClassification(fmt.Errorf("category %d: missing required field: confidence", i))
		}
		categories = append(categories, Category{
			Name:       *cat.Name,
			Confidence: *cat.Confidence,
			Reasoning:  cat.Reasoning,
		})
	}

	return Classification{
		Categories:        categories,
		OverallConfidence: *payload.OverallConfidence,
		Summary:           *payload.Summary,
	}
}

func extract(raw string) (*responsePayload, error) {
	text, err := formatting.ExtractObject(raw)
	if err != nil {
		return nil, err
	}

	var payload responsePayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", formatting.ErrParseFailed, err)
	}

	if payload.Categories == nil {
		return nil, fmt.Errorf("missing required field: categories")
	}
	if payload.OverallConfidence == nil {
		return nil, fmt.Errorf("missing required field: overall_confidence")
	}
	if payload.Summary == nil {
		return nil, fmt.Errorf("missing required field: summary")
	}

	return &payload, nil
}

func errorClassification(err error) Classification {
	return Classification{
		Categories:        []Category{},
		OverallConfidence: 0,
		Summary:           parseErrorSummary,
		Error:             err.Error(),
	}
}
