package processor_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jtrogers/goose-gdrive-classifier/internal/classifier"
	"github.com/jtrogers/goose-gdrive-classifier/internal/processor"
	"github.com/jtrogers/goose-gdrive-classifier/pkg/drive"
)

type fakeDrive struct {
	files      map[string]*drive.File
	content    map[string]string
	contentErr map[string]error
	updateErr  map[string]error
	updates    map[string]map[string]string
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{
		files:      map[string]*drive.File{},
		content:    map[string]string{},
		contentErr: map[string]error{},
		updateErr:  map[string]error{},
		updates:    map[string]map[string]string{},
	}
}

func (d *fakeDrive) add(id, name, text string) {
	d.files[id] = &drive.File{ID: id, Name: name, MimeType: "application/pdf"}
	d.content[id] = text
}

func (d *fakeDrive) List(ctx context.Context, query, pageToken string, pageSize int64) (*drive.Page, error) {
	return &drive.Page{}, nil
}

func (d *fakeDrive) Find(ctx context.Context, id string) (*drive.File, error) {
	file, ok := d.files[id]
	if !ok {
		return nil, drive.ErrNotFound
	}
	return file, nil
}

func (d *fakeDrive) Content(ctx context.Context, id string) (string, *drive.File, error) {
	if err := d.contentErr[id]; err != nil {
		return "", nil, err
	}
	file, ok := d.files[id]
	if !ok {
		return "", nil, drive.ErrNotFound
	}
	return d.content[id], file, nil
}

func (d *fakeDrive) UpdateProperties(ctx context.Context, id string, properties map[string]string) error {
	if err := d.updateErr[id]; err != nil {
		return err
	}
	d.updates[id] = properties
	return nil
}

type stubClassifier struct {
	results map[string]classifier.Classification
	calls   int
}

func (c *stubClassifier) Classify(ctx context.Context, content string, metadata map[string]string) classifier.Classification {
	c.calls++
	if result, ok := c.results[content]; ok {
		return result
	}
	return classifier.Classification{
		Categories:        []classifier.Category{{Name: "general", Confidence: 85}},
		OverallConfidence: 85,
		Summary:           "General document",
	}
}

func newTestProcessor(d *fakeDrive, c *stubClassifier, batchSize int) *processor.Processor {
	return processor.New(d, c, batchSize, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestProcessPreservesOrder(t *testing.T) {
	d := newFakeDrive()
	ids := []string{"doc-1", "doc-2", "doc-3", "doc-4", "doc-5"}
	for _, id := range ids {
		d.add(id, id+".pdf", "content of "+id)
	}

	tests := []struct {
		name      string
		batchSize int
	}{
		{"single batch", 10},
		{"exact batches", 5},
		{"uneven batches", 2},
		{"one per batch", 1},
		{"default batch size", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProcessor(d, &stubClassifier{}, 3)
			results := p.Process(context.Background(), ids, tt.batchSize)

			if len(results) != len(ids) {
				t.Fatalf("got %d results, want %d", len(results), len(ids))
			}
			for i, result := range results {
				if result.DocumentID != ids[i] {
					t.Errorf("result %d is %s, want %s", i, result.DocumentID, ids[i])
				}
				if !result.Success {
					t.Errorf("document %s failed: %s", result.DocumentID, result.Error)
				}
			}
		})
	}
}

func TestProcessFailureIsolation(t *testing.T) {
	d := newFakeDrive()
	d.add("doc-1", "a.pdf", "first")
	d.add("doc-3", "c.pdf", "third")
	d.contentErr["doc-2"] = errors.New("download failed")

	p := newTestProcessor(d, &stubClassifier{}, 10)
	results := p.Process(context.Background(), []string{"doc-1", "doc-2", "doc-3"}, 0)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if !results[0].Success || !results[2].Success {
		t.Error("siblings of a failed document should still succeed")
	}
	if results[1].Success {
		t.Error("doc-2 should have failed")
	}
	if results[1].Error != "download failed" {
		t.Errorf("got error %q", results[1].Error)
	}
}

func TestProcessWritesProperties(t *testing.T) {
	d := newFakeDrive()
	d.add("doc-1", "a.pdf", "first")

	p := newTestProcessor(d, &stubClassifier{}, 10)
	p.Process(context.Background(), []string{"doc-1"}, 0)

	props := d.updates["doc-1"]
	if props == nil {
		t.Fatal("expected properties written to doc-1")
	}

	if props[drive.PropClassified] != "true" {
		t.Errorf("classified = %q, want true", props[drive.PropClassified])
	}
	if props[drive.PropCategories] != "general" {
		t.Errorf("categories = %q", props[drive.PropCategories])
	}
	if props[drive.PropOverallConfidence] != "85" {
		t.Errorf("overall_confidence = %q", props[drive.PropOverallConfidence])
	}
	if props[drive.PropClassificationSummary] != "General document" {
		t.Errorf("summary = %q", props[drive.PropClassificationSummary])
	}
	if _, err := time.Parse(time.RFC3339, props[drive.PropClassificationDate]); err != nil {
		t.Errorf("classification_date is not RFC3339: %q", props[drive.PropClassificationDate])
	}
}

func TestProcessErrorClassification(t *testing.T) {
	d := newFakeDrive()
	d.add("doc-1", "a.pdf", "unparseable")

	c := &stubClassifier{results: map[string]classifier.Classification{
		"unparseable": {
			Categories: []classifier.Category{},
			Summary:    "Error parsing classification",
			Error:      "no JSON object found in response",
		},
	}}

	p := newTestProcessor(d, c, 10)
	results := p.Process(context.Background(), []string{"doc-1"}, 0)

	if results[0].Success {
		t.Fatal("an error classification should mark the document failed")
	}
	if results[0].Classification == nil {
		t.Error("the error classification should be attached to the result")
	}
	if _, ok := d.updates["doc-1"]; ok {
		t.Error("failed classifications must not be persisted")
	}
}

func TestProcessUpdateFailure(t *testing.T) {
	d := newFakeDrive()
	d.add("doc-1", "a.pdf", "first")
	d.updateErr["doc-1"] = errors.New("property write rejected")

	p := newTestProcessor(d, &stubClassifier{}, 10)
	results := p.Process(context.Background(), []string{"doc-1"}, 0)

	if results[0].Success {
		t.Fatal("a persistence failure should mark the document failed")
	}
	if results[0].Error != "property write rejected" {
		t.Errorf("got error %q", results[0].Error)
	}
}
