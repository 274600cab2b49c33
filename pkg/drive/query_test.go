package drive_test

import (
	"testing"

	"github.com/jtrogers/goose-gdrive-classifier/pkg/drive"
)

func TestClassifiedQuery(t *testing.T) {
	expected := "properties has { key='classified' and value='true' }"
	if got := drive.ClassifiedQuery(); got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestNotClassifiedQuery(t *testing.T) {
	expected := "not properties has { key='classified' and value='true' }"
	if got := drive.NotClassifiedQuery(); got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestDiscoveryQuery(t *testing.T) {
	tests := []struct {
		name      string
		folderID  string
		mimeTypes []string
		expected  string
	}{
		{
			"unscoped",
			"", nil,
			"not properties has { key='classified' and value='true' }",
		},
		{
			"folder only",
			"abc123", nil,
			"'abc123' in parents and not properties has { key='classified' and value='true' }",
		},
		{
			"single mime type",
			"", []string{"application/pdf"},
			"(mimeType = 'application/pdf') and not properties has { key='classified' and value='true' }",
		},
		{
			"multiple mime types",
			"", []string{"application/pdf", "application/vnd.google-apps.document"},
			"(mimeType = 'application/pdf' or mimeType = 'application/vnd.google-apps.document') and not properties has { key='classified' and value='true' }",
		},
		{
			"folder and mime types",
			"abc123", []string{"application/pdf"},
			"'abc123' in parents and (mimeType = 'application/pdf') and not properties has { key='classified' and value='true' }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := drive.DiscoveryQuery(tt.folderID, tt.mimeTypes); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}
