// Package drive provides document storage operations backed by Google Drive.
// Classification outcomes are persisted as per-file properties; document text
// is sourced from the Docs API for Google Docs and raw bytes otherwise.
package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	googleDocMimeType = "application/vnd.google-apps.document"
	pdfMimeType       = "application/pdf"

	listFields = googleapi.Field("nextPageToken, files(id, name, mimeType, createdTime, modifiedTime, owners, size, properties)")
	getFields  = googleapi.Field("id, name, mimeType, createdTime, modifiedTime, owners, size, properties")
)

// File is the document metadata surfaced from Drive.
type File struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	MimeType     string            `json:"mime_type"`
	CreatedTime  string            `json:"created_time,omitempty"`
	ModifiedTime string            `json:"modified_time,omitempty"`
	Owners       []string          `json:"owners,omitempty"`
	Size         int64             `json:"size,omitempty"`
	Properties   map[string]string `json:"properties,omitempty"`
}

// Page is one page of a files listing.
type Page struct {
	Files         []File
	NextPageToken string
}

// System manages document storage operations against Drive.
type System interface {
	// List returns one page of files matching query. An empty pageToken
	// requests the first page.
	List(ctx context.Context, query, pageToken string, pageSize int64) (*Page, error)
	// Find returns metadata for a single file. Returns ErrNotFound if the
	// file does not exist.
	Find(ctx context.Context, id string) (*File, error)
	// Content returns the text content and metadata for a file. Google Docs
	// are read through the Docs API; other files are downloaded raw.
	Content(ctx context.Context, id string) (string, *File, error)
	// UpdateProperties merges the given properties onto the file.
	UpdateProperties(ctx context.Context, id string, properties map[string]string) error
}

type gdrive struct {
	files  *driveapi.Service
	docs   *docs.Service
	logger *slog.Logger
}

// New creates a Drive system authorized by the OAuth token at cfg.TokenPath.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (System, error) {
	token, err := os.ReadFile(cfg.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTokenMissing, cfg.TokenPath)
	}

	creds, err := google.CredentialsFromJSON(
		ctx, token,
		driveapi.DriveScope,
		docs.DocumentsReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	filesSvc, err := driveapi.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	docsSvc, err := docs.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create docs service: %w", err)
	}

	return &gdrive{
		files:  filesSvc,
		docs:   docsSvc,
		logger: logger.With("system", "drive"),
	}, nil
}

func (g *gdrive) List(ctx context.Context, query, pageToken string, pageSize int64) (*Page, error) {
	call := g.files.Files.List().
		Spaces("drive").
		Fields(listFields).
		PageSize(pageSize).
		Context(ctx)

	if query != "" {
		call = call.Q(query)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	page := &Page{
		Files:         make([]File, 0, len(resp.Files)),
		NextPageToken: resp.NextPageToken,
	}
	for _, f := range resp.Files {
		page.Files = append(page.Files, fromDriveFile(f))
	}

	return page, nil
}

func (g *gdrive) Find(ctx context.Context, id string) (*File, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	f, err := g.files.Files.Get(id).Fields(getFields).Context(ctx).Do()
	if err != nil {
		return nil, mapError(err, id)
	}

	file := fromDriveFile(f)
	return &file, nil
}

func (g *gdrive) Content(ctx context.Context, id string) (string, *File, error) {
	file, err := g.Find(ctx, id)
	if err != nil {
		return "", nil, err
	}

	if file.MimeType == googleDocMimeType {
		content, err := g.docContent(ctx, id)
		if err != nil {
			return "", nil, err
		}
		return content, file, nil
	}

	content, err := g.fileContent(ctx, id, file)
	if err != nil {
		return "", nil, err
	}
	return content, file, nil
}

func (g *gdrive) UpdateProperties(ctx context.Context, id string, properties map[string]string) error {
	if id == "" {
		return ErrEmptyID
	}

	_, err := g.files.Files.Update(id, &driveapi.File{Properties: properties}).Context(ctx).Do()
	if err != nil {
		return mapError(err, id)
	}

	return nil
}

// docContent extracts plain text from a Google Doc body by walking its
// paragraph elements.
func (g *gdrive) docContent(ctx context.Context, id string) (string, error) {
	doc, err := g.docs.Documents.Get(id).Context(ctx).Do()
	if err != nil {
		return "", mapError(err, id)
	}

	var buf bytes.Buffer
	if doc.Body != nil {
		for _, elem := range doc.Body.Content {
			if elem.Paragraph == nil {
				continue
			}
			for _, pe := range elem.Paragraph.Elements {
				if pe.TextRun != nil {
					buf.WriteString(pe.TextRun.Content)
				}
			}
		}
	}

	return buf.String(), nil
}

// fileContent downloads a regular file's bytes. For PDFs the page count is
// recorded on the returned file's metadata alongside the stored properties.
func (g *gdrive) fileContent(ctx context.Context, id string, file *File) (string, error) {
	resp, err := g.files.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return "", mapError(err, id)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read file %s: %w", id, err)
	}

	if file.MimeType == pdfMimeType {
		if count, err := api.PageCount(bytes.NewReader(data), nil); err == nil {
			if file.Properties == nil {
				file.Properties = map[string]string{}
			}
			file.Properties["page_count"] = strconv.Itoa(count)
		} else {
			g.logger.Warn("failed to extract PDF page count", "id", id, "error", err)
		}
	}

	return string(data), nil
}

// ListAll drains every page of a files listing for the given query.
func ListAll(ctx context.Context, sys System, query string, pageSize int64) ([]File, error) {
	var files []File
	pageToken := ""

	for {
		page, err := sys.List(ctx, query, pageToken, pageSize)
		if err != nil {
			return nil, err
		}

		files = append(files, page.Files...)

		pageToken = page.NextPageToken
		if pageToken == "" {
			return files, nil
		}
	}
}

func fromDriveFile(f *driveapi.File) File {
	file := File{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		CreatedTime:  f.CreatedTime,
		ModifiedTime: f.ModifiedTime,
		Size:         f.Size,
		Properties:   f.Properties,
	}
	for _, owner := range f.Owners {
		file.Owners = append(file.Owners, owner.EmailAddress)
	}
	return file
}

func mapError(err error, id string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 404 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return fmt.Errorf("drive file %s: %w", id, err)
}
