package documents_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/cdillerud/docsync/internal/documents"
	"github.com/cdillerud/docsync/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", documents.ErrNotFound, http.StatusNotFound},
		{"duplicate", documents.ErrDuplicate, http.StatusConflict},
		{"invalid transition", documents.ErrInvalidTransition, http.StatusConflict},
		{"revision conflict", documents.ErrRevisionConflict, http.StatusConflict},
		{"file too large", documents.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"invalid file", documents.ErrInvalidFile, http.StatusBadRequest},
		{"unknown queue", documents.ErrUnknownQueue, http.StatusNotFound},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", documents.ErrNotFound), http.StatusNotFound},
		{"wrapped transition", fmt.Errorf("advance failed: %w", documents.ErrInvalidTransition), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := documents.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"doc_type":              {"AP_INVOICE"},
			"workflow_status":       {"EXTRACTED"},
			"source_system":         {"zetadocs"},
			"capture_channel":       {"email"},
			"classification_method": {"zetadocs_set_code"},
			"filename":              {"invoice"},
			"content_type":          {"application/pdf"},
		}

		f := documents.FiltersFromQuery(values)

		if f.DocType == nil || *f.DocType != "AP_INVOICE" {
			t.Errorf("DocType = %v, want AP_INVOICE", f.DocType)
		}
		if f.Status == nil || *f.Status != "EXTRACTED" {
			t.Errorf("Status = %v, want EXTRACTED", f.Status)
		}
		if f.SourceSystem == nil || *f.SourceSystem != "zetadocs" {
			t.Errorf("SourceSystem = %v, want zetadocs", f.SourceSystem)
		}
		if f.CaptureChannel == nil || *f.CaptureChannel != "email" {
			t.Errorf("CaptureChannel = %v, want email", f.CaptureChannel)
		}
		if f.Method == nil || *f.Method != "zetadocs_set_code" {
			t.Errorf("Method = %v, want zetadocs_set_code", f.Method)
		}
		if f.Filename == nil || *f.Filename != "invoice" {
			t.Errorf("Filename = %v, want invoice", f.Filename)
		}
		if f.ContentType == nil || *f.ContentType != "application/pdf" {
			t.Errorf("ContentType = %v, want application/pdf", f.ContentType)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := documents.FiltersFromQuery(url.Values{})

		if f.DocType != nil {
			t.Errorf("DocType = %v, want nil", f.DocType)
		}
		if f.Status != nil {
			t.Errorf("Status = %v, want nil", f.Status)
		}
		if f.SourceSystem != nil {
			t.Errorf("SourceSystem = %v, want nil", f.SourceSystem)
		}
		if f.Filename != nil {
			t.Errorf("Filename = %v, want nil", f.Filename)
		}
		if f.ContentType != nil {
			t.Errorf("ContentType = %v, want nil", f.ContentType)
		}
	})

	t.Run("partial params", func(t *testing.T) {
		values := url.Values{
			"doc_type": {"QUALITY_DOC"},
			"filename": {"certificate"},
		}

		f := documents.FiltersFromQuery(values)

		if f.DocType == nil || *f.DocType != "QUALITY_DOC" {
			t.Errorf("DocType = %v, want QUALITY_DOC", f.DocType)
		}
		if f.Filename == nil || *f.Filename != "certificate" {
			t.Errorf("Filename = %v, want certificate", f.Filename)
		}
		if f.Status != nil {
			t.Errorf("Status = %v, want nil", f.Status)
		}
	})
}

func TestFiltersApply(t *testing.T) {
	projection := query.
		NewProjectionMap("public", "documents", "d").
		Project("doc_type", "DocType").
		Project("workflow_status", "Status").
		Project("source_system", "SourceSystem").
		Project("capture_channel", "CaptureChannel").
		Project("classification_method", "ClassificationMethod").
		Project("filename", "Filename").
		Project("content_type", "ContentType")

	t.Run("no filters produces no WHERE clause", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := documents.Filters{}
		f.Apply(b)
		sql, args := b.Build()

		wantSQL := "SELECT d.doc_type, d.workflow_status, d.source_system, d.capture_channel, d.classification_method, d.filename, d.content_type FROM public.documents d"
		if sql != wantSQL {
			t.Errorf("sql = %q, want %q", sql, wantSQL)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("doc type equals filter", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := documents.Filters{DocType: ptr("AP_INVOICE")}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 1 {
			t.Fatalf("args length = %d, want 1", len(args))
		}
		if v, ok := args[0].(*string); !ok || *v != "AP_INVOICE" {
			t.Errorf("args[0] = %v, want *AP_INVOICE", args[0])
		}
	})

	t.Run("filename contains filter", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := documents.Filters{Filename: ptr("invoice")}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 1 || args[0] != "%invoice%" {
			t.Errorf("args = %v, want [%%invoice%%]", args)
		}
	})

	t.Run("multiple filters combine with AND", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := documents.Filters{
			DocType:  ptr("AP_INVOICE"),
			Status:   ptr("VENDOR_REVIEW"),
			Filename: ptr("acme"),
		}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 3 {
			t.Errorf("args length = %d, want 3", len(args))
		}
	})
}
