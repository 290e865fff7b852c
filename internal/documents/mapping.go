package documents

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/cdillerud/docsync/pkg/query"
	"github.com/cdillerud/docsync/pkg/repository"
	"github.com/cdillerud/docsync/workflow"
)

var projection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("doc_type", "DocType").
	Project("source_system", "SourceSystem").
	Project("capture_channel", "CaptureChannel").
	Project("workflow_status", "Status").
	Project("workflow_history", "History").
	Project("classification_method", "ClassificationMethod").
	Project("ai_classification", "AIClassification").
	Project("revision", "Revision").
	Project("uploaded_at", "UploadedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for document queries.
// Nil fields are ignored. Filename uses case-insensitive contains matching;
// the rest use exact matching.
type Filters struct {
	DocType        *string `json:"doc_type,omitempty"`
	Status         *string `json:"workflow_status,omitempty"`
	SourceSystem   *string `json:"source_system,omitempty"`
	CaptureChannel *string `json:"capture_channel,omitempty"`
	Method         *string `json:"classification_method,omitempty"`
	Filename       *string `json:"filename,omitempty"`
	ContentType    *string `json:"content_type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("DocType", f.DocType).
		WhereEquals("Status", f.Status).
		WhereEquals("SourceSystem", f.SourceSystem).
		WhereEquals("CaptureChannel", f.CaptureChannel).
		WhereEquals("ClassificationMethod", f.Method).
		WhereContains("Filename", f.Filename).
		WhereEquals("ContentType", f.ContentType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if dt := values.Get("doc_type"); dt != "" {
		f.DocType = &dt
	}

	if s := values.Get("workflow_status"); s != "" {
		f.Status = &s
	}

	if ss := values.Get("source_system"); ss != "" {
		f.SourceSystem = &ss
	}

	if cc := values.Get("capture_channel"); cc != "" {
		f.CaptureChannel = &cc
	}

	if m := values.Get("classification_method"); m != "" {
		f.Method = &m
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	return f
}

func scanDocument(s repository.Scanner) (Document, error) {
	var (
		d       Document
		history []byte
		ai      []byte
		status  *string
	)

	err := s.Scan(
		&d.ID,
		&d.Filename,
		&d.ContentType,
		&d.SizeBytes,
		&d.PageCount,
		&d.StorageKey,
		&d.DocType,
		&d.SourceSystem,
		&d.CaptureChannel,
		&status,
		&history,
		&d.ClassificationMethod,
		&ai,
		&d.Revision,
		&d.UploadedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return d, err
	}

	if status != nil {
		d.Status = workflow.Status(*status)
	}

	if len(history) > 0 {
		if err := json.Unmarshal(history, &d.History); err != nil {
			return d, fmt.Errorf("unmarshal workflow history: %w", err)
		}
	}

	if len(ai) > 0 {
		if err := json.Unmarshal(ai, &d.AIClassification); err != nil {
			return d, fmt.Errorf("unmarshal ai classification: %w", err)
		}
	}

	return d, nil
}

func marshalHistory(history []workflow.HistoryEntry) ([]byte, error) {
	if history == nil {
		history = []workflow.HistoryEntry{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("marshal workflow history: %w", err)
	}
	return data, nil
}

func marshalAI(ai *workflow.AIClassification) ([]byte, error) {
	if ai == nil {
		return nil, nil
	}
	data, err := json.Marshal(ai)
	if err != nil {
		return nil, fmt.Errorf("marshal ai classification: %w", err)
	}
	return data, nil
}
