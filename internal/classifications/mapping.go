package classifications

import (
	"net/url"

	"github.com/cdillerud/docsync/pkg/query"
	"github.com/cdillerud/docsync/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "classification_records", "c").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("doc_type", "DocType").
	Project("method", "Method").
	Project("confidence", "Confidence").
	Project("model", "Model").
	Project("reason", "Reason").
	Project("decided_by", "DecidedBy").
	Project("decided_at", "DecidedAt")

var defaultSort = query.SortField{
	Field:      "DecidedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for classification queries.
// Nil fields are ignored; all use exact matching.
type Filters struct {
	DocumentID *string `json:"document_id,omitempty"`
	DocType    *string `json:"doc_type,omitempty"`
	Method     *string `json:"method,omitempty"`
	DecidedBy  *string `json:"decided_by,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("DocumentID", f.DocumentID).
		WhereEquals("DocType", f.DocType).
		WhereEquals("Method", f.Method).
		WhereEquals("DecidedBy", f.DecidedBy)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if id := values.Get("document_id"); id != "" {
		f.DocumentID = &id
	}

	if dt := values.Get("doc_type"); dt != "" {
		f.DocType = &dt
	}

	if m := values.Get("method"); m != "" {
		f.Method = &m
	}

	if by := values.Get("decided_by"); by != "" {
		f.DecidedBy = &by
	}

	return f
}

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	err := s.Scan(
		&r.ID,
		&r.DocumentID,
		&r.DocType,
		&r.Method,
		&r.Confidence,
		&r.Model,
		&r.Reason,
		&r.DecidedBy,
		&r.DecidedAt,
	)
	return r, err
}
