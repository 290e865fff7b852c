package migration

import (
	"fmt"

	"github.com/cdillerud/docsync/workflow"
)

// rule is one row of a per-type decision table. Rows are evaluated in order;
// the first match wins.
type rule struct {
	match  func(LegacyFlags) bool
	status workflow.Status
	reason string
}

// always is the unconditional default row every table ends with, so no flag
// combination can fall through without a state assigned.
func always(LegacyFlags) bool { return true }

// decisionTables holds one priority-ordered rule list per document type.
// The tables are intentionally separate per type, never a shared generic
// fallback: the same flag snapshot lands differently depending on the type's
// state machine shape.
var decisionTables = map[workflow.DocType][]rule{
	workflow.DocTypeAPInvoice:          apTable(),
	workflow.DocTypeSalesInvoice:       postedDocTable("sales invoice"),
	workflow.DocTypeSalesCreditMemo:    postedDocTable("sales credit memo"),
	workflow.DocTypePurchaseCreditMemo: postedDocTable("purchase credit memo"),
	workflow.DocTypePurchaseOrder:      purchaseOrderTable(),
	workflow.DocTypeStatement:          reviewDocTable("statement"),
	workflow.DocTypeReminder:           reviewDocTable("reminder"),
	workflow.DocTypeFinanceChargeMemo:  reviewDocTable("finance charge memo"),
	workflow.DocTypeQualityDoc:         qualityTable(),
	workflow.DocTypeOther:              otherTable(),
}

func apTable() []rule {
	return []rule{
		{
			match:  LegacyFlags.Dead,
			status: workflow.StatusRejected,
			reason: "legacy invoice canceled or voided",
		},
		{
			match:  func(f LegacyFlags) bool { return f.IsExported || (f.IsPosted && f.IsPaid) },
			status: workflow.StatusExported,
			reason: "legacy invoice exported or posted and paid",
		},
		{
			match:  func(f LegacyFlags) bool { return f.IsPosted || f.IsApproved },
			status: workflow.StatusApproved,
			reason: "legacy invoice posted or approved, not yet paid",
		},
		{
			match:  always,
			status: workflow.StatusExtracted,
			reason: "legacy invoice open, resuming at extraction review",
		},
	}
}

func postedDocTable(kind string) []rule {
	return []rule{
		{
			match:  LegacyFlags.Dead,
			status: workflow.StatusRejected,
			reason: fmt.Sprintf("legacy %s canceled or voided", kind),
		},
		{
			match:  func(f LegacyFlags) bool { return f.IsExported || (f.IsPosted && f.IsClosed) },
			status: workflow.StatusExported,
			reason: fmt.Sprintf("legacy %s exported or posted and closed", kind),
		},
		{
			match:  func(f LegacyFlags) bool { return f.IsPosted || f.IsApproved },
			status: workflow.StatusApproved,
			reason: fmt.Sprintf("legacy %s posted or approved", kind),
		},
		{
			match:  always,
			status: workflow.StatusExtracted,
			reason: fmt.Sprintf("legacy %s open, resuming at extraction review", kind),
		},
	}
}

func purchaseOrderTable() []rule {
	return []rule{
		{
			match:  LegacyFlags.Dead,
			status: workflow.StatusRejected,
			reason: "legacy purchase order canceled or voided",
		},
		{
			match:  func(f LegacyFlags) bool { return f.IsExported },
			status: workflow.StatusExported,
			reason: "legacy purchase order exported",
		},
		{
			match:  func(f LegacyFlags) bool { return f.IsClosed },
			status: workflow.StatusArchived,
			reason: "legacy purchase order closed",
		},
		{
			match:  func(f LegacyFlags) bool { return f.IsApproved },
			status: workflow.StatusApproved,
			reason: "legacy purchase order approved",
		},
		{
			match:  always,
			status: workflow.StatusExtracted,
			reason: "legacy purchase order open, resuming at extraction review",
		},
	}
}

func reviewDocTable(kind string) []rule {
	return []rule{
		{
			match:  LegacyFlags.Dead,
			status: workflow.StatusRejected,
			reason: fmt.Sprintf("legacy %s canceled or voided", kind),
		},
		{
			match:  func(f LegacyFlags) bool { return f.IsClosed },
			status: workflow.StatusArchived,
			reason: fmt.Sprintf("legacy %s closed", kind),
		},
		{
			match:  func(f LegacyFlags) bool { return f.IsExported },
			status: workflow.StatusExported,
			reason: fmt.Sprintf("legacy %s exported", kind),
		},
		{
			match:  func(f LegacyFlags) bool { return f.IsReviewed },
			status: workflow.StatusReviewed,
			reason: fmt.Sprintf("legacy %s reviewed", kind),
		},
		{
			match:  always,
			status: workflow.StatusReadyForReview,
			reason: fmt.Sprintf("legacy %s pending review", kind),
		},
	}
}

func qualityTable() []rule {
	return []rule{
		{
			match:  func(f LegacyFlags) bool { return f.IsClosed && f.IsReviewed },
			status: workflow.StatusExported,
			reason: "legacy quality record closed and reviewed",
		},
		{
			match:  func(f LegacyFlags) bool { return f.IsReviewed },
			status: workflow.StatusReviewed,
			reason: "legacy quality record reviewed",
		},
		{
			match:  func(f LegacyFlags) bool { return len(f.QualityTags) > 0 },
			status: workflow.StatusTagged,
			reason: "legacy quality record tagged, pending review",
		},
		{
			match:  always,
			status: workflow.StatusReadyForReview,
			reason: "legacy quality record pending review",
		},
	}
}

func otherTable() []rule {
	return []rule{
		{
			match:  func(f LegacyFlags) bool { return f.IsExported },
			status: workflow.StatusExported,
			reason: "legacy document exported",
		},
		{
			match:  func(f LegacyFlags) bool { return f.IsReviewed || f.IsClosed || f.IsApproved },
			status: workflow.StatusTriageCompleted,
			reason: "legacy document processed, triage complete",
		},
		{
			match:  always,
			status: workflow.StatusTriagePending,
			reason: "legacy document untouched, pending triage",
		},
	}
}

// Resolve computes the workflow status a migrated document of docType starts
// at, given its legacy status snapshot. The decision is deterministic for a
// given (docType, flags) pair, so replaying a snapshot is idempotent in
// effect. Unknown document types fall back to the OTHER triage table.
func Resolve(docType workflow.DocType, flags LegacyFlags) (workflow.Status, string) {
	table, ok := decisionTables[docType]
	if !ok {
		table = decisionTables[workflow.DocTypeOther]
	}

	for _, r := range table {
		if r.match(flags) {
			return r.status, r.reason
		}
	}

	// Unreachable: every table ends with an unconditional row.
	return workflow.StatusTriagePending, "no decision rule matched"
}
