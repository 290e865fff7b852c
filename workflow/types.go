package workflow

import "time"

// DocType is the fixed classification of a document. It is immutable once
// classification is accepted; replacement only happens through Reclassify.
type DocType string

// Document types handled by the workflow engine.
const (
	DocTypeAPInvoice          DocType = "AP_INVOICE"
	DocTypeSalesInvoice       DocType = "SALES_INVOICE"
	DocTypePurchaseOrder      DocType = "PURCHASE_ORDER"
	DocTypeSalesCreditMemo    DocType = "SALES_CREDIT_MEMO"
	DocTypePurchaseCreditMemo DocType = "PURCHASE_CREDIT_MEMO"
	DocTypeStatement          DocType = "STATEMENT"
	DocTypeReminder           DocType = "REMINDER"
	DocTypeFinanceChargeMemo  DocType = "FINANCE_CHARGE_MEMO"
	DocTypeQualityDoc         DocType = "QUALITY_DOC"
	DocTypeOther              DocType = "OTHER"
)

// DocTypes lists every document type in declaration order.
func DocTypes() []DocType {
	return []DocType{
		DocTypeAPInvoice,
		DocTypeSalesInvoice,
		DocTypePurchaseOrder,
		DocTypeSalesCreditMemo,
		DocTypePurchaseCreditMemo,
		DocTypeStatement,
		DocTypeReminder,
		DocTypeFinanceChargeMemo,
		DocTypeQualityDoc,
		DocTypeOther,
	}
}

// ParseDocType returns the DocType matching s, or (OTHER, false) when s is
// not a known document type.
func ParseDocType(s string) (DocType, bool) {
	for _, dt := range DocTypes() {
		if string(dt) == s {
			return dt, true
		}
	}
	return DocTypeOther, false
}

// Status is a node in a document type's finite state machine.
type Status string

// Workflow statuses. Each document type uses its own subset.
const (
	StatusCaptured         Status = "CAPTURED"
	StatusExtracted        Status = "EXTRACTED"
	StatusVendorReview     Status = "VENDOR_REVIEW"
	StatusVendorMatched    Status = "VENDOR_MATCHED"
	StatusValidationFailed Status = "VALIDATION_FAILED"
	StatusDataCorrection   Status = "DATA_CORRECTION"
	StatusPOReview         Status = "PO_REVIEW"
	StatusReadyForApproval Status = "READY_FOR_APPROVAL"
	StatusApproved         Status = "APPROVED"
	StatusReadyForReview   Status = "READY_FOR_REVIEW"
	StatusReviewed         Status = "REVIEWED"
	StatusTagged           Status = "TAGGED"
	StatusTriagePending    Status = "TRIAGE_PENDING"
	StatusTriageCompleted  Status = "TRIAGE_COMPLETED"
	StatusExported         Status = "EXPORTED"
	StatusArchived         Status = "ARCHIVED"
	StatusRejected         Status = "REJECTED"
	StatusFailed           Status = "FAILED"
)

// Event is an external occurrence submitted to the engine to advance a
// document through its state machine.
type Event string

// Workflow events.
const (
	EventOnCapture           Event = "ON_CAPTURE"
	EventExtractionCompleted Event = "EXTRACTION_COMPLETED"
	EventExtractionFailed    Event = "EXTRACTION_FAILED"
	EventVendorMatched       Event = "VENDOR_MATCHED"
	EventVendorMissing       Event = "VENDOR_MISSING"
	EventERPValidated        Event = "ERP_VALIDATED"
	EventERPRejected         Event = "ERP_REJECTED"
	EventDataInvalid         Event = "DATA_INVALID"
	EventDataCorrected       Event = "DATA_CORRECTED"
	EventPOMatched           Event = "PO_MATCHED"
	EventPOMismatch          Event = "PO_MISMATCH"
	EventReviewCompleted     Event = "REVIEW_COMPLETED"
	EventTagApplied          Event = "TAG_APPLIED"
	EventTriageResolved      Event = "TRIAGE_RESOLVED"
	EventApprove             Event = "APPROVE"
	EventReject              Event = "REJECT"
	EventExportCompleted     Event = "EXPORT_COMPLETED"
	EventExportFailed        Event = "EXPORT_FAILED"
	EventArchive             Event = "ARCHIVE"
	EventReclassified        Event = "RECLASSIFIED"
)

// SourceSystem is the provenance tag of a document, set once at creation.
type SourceSystem string

// Source systems.
const (
	SourceNative    SourceSystem = "native"
	SourceZetadocs  SourceSystem = "zetadocs"
	SourceContinia  SourceSystem = "continia"
	SourceMigration SourceSystem = "migration"
	SourceUnknown   SourceSystem = "unknown"
)

// CaptureChannel is how a document entered the system, set once at creation.
type CaptureChannel string

// Capture channels.
const (
	ChannelEmail     CaptureChannel = "email"
	ChannelUpload    CaptureChannel = "upload"
	ChannelAPI       CaptureChannel = "api"
	ChannelMigration CaptureChannel = "migration"
	ChannelUnknown   CaptureChannel = "unknown"
)

// HistoryEntry records a single workflow transition or blocked attempt.
// Entries are write-once: the engine appends them and never edits or
// reorders existing entries.
type HistoryEntry struct {
	Timestamp  time.Time         `json:"timestamp"`
	FromStatus Status            `json:"from_status,omitempty"`
	ToStatus   Status            `json:"to_status"`
	Event      Event             `json:"event"`
	Actor      string            `json:"actor"`
	Reason     string            `json:"reason,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// AIClassification is the audit block recorded whenever the AI fallback is
// consulted. It is present iff deterministic classification produced OTHER;
// a document classified deterministically to any other type never carries one.
type AIClassification struct {
	ProposedType DocType   `json:"proposed_type"`
	Confidence   float64   `json:"confidence"`
	Model        string    `json:"model"`
	ClassifiedAt time.Time `json:"classified_at"`
	Accepted     bool      `json:"accepted"`
	Error        string    `json:"error,omitempty"`
}

// State holds the workflow-owned fields of a document. A zero State is
// uninitialized: Status is empty until Initialize runs. The engine mutates
// State only through Initialize, Advance, and Reclassify.
type State struct {
	DocType              DocType           `json:"doc_type"`
	SourceSystem         SourceSystem      `json:"source_system"`
	CaptureChannel       CaptureChannel    `json:"capture_channel"`
	Status               Status            `json:"workflow_status,omitempty"`
	History              []HistoryEntry    `json:"workflow_history"`
	ClassificationMethod string            `json:"classification_method"`
	AIClassification     *AIClassification `json:"ai_classification,omitempty"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// Initialized reports whether the state machine has been started.
func (s *State) Initialized() bool {
	return s.Status != ""
}
