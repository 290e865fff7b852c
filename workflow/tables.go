package workflow

// transitions maps DocType → Status → Event → next Status. The tables are
// built once at package init and never mutated; adding a document type is a
// data addition, not a new code path.
//
// Every non-terminal status reachable from CAPTURED has at least one outgoing
// transition; EXPORTED, ARCHIVED, REJECTED, and FAILED are terminal.
var transitions = map[DocType]map[Status]map[Event]Status{
	DocTypeAPInvoice: {
		StatusCaptured: {
			EventExtractionCompleted: StatusExtracted,
			EventExtractionFailed:    StatusDataCorrection,
			EventReject:              StatusRejected,
		},
		StatusExtracted: {
			EventVendorMatched: StatusVendorMatched,
			EventVendorMissing: StatusVendorReview,
			EventDataInvalid:   StatusDataCorrection,
			EventReject:        StatusRejected,
		},
		StatusVendorReview: {
			EventVendorMatched: StatusVendorMatched,
			EventReject:        StatusRejected,
		},
		StatusVendorMatched: {
			EventERPValidated: StatusReadyForApproval,
			EventERPRejected:  StatusValidationFailed,
			EventReject:       StatusRejected,
		},
		StatusValidationFailed: {
			EventDataCorrected: StatusVendorMatched,
			EventERPValidated:  StatusReadyForApproval,
			EventReject:        StatusRejected,
		},
		StatusDataCorrection: {
			EventDataCorrected: StatusExtracted,
			EventReject:        StatusRejected,
		},
		StatusReadyForApproval: {
			EventApprove: StatusApproved,
			EventReject:  StatusRejected,
		},
		StatusApproved: {
			EventExportCompleted: StatusExported,
			EventExportFailed:    StatusFailed,
			EventReject:          StatusRejected,
		},
	},
	DocTypeSalesInvoice:       salesTable(),
	DocTypeSalesCreditMemo:    salesTable(),
	DocTypePurchaseOrder:      purchaseTable(),
	DocTypePurchaseCreditMemo: purchaseTable(),
	DocTypeStatement:          reviewTable(),
	DocTypeReminder:           reviewTable(),
	DocTypeFinanceChargeMemo:  reviewTable(),
	DocTypeQualityDoc: {
		StatusCaptured: {
			EventExtractionCompleted: StatusReadyForReview,
			EventReject:              StatusRejected,
		},
		StatusReadyForReview: {
			EventTagApplied:      StatusTagged,
			EventReviewCompleted: StatusReviewed,
			EventReject:          StatusRejected,
		},
		StatusTagged: {
			EventReviewCompleted: StatusReviewed,
			EventReject:          StatusRejected,
		},
		StatusReviewed: {
			EventExportCompleted: StatusExported,
			EventArchive:         StatusArchived,
		},
	},
	DocTypeOther: {
		StatusCaptured: {
			EventExtractionCompleted: StatusTriagePending,
			EventReject:              StatusRejected,
		},
		StatusTriagePending: {
			EventTriageResolved: StatusTriageCompleted,
			EventReject:         StatusRejected,
		},
		StatusTriageCompleted: {
			EventExportCompleted: StatusExported,
			EventArchive:         StatusArchived,
			EventReject:          StatusRejected,
		},
	},
}

// salesTable is the path for sales-side types: no vendor matching and no ERP
// validation, extraction straight into review and approval.
func salesTable() map[Status]map[Event]Status {
	return map[Status]map[Event]Status{
		StatusCaptured: {
			EventExtractionCompleted: StatusExtracted,
			EventExtractionFailed:    StatusDataCorrection,
			EventReject:              StatusRejected,
		},
		StatusExtracted: {
			EventReviewCompleted: StatusReadyForApproval,
			EventDataInvalid:     StatusDataCorrection,
			EventReject:          StatusRejected,
		},
		StatusDataCorrection: {
			EventDataCorrected: StatusExtracted,
			EventReject:        StatusRejected,
		},
		StatusReadyForApproval: {
			EventApprove: StatusApproved,
			EventReject:  StatusRejected,
		},
		StatusApproved: {
			EventExportCompleted: StatusExported,
			EventExportFailed:    StatusFailed,
		},
	}
}

// purchaseTable is the path for purchase-side types other than AP invoices:
// PO matching replaces vendor/ERP validation, with PO_REVIEW as the
// human-intervention exception state.
func purchaseTable() map[Status]map[Event]Status {
	return map[Status]map[Event]Status{
		StatusCaptured: {
			EventExtractionCompleted: StatusExtracted,
			EventExtractionFailed:    StatusDataCorrection,
			EventReject:              StatusRejected,
		},
		StatusExtracted: {
			EventPOMatched:   StatusReadyForApproval,
			EventPOMismatch:  StatusPOReview,
			EventDataInvalid: StatusDataCorrection,
			EventReject:      StatusRejected,
		},
		StatusPOReview: {
			EventPOMatched:     StatusReadyForApproval,
			EventDataCorrected: StatusExtracted,
			EventReject:        StatusRejected,
		},
		StatusDataCorrection: {
			EventDataCorrected: StatusExtracted,
			EventReject:        StatusRejected,
		},
		StatusReadyForApproval: {
			EventApprove: StatusApproved,
			EventReject:  StatusRejected,
		},
		StatusApproved: {
			EventExportCompleted: StatusExported,
			EventExportFailed:    StatusFailed,
		},
	}
}

// reviewTable is the fast review-only path for informational types
// (statements, reminders, finance charge memos).
func reviewTable() map[Status]map[Event]Status {
	return map[Status]map[Event]Status{
		StatusCaptured: {
			EventExtractionCompleted: StatusReadyForReview,
			EventReject:              StatusRejected,
		},
		StatusReadyForReview: {
			EventReviewCompleted: StatusReviewed,
			EventReject:          StatusRejected,
		},
		StatusReviewed: {
			EventExportCompleted: StatusExported,
			EventArchive:         StatusArchived,
		},
	}
}

// terminalStatuses have no outgoing transitions for any document type.
var terminalStatuses = map[Status]bool{
	StatusExported: true,
	StatusArchived: true,
	StatusRejected: true,
	StatusFailed:   true,
}

// Terminal reports whether status is a terminal workflow status.
func Terminal(status Status) bool {
	return terminalStatuses[status]
}

// statusOrder is the canonical ordering used when enumerating statuses.
var statusOrder = []Status{
	StatusCaptured,
	StatusExtracted,
	StatusVendorReview,
	StatusVendorMatched,
	StatusValidationFailed,
	StatusDataCorrection,
	StatusPOReview,
	StatusReadyForApproval,
	StatusApproved,
	StatusReadyForReview,
	StatusTagged,
	StatusReviewed,
	StatusTriagePending,
	StatusTriageCompleted,
	StatusExported,
	StatusArchived,
	StatusRejected,
	StatusFailed,
}

// Statuses returns every status that participates in docType's transition
// table, in canonical order: sources, reachable targets, and terminals.
// Unknown document types yield nil.
func Statuses(docType DocType) []Status {
	table, ok := transitions[docType]
	if !ok {
		return nil
	}

	member := make(map[Status]bool)
	member[StatusCaptured] = true
	for status, events := range table {
		member[status] = true
		for _, next := range events {
			member[next] = true
		}
	}

	var result []Status
	for _, status := range statusOrder {
		if member[status] {
			result = append(result, status)
		}
	}

	return result
}
