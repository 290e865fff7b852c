package workflow

// Queue identifies a work queue whose membership is derived entirely from a
// document's current workflow status.
type Queue string

// Work queues.
const (
	QueueIntake           Queue = "intake"
	QueueExtraction       Queue = "extraction"
	QueueVendorResolution Queue = "vendor_resolution"
	QueueValidation       Queue = "validation"
	QueueCorrection       Queue = "correction"
	QueueApproval         Queue = "approval"
	QueueReview           Queue = "review"
	QueueTriage           Queue = "triage"
	QueueExport           Queue = "export"
	QueueNone             Queue = "none"
)

// Queues lists every work queue in processing order.
func Queues() []Queue {
	return []Queue{
		QueueIntake,
		QueueExtraction,
		QueueVendorResolution,
		QueueValidation,
		QueueCorrection,
		QueueApproval,
		QueueReview,
		QueueTriage,
		QueueExport,
	}
}

var statusQueues = map[Status]Queue{
	StatusCaptured:         QueueIntake,
	StatusExtracted:        QueueExtraction,
	StatusVendorReview:     QueueVendorResolution,
	StatusVendorMatched:    QueueValidation,
	StatusValidationFailed: QueueValidation,
	StatusDataCorrection:   QueueCorrection,
	StatusPOReview:         QueueValidation,
	StatusReadyForApproval: QueueApproval,
	StatusApproved:         QueueExport,
	StatusReadyForReview:   QueueReview,
	StatusTagged:           QueueReview,
	StatusReviewed:         QueueExport,
	StatusTriagePending:    QueueTriage,
	StatusTriageCompleted:  QueueExport,
}

// QueueFor returns the work queue a document of docType in status belongs
// to. Terminal statuses and statuses outside docType's table map to
// QueueNone; the lookup never fails.
func QueueFor(docType DocType, status Status) Queue {
	if Terminal(status) {
		return QueueNone
	}

	table, ok := transitions[docType]
	if !ok {
		return QueueNone
	}
	if _, ok := table[status]; !ok {
		return QueueNone
	}

	queue, ok := statusQueues[status]
	if !ok {
		return QueueNone
	}
	return queue
}

// StatusesForQueue returns the statuses whose documents belong to queue, in
// canonical order. Persisted documents only carry statuses valid for their
// own type, so filtering stored documents by these statuses alone yields
// exactly the queue's membership.
func StatusesForQueue(queue Queue) []Status {
	var result []Status
	for _, status := range statusOrder {
		if statusQueues[status] == queue {
			result = append(result, status)
		}
	}
	return result
}

// exceptionStatuses are the human-intervention backlog states per document
// type: vendor resolution, ERP-validation failure, data correction, and
// PO-validation failure. Types with fully automatic paths have none.
var exceptionStatuses = map[DocType][]Status{
	DocTypeAPInvoice:          {StatusVendorReview, StatusValidationFailed, StatusDataCorrection},
	DocTypeSalesInvoice:       {StatusDataCorrection},
	DocTypeSalesCreditMemo:    {StatusDataCorrection},
	DocTypePurchaseOrder:      {StatusPOReview, StatusDataCorrection},
	DocTypePurchaseCreditMemo: {StatusPOReview, StatusDataCorrection},
}

// ExceptionStatuses returns the exception backlog statuses for docType.
// Types without exception states return nil.
func ExceptionStatuses(docType DocType) []Status {
	statuses, ok := exceptionStatuses[docType]
	if !ok {
		return nil
	}

	result := make([]Status, len(statuses))
	copy(result, statuses)
	return result
}

// ActiveStatuses returns docType's statuses excluding the terminal set.
func ActiveStatuses(docType DocType) []Status {
	var result []Status
	for _, status := range Statuses(docType) {
		if !Terminal(status) {
			result = append(result, status)
		}
	}
	return result
}

// apSpecificStatuses exist only in the AP invoice state machine.
var apSpecificStatuses = map[Status]bool{
	StatusVendorReview:     true,
	StatusVendorMatched:    true,
	StatusValidationFailed: true,
}

// IsAPSpecificStatus reports whether status belongs exclusively to the AP
// invoice path. Used to reject AP-only mutation verbs on other types.
func IsAPSpecificStatus(status Status) bool {
	return apSpecificStatuses[status]
}

// apSpecificEvents are the vendor-match and ERP-validation verbs that only
// AP invoices accept.
var apSpecificEvents = map[Event]bool{
	EventVendorMatched: true,
	EventVendorMissing: true,
	EventERPValidated:  true,
	EventERPRejected:   true,
}

// IsAPSpecificEvent reports whether event is an AP invoice-only verb.
func IsAPSpecificEvent(event Event) bool {
	return apSpecificEvents[event]
}
