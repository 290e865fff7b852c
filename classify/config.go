package classify

import (
	"strings"

	"github.com/cdillerud/docsync/workflow"
)

// Config holds the classification lookup tables. Build it once at process
// start (DefaultConfig) and pass it by reference; the maps are never
// mutated after construction, so no test-time reset is required.
type Config struct {
	// SetCodes maps Zetadocs document set codes to document types.
	SetCodes map[string]workflow.DocType
	// WorkflowNames maps Continia approval workflow names to document types.
	// Lookup is exact first, then normalized (lowercase, trimmed).
	WorkflowNames map[string]workflow.DocType
	// MailboxCategories maps mailbox/category hints to document types.
	MailboxCategories map[string]workflow.DocType
	// AILabels maps AI-suggested labels to document types. Labels are
	// normalized before lookup.
	AILabels map[string]workflow.DocType
	// ChannelKeywords pairs capture-source keywords with capture channels,
	// in match priority order. Earlier entries win when a label contains
	// several keywords.
	ChannelKeywords []ChannelKeyword
}

// ChannelKeyword binds one capture-source keyword to its channel.
type ChannelKeyword struct {
	Keyword string
	Channel workflow.CaptureChannel
}

// DefaultConfig returns the fixed classification tables for the packaging
// document pipeline.
func DefaultConfig() *Config {
	return &Config{
		SetCodes: map[string]workflow.DocType{
			"ZD00015": workflow.DocTypeAPInvoice,
			"ZD00016": workflow.DocTypePurchaseOrder,
			"ZD00017": workflow.DocTypePurchaseCreditMemo,
			"ZD00021": workflow.DocTypeSalesInvoice,
			"ZD00022": workflow.DocTypeSalesCreditMemo,
			"ZD00030": workflow.DocTypeStatement,
			"ZD00031": workflow.DocTypeReminder,
			"ZD00032": workflow.DocTypeFinanceChargeMemo,
			"ZD00040": workflow.DocTypeQualityDoc,
		},
		WorkflowNames: map[string]workflow.DocType{
			"Purchase Invoice Approval":     workflow.DocTypeAPInvoice,
			"Purchase Order Approval":       workflow.DocTypePurchaseOrder,
			"Purchase Credit Memo Approval": workflow.DocTypePurchaseCreditMemo,
			"Sales Invoice Approval":        workflow.DocTypeSalesInvoice,
			"Sales Credit Memo Approval":    workflow.DocTypeSalesCreditMemo,
			"Vendor Statement Review":       workflow.DocTypeStatement,
			"Quality Record Review":         workflow.DocTypeQualityDoc,
		},
		MailboxCategories: map[string]workflow.DocType{
			"AP Invoices":     workflow.DocTypeAPInvoice,
			"Sales Invoices":  workflow.DocTypeSalesInvoice,
			"Purchase Orders": workflow.DocTypePurchaseOrder,
			"Credit Memos":    workflow.DocTypePurchaseCreditMemo,
			"Statements":      workflow.DocTypeStatement,
			"Reminders":       workflow.DocTypeReminder,
			"Finance Charges": workflow.DocTypeFinanceChargeMemo,
			"Quality":         workflow.DocTypeQualityDoc,
		},
		AILabels: map[string]workflow.DocType{
			"ap invoice":           workflow.DocTypeAPInvoice,
			"vendor invoice":       workflow.DocTypeAPInvoice,
			"purchase invoice":     workflow.DocTypeAPInvoice,
			"sales invoice":        workflow.DocTypeSalesInvoice,
			"customer invoice":     workflow.DocTypeSalesInvoice,
			"purchase order":       workflow.DocTypePurchaseOrder,
			"sales credit memo":    workflow.DocTypeSalesCreditMemo,
			"purchase credit memo": workflow.DocTypePurchaseCreditMemo,
			"credit memo":          workflow.DocTypePurchaseCreditMemo,
			"statement":            workflow.DocTypeStatement,
			"vendor statement":     workflow.DocTypeStatement,
			"reminder":             workflow.DocTypeReminder,
			"payment reminder":     workflow.DocTypeReminder,
			"finance charge memo":  workflow.DocTypeFinanceChargeMemo,
			"quality record":       workflow.DocTypeQualityDoc,
			"quality certificate":  workflow.DocTypeQualityDoc,
		},
		ChannelKeywords: []ChannelKeyword{
			{"migration", workflow.ChannelMigration},
			{"backfill", workflow.ChannelMigration},
			{"import", workflow.ChannelMigration},
			{"email", workflow.ChannelEmail},
			{"mailbox", workflow.ChannelEmail},
			{"outlook", workflow.ChannelEmail},
			{"upload", workflow.ChannelUpload},
			{"manual", workflow.ChannelUpload},
			{"portal", workflow.ChannelUpload},
			{"api", workflow.ChannelAPI},
			{"webhook", workflow.ChannelAPI},
			{"erp", workflow.ChannelAPI},
		},
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
