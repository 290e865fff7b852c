package classify_test

import (
	"testing"

	"github.com/cdillerud/docsync/classify"
	"github.com/cdillerud/docsync/workflow"
)

func TestResolve(t *testing.T) {
	cfg := classify.DefaultConfig()

	tests := []struct {
		name    string
		hints   classify.Hints
		docType workflow.DocType
		method  string
	}{
		{
			name:    "set code wins",
			hints:   classify.Hints{SetCode: "ZD00015"},
			docType: workflow.DocTypeAPInvoice,
			method:  classify.MethodSetCode,
		},
		{
			name:    "set code is trimmed and upcased",
			hints:   classify.Hints{SetCode: " zd00040 "},
			docType: workflow.DocTypeQualityDoc,
			method:  classify.MethodSetCode,
		},
		{
			name: "set code beats a conflicting mailbox hint",
			hints: classify.Hints{
				SetCode:         "ZD00021",
				MailboxCategory: "AP Invoices",
			},
			docType: workflow.DocTypeSalesInvoice,
			method:  classify.MethodSetCode,
		},
		{
			name:    "workflow name exact match",
			hints:   classify.Hints{WorkflowName: "Purchase Order Approval"},
			docType: workflow.DocTypePurchaseOrder,
			method:  classify.MethodWorkflowName,
		},
		{
			name:    "workflow name normalized match",
			hints:   classify.Hints{WorkflowName: "  purchase invoice approval "},
			docType: workflow.DocTypeAPInvoice,
			method:  classify.MethodWorkflowName,
		},
		{
			name: "workflow name beats mailbox and ai label",
			hints: classify.Hints{
				WorkflowName:    "Vendor Statement Review",
				MailboxCategory: "Quality",
				AILabel:         "purchase order",
			},
			docType: workflow.DocTypeStatement,
			method:  classify.MethodWorkflowName,
		},
		{
			name:    "mailbox category",
			hints:   classify.Hints{MailboxCategory: "Reminders"},
			docType: workflow.DocTypeReminder,
			method:  classify.MethodMailbox,
		},
		{
			name:    "ai label",
			hints:   classify.Hints{AILabel: "Quality Certificate"},
			docType: workflow.DocTypeQualityDoc,
			method:  classify.MethodAILabel,
		},
		{
			name:    "unknown set code falls through to workflow name",
			hints:   classify.Hints{SetCode: "ZD99999", WorkflowName: "Sales Invoice Approval"},
			docType: workflow.DocTypeSalesInvoice,
			method:  classify.MethodWorkflowName,
		},
		{
			name:    "no hints defaults to OTHER",
			hints:   classify.Hints{},
			docType: workflow.DocTypeOther,
			method:  classify.MethodDefault,
		},
		{
			name:    "all hints unrecognized defaults to OTHER",
			hints:   classify.Hints{SetCode: "XX", WorkflowName: "Nope", MailboxCategory: "Junk", AILabel: "mystery"},
			docType: workflow.DocTypeOther,
			method:  classify.MethodDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify.Resolve(cfg, tt.hints)
			if got.DocType != tt.docType {
				t.Errorf("doc type = %s, want %s", got.DocType, tt.docType)
			}
			if got.Method != tt.method {
				t.Errorf("method = %s, want %s", got.Method, tt.method)
			}
		})
	}
}

func TestSourceFor(t *testing.T) {
	tests := []struct {
		name  string
		hints classify.Hints
		want  workflow.SourceSystem
	}{
		{"migration marker wins", classify.Hints{Migration: true, SetCode: "ZD00015"}, workflow.SourceMigration},
		{"set code implies zetadocs", classify.Hints{SetCode: "ZD00015"}, workflow.SourceZetadocs},
		{"workflow name implies continia", classify.Hints{WorkflowName: "Purchase Invoice Approval"}, workflow.SourceContinia},
		{"no legacy hints implies native", classify.Hints{MailboxCategory: "AP Invoices"}, workflow.SourceNative},
		{"empty hints imply native", classify.Hints{}, workflow.SourceNative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify.SourceFor(tt.hints); got != tt.want {
				t.Errorf("SourceFor = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestChannelFor(t *testing.T) {
	cfg := classify.DefaultConfig()

	tests := []struct {
		name  string
		label string
		want  workflow.CaptureChannel
	}{
		{"exact keyword", "email", workflow.ChannelEmail},
		{"case insensitive", "EMAIL", workflow.ChannelEmail},
		{"keyword containment", "shared outlook inbox", workflow.ChannelEmail},
		{"portal upload", "customer portal", workflow.ChannelUpload},
		{"webhook", "erp webhook push", workflow.ChannelAPI},
		{"backfill", "legacy backfill job", workflow.ChannelMigration},
		{"migration keyword beats email keyword", "email import", workflow.ChannelMigration},
		{"empty label", "", workflow.ChannelUnknown},
		{"unrecognized label", "carrier pigeon", workflow.ChannelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify.ChannelFor(cfg, tt.label); got != tt.want {
				t.Errorf("ChannelFor(%q) = %s, want %s", tt.label, got, tt.want)
			}
		})
	}
}

func TestChannelForDeterministic(t *testing.T) {
	cfg := classify.DefaultConfig()

	// Labels hitting several keywords must resolve identically on every run.
	first := classify.ChannelFor(cfg, "email import")
	for range 10 {
		if got := classify.ChannelFor(cfg, "email import"); got != first {
			t.Fatalf("resolution changed: %s vs %s", got, first)
		}
	}
}

func TestResolveNormalizedWorkflowNameDeterministic(t *testing.T) {
	cfg := classify.DefaultConfig()
	hints := classify.Hints{WorkflowName: "  purchase invoice approval "}

	first := classify.Resolve(cfg, hints)
	for range 10 {
		if got := classify.Resolve(cfg, hints); got != first {
			t.Fatalf("resolution changed: %+v vs %+v", got, first)
		}
	}
}

func TestDefaultConfigCoversAllSetCodes(t *testing.T) {
	cfg := classify.DefaultConfig()

	// Every mapped type must be a real workflow type.
	for code, docType := range cfg.SetCodes {
		if _, ok := workflow.ParseDocType(string(docType)); !ok {
			t.Errorf("set code %s maps to unknown type %s", code, docType)
		}
	}
	for label, docType := range cfg.AILabels {
		if _, ok := workflow.ParseDocType(string(docType)); !ok {
			t.Errorf("ai label %q maps to unknown type %s", label, docType)
		}
	}
}
