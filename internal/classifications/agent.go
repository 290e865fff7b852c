package classifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/cdillerud/docsync/classify"
	"github.com/cdillerud/docsync/pkg/formatting"
	"github.com/cdillerud/docsync/workflow"
)

// labelResponse is the JSON shape the model is instructed to return.
type labelResponse struct {
	DocType    string  `json:"doc_type"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

const classifyPrompt = `You classify business documents for a packaging company.
Given the document context below, respond with JSON only:
{"doc_type": "<one of: %s>", "confidence": <0.0-1.0>, "rationale": "<one sentence>"}

Document context:
%s`

// classifyWithAgent asks the configured model to propose a document type
// from the intake context. It never returns an error: any call or parse
// failure is folded into the result with ProposedType OTHER and confidence
// 0, so the surrounding classification pipeline always continues.
func classifyWithAgent(
	ctx context.Context,
	cfg gaconfig.AgentConfig,
	docContext string,
) classify.AIResult {
	result := classify.AIResult{
		ClassifiedAt: time.Now().UTC(),
	}
	if cfg.Model != nil {
		result.Model = cfg.Model.Name
	}

	a, err := agent.New(&cfg)
	if err != nil {
		result.Error = fmt.Sprintf("create agent: %v", err)
		return classify.NormalizeAIResult(result)
	}

	prompt := fmt.Sprintf(classifyPrompt, docTypeList(), docContext)

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		result.Error = fmt.Sprintf("chat call: %v", err)
		return classify.NormalizeAIResult(result)
	}

	parsed, err := formatting.Parse[labelResponse](resp.Content())
	if err != nil {
		result.Error = fmt.Sprintf("parse response: %v", err)
		return classify.NormalizeAIResult(result)
	}

	result.ProposedType = workflow.DocType(strings.ToUpper(strings.TrimSpace(parsed.DocType)))
	result.Confidence = parsed.Confidence

	return classify.NormalizeAIResult(result)
}

func docTypeList() string {
	types := workflow.DocTypes()
	names := make([]string, len(types))
	for i, dt := range types {
		names[i] = string(dt)
	}
	return strings.Join(names, ", ")
}

// buildContext assembles the model context from the intake signals that
// failed to resolve deterministically.
func buildContext(filename string, cmd ClassifyCommand) string {
	var b strings.Builder

	fmt.Fprintf(&b, "filename: %s\n", filename)
	if cmd.Hints.MailboxCategory != "" {
		fmt.Fprintf(&b, "mailbox category: %s\n", cmd.Hints.MailboxCategory)
	}
	if cmd.Hints.WorkflowName != "" {
		fmt.Fprintf(&b, "legacy workflow: %s\n", cmd.Hints.WorkflowName)
	}
	if cmd.Hints.SetCode != "" {
		fmt.Fprintf(&b, "legacy set code: %s\n", cmd.Hints.SetCode)
	}
	if cmd.Hints.CaptureSource != "" {
		fmt.Fprintf(&b, "capture source: %s\n", cmd.Hints.CaptureSource)
	}
	if cmd.ExtractedText != "" {
		fmt.Fprintf(&b, "extracted text:\n%s\n", cmd.ExtractedText)
	}

	return b.String()
}
