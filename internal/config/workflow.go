package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvWorkflowAIThreshold           = "DOCSYNC_WORKFLOW_AI_THRESHOLD"
	EnvWorkflowRecordBlockedAttempts = "DOCSYNC_WORKFLOW_RECORD_BLOCKED_ATTEMPTS"
)

// WorkflowConfig controls classification and transition policy.
type WorkflowConfig struct {
	// AIThreshold is the minimum confidence at which an AI classification
	// proposal is accepted. Proposals below it are audited but rejected.
	AIThreshold float64 `toml:"ai_threshold"`

	// RecordBlockedAttempts persists a history entry for transition attempts
	// that the table does not allow. The document state never changes either
	// way.
	RecordBlockedAttempts bool `toml:"record_blocked_attempts"`
}

// Merge overwrites non-zero fields from overlay.
func (c *WorkflowConfig) Merge(overlay *WorkflowConfig) {
	if overlay.AIThreshold != 0 {
		c.AIThreshold = overlay.AIThreshold
	}
	if overlay.RecordBlockedAttempts {
		c.RecordBlockedAttempts = overlay.RecordBlockedAttempts
	}
}

// Finalize applies defaults, environment overrides, and validation.
func (c *WorkflowConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *WorkflowConfig) loadDefaults() {
	if c.AIThreshold == 0 {
		c.AIThreshold = 0.8
	}
}

func (c *WorkflowConfig) loadEnv() {
	if v := os.Getenv(EnvWorkflowAIThreshold); v != "" {
		if threshold, err := strconv.ParseFloat(v, 64); err == nil {
			c.AIThreshold = threshold
		}
	}
	if v := os.Getenv(EnvWorkflowRecordBlockedAttempts); v != "" {
		if record, err := strconv.ParseBool(v); err == nil {
			c.RecordBlockedAttempts = record
		}
	}
}

func (c *WorkflowConfig) validate() error {
	if c.AIThreshold <= 0 || c.AIThreshold > 1 {
		return fmt.Errorf("ai_threshold must be in (0, 1], got %v", c.AIThreshold)
	}
	return nil
}
