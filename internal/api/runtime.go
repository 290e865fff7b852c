package api

import (
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/cdillerud/docsync/internal/config"
	"github.com/cdillerud/docsync/internal/infrastructure"
	"github.com/cdillerud/docsync/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Agent      gaconfig.AgentConfig
	Workflow   config.WorkflowConfig
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Agent:      cfg.Agent,
		Workflow:   cfg.Workflow,
		Pagination: cfg.API.Pagination,
	}
}
