package api

import (
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/agents"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/executions"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/tools"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Tools      tools.System
	Agents     agents.System
	Executions executions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	toolsSys := tools.New(
		runtime.Database.DB(),
		runtime.Logger,
		runtime.Pagination,
	)

	agentsSys := agents.New(
		runtime.Database.DB(),
		runtime.Logger,
		runtime.Pagination,
	)

	resolver := tools.NewResolver(
		toolsSys,
		runtime.Config.Tools.AllowDynamic,
		runtime.Logger,
	)

	assembler := agents.NewAssembler(resolver, runtime.Logger)

	executionsSys := executions.NewDispatcher(
		agentsSys,
		assembler,
		executions.NewStore(runtime.Database.DB(), runtime.Logger),
		&runtime.Config.Providers,
		runtime.Logger,
	)

	return &Domain{
		Tools:      toolsSys,
		Agents:     agentsSys,
		Executions: executionsSys,
	}
}
