package providers

import (
	"context"

	"github.com/caresure/providerportal/internal/domain/entities"
)

// TraceGenerator produces an advisory execution trace for a verification run.
// Its output is untrusted input: the trace assembler validates it and falls
// back to a deterministic trace when it is missing or malformed. It never
// influences the verdict itself.
type TraceGenerator interface {
	// GenerateTrace returns candidate pipeline stages for the descriptor and
	// the verdict engine's decision context. Implementations must honor ctx
	// cancellation; callers bound the call with a timeout.
	GenerateTrace(ctx context.Context, descriptor entities.ProviderDescriptor, core entities.VerdictCore) ([]entities.PipelineStage, error)
}
