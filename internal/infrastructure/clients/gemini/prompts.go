package gemini

import (
	"fmt"

	"github.com/caresure/providerportal/internal/domain/entities"
)

const tracePromptTemplate = `Simulate an "Agentic AI Healthcare Verification Pipeline" execution for provider %q (license %s, address %q).

The pipeline has these components:
1. Agentic AI (Orchestrator): coordinates tasks.
2. Agent 1 (Data Acquisition): queries the NPI registry (NPPES), scrapes the state medical board portal and downloads verification documents.
3. Agent 2 (Validation & Sync): validates acquired data against the registries.
4. Data Store: writes versioned records (audit/rollback).
5. Update API: syncs to payer systems.

The authoritative outcome has already been decided and MUST be reflected in the logs:
status: %s
reason: %s

Return ONLY valid JSON with this schema:
{
  "pipelineTrace": [
    {
      "id": "1",
      "agentName": "Agentic AI (Orchestrator)",
      "role": "Orchestrator",
      "status": "completed",
      "logs": ["Init pipeline", "Routing to Agent 1..."],
      "timestamp": "ISO string"
    }
  ]
}
Stage ids must be contiguous integers starting at "1". Each stage needs at least one log line. Allowed statuses: pending, processing, completed, failed. If the outcome is not VERIFIED, Agent 2 (Validation) fails and cites the reason above.`

// buildTracePrompt embeds the deterministic decision context into the
// generation prompt. The generator elaborates the narrative; it never decides
// the outcome.
func buildTracePrompt(descriptor entities.ProviderDescriptor, core entities.VerdictCore) string {
	return fmt.Sprintf(
		tracePromptTemplate,
		descriptor.Name, descriptor.LicenseID, descriptor.Address,
		core.Status, core.Reason,
	)
}
