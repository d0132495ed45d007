package agent

import (
	"context"
	"fmt"
)

// ScriptedClient serves persona messages from local templates. It is the
// backend when no API key is configured, and keeps the app fully usable
// offline.
type ScriptedClient struct{}

func NewScriptedClient() *ScriptedClient {
	return &ScriptedClient{}
}

func (c *ScriptedClient) Generate(_ context.Context, req Request) (Response, error) {
	resp := Fallback(req.Mode)

	switch req.Mode {
	case ModeSessionComplete:
		if req.Session != nil && req.Session.CurrentStreak > 1 {
			resp.Message = fmt.Sprintf("Session complete! That's a %d-day streak - keep it rolling.", req.Session.CurrentStreak)
		}
	case ModeSessionAbandoned:
		if req.Session != nil && req.Session.LastDuration >= 600 {
			resp.Message = fmt.Sprintf("You still focused for %d minutes - that counts. Shorter session next time?", req.Session.LastDuration/60)
		}
	case ModeArchitectureAdvice:
		if req.Architecture != nil {
			resp = adviseArchitecture(*req.Architecture, resp)
		}
	}

	return resp, nil
}

// adviseArchitecture picks a next step from what the canvas is missing.
// Rough heuristic only: the model-backed client gives richer advice.
func adviseArchitecture(arch ArchitectureSummary, resp Response) Response {
	owned := make(map[string]bool, len(arch.OwnedComponents))
	for _, id := range arch.OwnedComponents {
		owned[id] = true
	}

	switch {
	case len(arch.OwnedComponents) == 0:
		resp.Message = "Start with a static site or web server to anchor your stack."
		resp.SuggestedItem = "static_site"
		resp.Reasoning = "Every architecture needs an entry point."
	case owned["web_server"] && !owned["sql_db"]:
		resp.Message = "A web server without storage won't get far. Add a database next."
		resp.SuggestedItem = "sql_db"
		resp.Reasoning = "Persistent data is the usual next layer behind compute."
	case owned["sql_db"] && !owned["redis_cache"]:
		resp.Message = "A cache in front of that database would speed things up."
		resp.SuggestedItem = "redis_cache"
		resp.Reasoning = "Caching reads is the cheapest scaling win."
	case len(arch.Placed) > 0 && len(arch.Connections) == 0:
		resp.Message = "You have components placed but nothing connected. Wire up the request path!"
		resp.Reasoning = "Connections are what make the diagram an architecture."
	}

	return resp
}
