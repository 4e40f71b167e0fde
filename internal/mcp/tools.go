package mcp

import (
	"context"

	"github.com/rpggio/burstguard/internal/domain/activity"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// IdentityParams is the input of every activity tool.
type IdentityParams struct {
	Identity string `json:"identity" jsonschema:"the identity (usually an email address) the activity belongs to"`
}

// RecordActivityResult is returned by record_activity.
type RecordActivityResult struct {
	Outcome   string `json:"outcome"`
	Identity  string `json:"identity"`
	Timestamp string `json:"timestamp,omitempty"`
}

// CheckActivityResult is returned by check_activity.
type CheckActivityResult struct {
	Identity   string `json:"identity"`
	Suspicious bool   `json:"suspicious"`
	Count      int    `json:"count"`
}

// ActivityHistoryResult is returned by get_activity_history.
type ActivityHistoryResult struct {
	Identity   string   `json:"identity"`
	Timestamps []string `json:"timestamps"`
}

func registerTools(server *sdkmcp.Server, svc ActivityService) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "record_activity",
		Description: "Record one activity for an identity. Fails with RATE_LIMITED when the identity's last 20 activities all happened within 2 minutes.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in IdentityParams) (*sdkmcp.CallToolResult, RecordActivityResult, error) {
		res, err := svc.Record(ctx, in.Identity)
		if err != nil {
			return nil, RecordActivityResult{}, toolError(err)
		}
		return nil, RecordActivityResult{
			Outcome:   string(res.Outcome),
			Identity:  res.Identity,
			Timestamp: string(res.Timestamp),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "check_activity",
		Description: "Report whether an identity would currently be rate limited, without recording anything",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in IdentityParams) (*sdkmcp.CallToolResult, CheckActivityResult, error) {
		history, err := svc.History(ctx, in.Identity)
		if err != nil {
			return nil, CheckActivityResult{}, toolError(err)
		}
		suspicious, err := svc.Check(ctx, in.Identity)
		if err != nil {
			return nil, CheckActivityResult{}, toolError(err)
		}
		return nil, CheckActivityResult{
			Identity:   in.Identity,
			Suspicious: suspicious,
			Count:      len(history),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_activity_history",
		Description: "List the recorded activity timestamps for an identity, oldest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in IdentityParams) (*sdkmcp.CallToolResult, ActivityHistoryResult, error) {
		history, err := svc.History(ctx, in.Identity)
		if err != nil {
			return nil, ActivityHistoryResult{}, toolError(err)
		}
		return nil, ActivityHistoryResult{
			Identity:   in.Identity,
			Timestamps: timestampStrings(history),
		}, nil
	})
}

func timestampStrings(history []activity.Timestamp) []string {
	out := make([]string, 0, len(history))
	for _, ts := range history {
		out = append(out, string(ts))
	}
	return out
}

func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
