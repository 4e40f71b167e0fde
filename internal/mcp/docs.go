package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `burstguard records activity per identity and throttles bursts.

- record_activity(identity): records one activity. Fails with RATE_LIMITED when the last 20 activities for that identity all happened less than 2 minutes ago.
- check_activity(identity): same verdict, nothing recorded.
- get_activity_history(identity): recorded timestamps, oldest first.

Identities are opaque strings and are never validated.`

const rateLimitDoc = `# Burst detection

An identity is throttled when its 20 most recent activities are all less than
2 minutes old. Fewer than 20 recorded activities never throttle. A single older
activity among the last 20 clears the identity. Activities dated in the future
count as recent. A history containing unparseable timestamps never throttles.

Rejected attempts are not recorded.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "burstguard://docs/rate-limit",
		Name:        "rate-limit",
		Title:       "Burst detection rules",
		Description: "How record_activity decides to reject an identity",
		Content:     rateLimitDoc,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
