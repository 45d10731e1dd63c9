// ABOUTME: MCP tool handler implementations for the seeding server
// ABOUTME: Pipeline failures are returned as tool errors, not protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ezmedsafe/data-prep/internal/ingest"
	"github.com/ezmedsafe/data-prep/internal/records"
	"github.com/mark3labs/mcp-go/mcp"
)

// SeedFunc runs one seeding pass over the record set
type SeedFunc func(ctx context.Context, failFast bool) (*ingest.Report, error)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	seed    SeedFunc
	records []records.Record
}

// NewHandlers creates handlers over a seed function and the records it writes
func NewHandlers(seed SeedFunc, recs []records.Record) *Handlers {
	return &Handlers{seed: seed, records: recs}
}

type seedResponse struct {
	Index        string `json:"index"`
	IndexCreated bool   `json:"index_created"`
	Embedded     int    `json:"embedded"`
	Upserted     int    `json:"upserted"`
	UpsertError  string `json:"upsert_error,omitempty"`
}

// SeedIndex handles the seed_index tool
func (h *Handlers) SeedIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	failFast := request.GetBool("fail_fast", false)

	report, err := h.seed(ctx, failFast)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("seeding failed: %v", err)), nil
	}

	resp := seedResponse{
		Index:        report.IndexName,
		IndexCreated: report.IndexCreated,
		Embedded:     report.Embedded,
		Upserted:     report.Upserted,
	}
	if report.UpsertErr != nil {
		resp.UpsertError = report.UpsertErr.Error()
	}

	responseJSON, err := json.Marshal(resp)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListRecords handles the list_records tool
func (h *Handlers) ListRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(map[string]interface{}{
		"count":   len(h.records),
		"records": h.records,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
