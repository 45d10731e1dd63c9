// ABOUTME: MCP tool definitions and registration for the seeding server
// ABOUTME: Exposes seed_index and list_records over the Model Context Protocol
package mcp

import (
	"github.com/ezmedsafe/data-prep/internal/records"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, seed SeedFunc, recs []records.Record) *Handlers {
	handlers := NewHandlers(seed, recs)

	// 1. seed_index - Embed the record set and upsert it into the RAG index
	server.AddTool(mcp.Tool{
		Name:        "seed_index",
		Description: "Embed the drug-interaction passages and upsert them into the Pinecone RAG index. Creates the index if it does not exist. Every call appends a fresh batch.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"fail_fast": map[string]interface{}{
					"type":        "boolean",
					"description": "Return an error when the final upsert fails instead of reporting it (default: false)",
					"default":     false,
				},
			},
		},
	}, handlers.SeedIndex)

	// 2. list_records - Show the passages that seed_index would write
	server.AddTool(mcp.Tool{
		Name:        "list_records",
		Description: "List the drug-mechanism and drug-drug interaction passages with their metadata.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListRecords)

	return handlers
}
