// Package mcp exposes the Reddit tools over the MCP JSON-RPC protocol.
// The transport is a single HTTP POST endpoint; auth lives in the
// surrounding middleware, not here.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Aanerud/Reddit-MCP/internal/aggregate"
	"github.com/Aanerud/Reddit-MCP/internal/domain"
	"github.com/gin-gonic/gin"
)

const protocolVersion = "2024-11-05"

// Server handles MCP protocol requests
type Server struct {
	client     domain.Client
	aggregator *aggregate.Aggregator
}

// NewServer creates a new MCP server
func NewServer(client domain.Client, aggregator *aggregate.Aggregator) *Server {
	return &Server{client: client, aggregator: aggregator}
}

// HandleHTTP adapts the JSON-RPC handler to the streamable HTTP
// transport: one request message per POST, one response message back.
// Notifications get 202 with no body.
func (s *Server) HandleHTTP(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		// The request id is unknowable here, so it travels as null.
		c.JSON(http.StatusOK, &Response{
			JSONRPC: "2.0",
			ID:      nil,
			Error:   &ErrorObject{Code: ParseError, Message: "Failed to parse request"},
		})
		return
	}

	resp := s.HandleRequest(c.Request.Context(), &req)
	if resp == nil {
		c.Status(http.StatusAccepted)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleRequest processes an MCP request and returns a response.
// Returns nil for notifications (requests without ID) - they don't
// require responses.
func (s *Server) HandleRequest(ctx context.Context, req *Request) *Response {
	requestID := req.ID

	switch req.Method {
	case "initialize":
		return s.handleInitialize(requestID)
	case "tools/list":
		return s.handleToolsList(requestID)
	case "tools/call":
		return s.handleToolsCall(ctx, requestID, req.Params)
	case "ping":
		return &Response{
			JSONRPC: "2.0",
			ID:      requestID,
			Result:  json.RawMessage(`"pong"`),
		}
	}

	// Unknown method - notifications (no ID) don't get responses.
	if requestID == nil {
		return nil
	}
	return s.errorResponse(requestID, MethodNotFound, "Method not found")
}

func (s *Server) handleInitialize(id any) *Response {
	result := map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    "reddit-mcp",
			"version": "2.0.0",
		},
	}
	return s.successResponse(id, result)
}

func (s *Server) handleToolsList(id any) *Response {
	return s.successResponse(id, map[string]any{"tools": getAllTools()})
}

func (s *Server) handleToolsCall(ctx context.Context, id any, params json.RawMessage) *Response {
	var call ToolCallParams
	if err := json.Unmarshal(params, &call); err != nil {
		return s.errorResponse(id, InvalidParams, "Invalid parameters")
	}

	switch call.Name {
	case "reddit_topic":
		return s.handleRedditTopic(ctx, id, call.Arguments)
	case "reddit_hot":
		return s.handleRedditHot(ctx, id, call.Arguments)
	case "reddit_post":
		return s.handleRedditPost(ctx, id, call.Arguments)
	case "reddit_front":
		return s.handleRedditFront(ctx, id, call.Arguments)
	case "reddit_top":
		return s.handleRedditTop(ctx, id, call.Arguments)
	case "reddit_new":
		return s.handleRedditNew(ctx, id, call.Arguments)
	case "reddit_rising":
		return s.handleRedditRising(ctx, id, call.Arguments)
	case "reddit_info":
		return s.handleRedditInfo(ctx, id, call.Arguments)
	default:
		return s.errorResponse(id, InvalidParams, "Unknown tool: "+call.Name)
	}
}

// textResult wraps a formatted text block into the tool-call result
// envelope. Upstream fetch failures travel through here too, as plain
// text, so the protocol call itself still succeeds.
func (s *Server) textResult(id any, text string) *Response {
	return s.successResponse(id, map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"isError": false,
	})
}

func (s *Server) successResponse(id any, result any) *Response {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return s.errorResponse(id, InternalError, fmt.Sprintf("Failed to marshal result: %v", err))
	}
	return &Response{JSONRPC: "2.0", ID: id, Result: json.RawMessage(resultJSON)}
}

func (s *Server) errorResponse(id any, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &ErrorObject{Code: code, Message: message},
	}
}
