package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Aanerud/Reddit-MCP/internal/aggregate"
	"github.com/Aanerud/Reddit-MCP/internal/domain"
	"github.com/Aanerud/Reddit-MCP/internal/filter"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	domain.Client

	hot  func(sub string, limit int) ([]domain.Post, error)
	info func(sub string) (*domain.SubredditInfo, error)
}

func (f *fakeClient) HotPosts(_ context.Context, sub string, limit int) ([]domain.Post, error) {
	return f.hot(sub, limit)
}

func (f *fakeClient) SubredditInfo(_ context.Context, sub string) (*domain.SubredditInfo, error) {
	return f.info(sub)
}

func newTestServer(t *testing.T, client domain.Client) *Server {
	t.Helper()
	topicPath := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(topicPath, []byte("# Tech\n/r/programming\n"), 0o644))
	return NewServer(client, aggregate.New(client, filter.Permissive, topicPath, 3))
}

func call(s *Server, method string, id any, params any) *Response {
	var raw json.RawMessage
	if params != nil {
		raw, _ = json.Marshal(params)
	}
	return s.HandleRequest(context.Background(), &Request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  raw,
	})
}

func toolCall(s *Server, id any, name string, args any) *Response {
	rawArgs, _ := json.Marshal(args)
	return call(s, "tools/call", id, ToolCallParams{Name: name, Arguments: rawArgs})
}

// resultText digs the first text block out of a tool-call result.
func resultText(t *testing.T, resp *Response) string {
	t.Helper()
	require.Nil(t, resp.Error)
	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	require.NotEmpty(t, result.Content)
	assert.Equal(t, "text", result.Content[0].Type)
	assert.False(t, result.IsError)
	return result.Content[0].Text
}

func TestInitialize(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	resp := call(s, "initialize", 1, nil)

	require.NotNil(t, resp)
	require.Nil(t, resp.Error)
	assert.Equal(t, "2.0", resp.JSONRPC)
	var result struct {
		ProtocolVersion string `json:"protocolVersion"`
		ServerInfo      struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"serverInfo"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.Equal(t, "2024-11-05", result.ProtocolVersion)
	assert.Equal(t, "reddit-mcp", result.ServerInfo.Name)
}

func TestToolsList(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	resp := call(s, "tools/list", 2, nil)

	require.Nil(t, resp.Error)
	var result struct {
		Tools []Tool `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	require.Len(t, result.Tools, 8)

	names := make(map[string]bool)
	for _, tool := range result.Tools {
		names[tool.Name] = true
		assert.NotEmpty(t, tool.Description, "tool %s needs a description", tool.Name)
	}
	for _, want := range []string{
		"reddit_topic", "reddit_hot", "reddit_post", "reddit_front",
		"reddit_top", "reddit_new", "reddit_rising", "reddit_info",
	} {
		assert.True(t, names[want], "missing tool %s", want)
	}
}

func TestPing(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	resp := call(s, "ping", 3, nil)

	require.Nil(t, resp.Error)
	assert.Equal(t, json.RawMessage(`"pong"`), resp.Result)
}

func TestUnknownMethod(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	resp := call(s, "resources/list", 4, nil)

	require.NotNil(t, resp.Error)
	assert.Equal(t, MethodNotFound, resp.Error.Code)
}

func TestUnknownMethodNotification(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	resp := call(s, "notifications/initialized", nil, nil)

	assert.Nil(t, resp)
}

func TestUnknownTool(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	resp := toolCall(s, 5, "reddit_magic", map[string]any{})

	require.NotNil(t, resp.Error)
	assert.Equal(t, InvalidParams, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "reddit_magic")
}

func TestRedditHot(t *testing.T) {
	client := &fakeClient{hot: func(sub string, limit int) ([]domain.Post, error) {
		return []domain.Post{{
			Title: "Go 1.25 released", Score: 500, Author: "gopher",
			Kind: domain.KindText, Content: "notes", Permalink: "/r/golang/comments/x/",
		}}, nil
	}}
	s := newTestServer(t, client)

	text := resultText(t, toolCall(s, 6, "reddit_hot", map[string]any{"subreddit": "golang"}))

	assert.Contains(t, text, "Title: Go 1.25 released")
	assert.Contains(t, text, "Link: https://reddit.com/r/golang/comments/x/")
}

func TestRedditHot_MissingSubreddit(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	resp := toolCall(s, 7, "reddit_hot", map[string]any{})

	require.NotNil(t, resp.Error)
	assert.Equal(t, InvalidParams, resp.Error.Code)
	assert.Equal(t, "subreddit is required", resp.Error.Message)
}

func TestRedditHot_CapsOverReturningClient(t *testing.T) {
	client := &fakeClient{hot: func(sub string, limit int) ([]domain.Post, error) {
		posts := make([]domain.Post, 5)
		for i := range posts {
			posts[i] = domain.Post{Title: fmt.Sprintf("post %d", i), Kind: domain.KindText}
		}
		return posts, nil
	}}
	s := newTestServer(t, client)

	text := resultText(t, toolCall(s, 13, "reddit_hot", map[string]any{"subreddit": "test", "limit": 3}))

	assert.Equal(t, 3, strings.Count(text, "Title: "))
}

// Upstream failures come back as plain text, not protocol errors.
func TestRedditHot_FetchFailure(t *testing.T) {
	client := &fakeClient{hot: func(string, int) ([]domain.Post, error) {
		return nil, errors.New("reddit is down")
	}}
	s := newTestServer(t, client)

	text := resultText(t, toolCall(s, 8, "reddit_hot", map[string]any{"subreddit": "golang"}))

	assert.Contains(t, text, "An error occurred:")
	assert.Contains(t, text, "reddit is down")
}

func TestRedditTopic(t *testing.T) {
	client := &fakeClient{hot: func(sub string, limit int) ([]domain.Post, error) {
		return []domain.Post{{Title: "aggregated", Kind: domain.KindText, CreatedUTC: 1700000000}}, nil
	}}
	s := newTestServer(t, client)

	text := resultText(t, toolCall(s, 9, "reddit_topic", map[string]any{"topic": "Tech"}))

	assert.Contains(t, text, "Latest content for topic: Tech")
	assert.Contains(t, text, "[programming] aggregated")
}

// Unknown topics are guidance for the model, not protocol errors.
func TestRedditTopic_Unknown(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	text := resultText(t, toolCall(s, 10, "reddit_topic", map[string]any{"topic": "Gardening"}))

	assert.Contains(t, text, "Topic 'Gardening' not found")
	assert.Contains(t, text, "Tech")
}

func TestRedditFront_InvalidSort(t *testing.T) {
	s := newTestServer(t, &fakeClient{})

	text := resultText(t, toolCall(s, 11, "reddit_front", map[string]any{"sort": "controversial"}))

	assert.Equal(t, "Invalid sort method: controversial. Use 'hot', 'top', or 'new'", text)
}

// An unparseable request has no recoverable id, so the error response
// carries id null per JSON-RPC 2.0.
func TestHandleHTTP_ParseErrorNullID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := newTestServer(t, &fakeClient{})
	router := gin.New()
	router.POST("/mcp", s.HandleHTTP)

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ID    json.RawMessage `json:"id"`
		Error *ErrorObject    `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "null", string(resp.ID))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ParseError, resp.Error.Code)
}

func TestRedditInfo(t *testing.T) {
	client := &fakeClient{info: func(sub string) (*domain.SubredditInfo, error) {
		return &domain.SubredditInfo{Name: sub, Title: "Go", Subscribers: 250000, Type: "public"}, nil
	}}
	s := newTestServer(t, client)

	text := resultText(t, toolCall(s, 12, "reddit_info", map[string]any{"subreddit": "golang"}))

	assert.Contains(t, text, "Subreddit: r/golang")
	assert.Contains(t, text, "Subscribers: 250,000")
}
