package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/sanitizer"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestMCP_UploadAndEvaluate(t *testing.T) {
	s := NewServer(automata.New())
	ctx := context.Background()

	args := map[string]any{"name": "ends-in-a", "description": "{1}\n0,a,1\n0,b,0\n1,a,1\n1,b,0"}
	resp, err := s.handleUpload(ctx, callRequest("upload_machine", args), args)
	require.NoError(t, err)
	assert.Empty(t, resp.Error)
	assert.Equal(t, domain.KindDFA, resp.Record.Kind)

	res, err := s.handleEvaluate(ctx, callRequest("evaluate_strings", map[string]any{
		"name":    "ends-in-a",
		"strings": "ba\nab\naa",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var batch domain.BatchResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &batch))
	assert.Equal(t, []string{"ba", "aa"}, batch.Accepted)

	res, err = s.handleReport(ctx, callRequest("get_report", nil))
	require.NoError(t, err)
	assert.Equal(t, "ends-in-a,DFA,2,2", resultText(t, res))
}

func TestMCP_UploadInvalid(t *testing.T) {
	s := NewServer(automata.New())
	ctx := context.Background()

	args := map[string]any{"name": "broken", "description": "1,2"}
	resp, err := s.handleUpload(ctx, callRequest("upload_machine", args), args)
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalid, resp.Record.Kind)
	assert.Contains(t, resp.Error, "invalid machine description")

	res, err := s.handleEvaluate(ctx, callRequest("evaluate_strings", map[string]any{
		"name":    "broken",
		"strings": "a",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestMCP_ReportFormats(t *testing.T) {
	s := NewServer(automata.New())
	ctx := context.Background()
	_, err := s.engine.Upload(ctx, "m", "{0}")
	require.NoError(t, err)

	res, err := s.handleReport(ctx, callRequest("get_report", map[string]any{"format": "markdown"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "| m | DFA |")

	res, err = s.handleReport(ctx, callRequest("get_report", map[string]any{"format": "yaml"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "name: m")

	res, err = s.handleReport(ctx, callRequest("get_report", map[string]any{"format": "xml"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestMCP_RejectsHostileInput(t *testing.T) {
	s := NewServer(automata.New())
	ctx := context.Background()

	args := map[string]any{"name": "../x", "description": "{1}"}
	_, err := s.handleUpload(ctx, callRequest("upload_machine", args), args)
	assert.ErrorIs(t, err, sanitizer.ErrInvalidName)

	args = map[string]any{"name": "a,b", "description": "{1}"}
	_, err = s.handleUpload(ctx, callRequest("upload_machine", args), args)
	assert.ErrorIs(t, err, sanitizer.ErrInvalidName)

	t.Setenv(sanitizer.EnvMaxInputSize, "4")
	res, err := s.handleEvaluate(ctx, callRequest("evaluate_strings", map[string]any{"strings": "aaaaaaaa"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
