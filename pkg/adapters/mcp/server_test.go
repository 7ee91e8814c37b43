package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(session.NewManager())
}

func TestTools_Scenario(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	doc, err := s.handleAddItem(ctx, req, AddItemArgs{Title: "doc"})
	require.NoError(t, err)
	assert.Equal(t, domain.LocationCenter, doc.Location)

	created, err := s.handleCreateOutlet(ctx, req, CreateOutletArgs{
		Title:   "Build output",
		Options: map[string]any{"allowedLocations": []any{"center", "bottom", "right"}},
	})
	require.NoError(t, err)

	info, err := s.handleOutletAction(ctx, req, OutletActionArgs{OutletID: created.ID, Action: "open"})
	require.NoError(t, err)
	assert.Equal(t, domain.LocationBottom, info.Location)

	info, err = s.handleOutletAction(ctx, req, OutletActionArgs{OutletID: created.ID, Action: "relocate", Backward: true})
	require.NoError(t, err)
	assert.Equal(t, domain.LocationCenter, info.Location)

	info, err = s.handleOutletAction(ctx, req, OutletActionArgs{OutletID: created.ID, Action: "link", Target: doc.ID})
	require.NoError(t, err)
	assert.Equal(t, doc.ID, info.LinkedItemID)

	list, err := s.handleListOutlets(ctx, req, SessionArgs{})
	require.NoError(t, err)
	require.Len(t, list.Outlets, 1)

	layout, err := s.handleGetLayout(ctx, req, SessionArgs{Session: DefaultSession})
	require.NoError(t, err)
	center, ok := layout.Container(domain.LocationCenter)
	require.True(t, ok)
	assert.Len(t, center.Panes, 2)

	list, err = s.handleDeleteOutlet(ctx, req, OutletActionArgs{OutletID: created.ID})
	require.NoError(t, err)
	assert.Empty(t, list.Outlets)
}

func TestTools_Errors(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	_, err := s.handleCreateOutlet(ctx, req, CreateOutletArgs{Options: map[string]any{"split": "diagonal"}})
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = s.handleOutletAction(ctx, req, OutletActionArgs{OutletID: "x", Action: "explode"})
	assert.ErrorIs(t, err, domain.ErrUnknownAction)

	_, err = s.handleOutletAction(ctx, req, OutletActionArgs{OutletID: "x", Action: "show"})
	assert.ErrorIs(t, err, domain.ErrOutletNotFound)
}

func TestStructuredHandler_ReportsToolErrors(t *testing.T) {
	s := newTestServer()
	handler := mcp.NewStructuredToolHandler(s.handleOutletAction)

	req := mcp.CallToolRequest{}
	req.Params.Name = "outlet_action"
	req.Params.Arguments = map[string]any{"outlet_id": "missing", "action": "hide"}

	res, err := handler(context.Background(), req)
	require.NoError(t, err, "tool failures are reported in the result")
	assert.True(t, res.IsError)
}

func TestStructuredHandler_BindsArguments(t *testing.T) {
	s := newTestServer()
	handler := mcp.NewStructuredToolHandler(s.handleCreateOutlet)

	req := mcp.CallToolRequest{}
	req.Params.Name = "create_outlet"
	req.Params.Arguments = map[string]any{
		"session": "s2",
		"title":   "Preview",
		"options": map[string]any{"defaultLocation": "center"},
	}

	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var info session.OutletInfo
	require.NoError(t, json.Unmarshal(data, &info))
	assert.Equal(t, "Preview", info.Title)
	assert.Equal(t, domain.LocationCenter, info.DefaultLocation)
	assert.Equal(t, []string{"s2"}, s.sessions.List())
}

func TestReadLayoutResource(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()
	_, err := s.handleAddItem(ctx, mcp.CallToolRequest{}, AddItemArgs{Session: "s1", Title: "doc"})
	require.NoError(t, err)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "outlet://sessions/s1/layout"
	contents, err := s.readLayout(ctx, req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	var layout domain.Layout
	require.NoError(t, json.Unmarshal([]byte(text.Text), &layout))
	center, ok := layout.Container(domain.LocationCenter)
	require.True(t, ok)
	assert.Equal(t, "doc", center.Panes[0].Items[0].Title)

	req.Params.URI = "outlet://sessions/missing/layout"
	_, err = s.readLayout(ctx, req)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionFromURI(t *testing.T) {
	assert.Equal(t, "abc", sessionFromURI("outlet://sessions/abc/layout"))
	assert.Equal(t, "", sessionFromURI("outlet://sessions/"))
}
