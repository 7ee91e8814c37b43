package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/outlet/internal/cli"
	"github.com/aretw0/outlet/internal/config"
	"github.com/aretw0/outlet/internal/logging"
	"github.com/aretw0/outlet/internal/scenario"
	"github.com/aretw0/outlet/pkg/adapters/redis"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/aretw0/outlet/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openOutlet(ctx context.Context, s *session.Session) error {
	info, err := s.CreateOutlet(ctx, "Logs", nil)
	if err != nil {
		return err
	}
	_, err = s.Do(ctx, info.ID, domain.ActionOpen, domain.ActionArgs{})
	return err
}

func TestNewStack_Memory(t *testing.T) {
	st, err := cli.NewStack(config.Config{}, logging.NewNop())
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, st.Sessions.WithLock(ctx, "s1", openOutlet))

	events, err := st.Journal.Recent(ctx, "s1", 10)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, domain.EventOpen, events[0].Type)

	families, err := st.Registry.Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() == "outlet_operations_total" {
			found = true
		}
	}
	assert.True(t, found, "operations counter is registered")
}

func TestNewStack_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Config{Redis: config.RedisConfig{
		Addr:    mr.Addr(),
		Prefix:  "outlet:",
		MaxLen:  100,
		LockTTL: time.Second,
	}}

	st, err := cli.NewStack(cfg, logging.NewNop())
	require.NoError(t, err)
	defer st.Close()

	_, ok := st.Journal.(*redis.Journal)
	require.True(t, ok, "redis journal when an address is set")

	ctx := context.Background()
	require.NoError(t, st.Sessions.WithLock(ctx, "s1", openOutlet))
	assert.True(t, mr.Exists("outlet:journal:s1"))
	assert.False(t, mr.Exists("outlet:lock:s1"), "lock released")

	sessions, err := st.Journal.Sessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, sessions)
}

func TestRunScenario_Text(t *testing.T) {
	var buf bytes.Buffer
	report, err := cli.RunScenario(context.Background(), &buf, "../../examples/scenarios/cycle.yaml", cli.RunOptions{})
	require.NoError(t, err)
	assert.True(t, report.Passed())

	out := buf.String()
	assert.Contains(t, out, "Scenario: dock-center-cycle")
	assert.Contains(t, out, "step 1: open output -> bottom")
	assert.Contains(t, out, "step 2: relocate output -> center")
	assert.Contains(t, out, "| Container | Pane | Items |")
	assert.Contains(t, out, "output", "items are shown by their script name")
}

func TestRunScenario_JSON(t *testing.T) {
	var buf bytes.Buffer
	_, err := cli.RunScenario(context.Background(), &buf, "../../examples/scenarios/cycle.yaml", cli.RunOptions{JSON: true})
	require.NoError(t, err)

	var report scenario.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, "dock-center-cycle", report.Name)
	require.Len(t, report.Steps, 3)
	assert.Equal(t, domain.LocationBottom, report.Steps[2].Outlet.Location)
}

func TestRunScenario_Mermaid(t *testing.T) {
	var buf bytes.Buffer
	_, err := cli.RunScenario(context.Background(), &buf, "../../examples/scenarios/cycle.yaml", cli.RunOptions{Mermaid: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "graph LR\n"))
	assert.Contains(t, buf.String(), "classDef outlet")
}

func TestRunScenario_Failed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: bad
outlets:
  - name: out
steps:
  - outlet: out
    action: open
    expect:
      location: left
`), 0o644))

	var buf bytes.Buffer
	report, err := cli.RunScenario(context.Background(), &buf, path, cli.RunOptions{})
	assert.ErrorIs(t, err, cli.ErrScenarioFailed)
	assert.Len(t, report.Failures(), 1)
	assert.Contains(t, buf.String(), `location: want "left", got "bottom"`)
}

func TestRunScenario_MissingFile(t *testing.T) {
	_, err := cli.RunScenario(context.Background(), &bytes.Buffer{}, "does-not-exist.yaml", cli.RunOptions{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestServeHTTP_StopsOnCancel(t *testing.T) {
	st, err := cli.NewStack(config.Config{}, logging.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- cli.ServeHTTP(ctx, st, config.Config{HTTP: config.HTTPConfig{Addr: "127.0.0.1:0"}}, logging.NewNop())
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeMCP_UnknownTransport(t *testing.T) {
	st, err := cli.NewStack(config.Config{}, logging.NewNop())
	require.NoError(t, err)

	err = cli.ServeMCP(context.Background(), st, config.Config{MCP: config.MCPConfig{Transport: "carrier-pigeon"}}, logging.NewNop())
	assert.ErrorContains(t, err, "unknown transport")
}
