package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/rollcall-cli/internal/config"
	"github.com/sells-group/rollcall-cli/internal/model"
	"github.com/sells-group/rollcall-cli/internal/store"
)

const testRosterJSON = `{
  "business_categories": {
    "branch_managers": {
      "branch_manager_map": {
        "城东支局": ["张三", "李四"]
      }
    }
  }
}`

const testCategoriesJSON = `{
  "business_categories": {
    "lock_storage": {"keywords": ["锁存"]},
    "current_month_recovery": {"keywords": ["复机"], "exclude_keywords": ["高危", "上月"]}
  }
}`

const testChannelsJSON = `{
  "branch_channel_map": {
    "城东支局": [
      {"name": "东街营业厅", "keywords": ["东街厅"]}
    ]
  },
  "points_regex": "积分\\s*(\\d+)"
}`

func setupServeTest(t *testing.T) store.Store {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "managers.json"), []byte(testRosterJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.json"), []byte(testCategoriesJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "channels.json"), []byte(testChannelsJSON), 0o644))

	cfg = &config.Config{
		Registry: config.RegistryConfig{
			Dir:          dir,
			RosterFile:   "managers.json",
			CategoryFile: "categories.json",
			ChannelFile:  "channels.json",
		},
		Report: config.ReportConfig{
			ManagerPraiseTotal:  3,
			ChannelPraisePoints: 100,
		},
	}

	st, err := store.NewSQLite(filepath.Join(dir, "rollcall.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestReportHandler_Manager(t *testing.T) {
	st := setupServeTest(t)
	handler := reportHandler(st, model.ReportKindManager)

	body := `{"text": "城东支局 张三 锁存2户\n城东支局 李四 复机1户\n无关内容 1户\n"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/manager", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RunID  string           `json:"run_id"`
		Result *model.RunResult `json:"result"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.RunID)
	require.NotNil(t, resp.Result)
	assert.Equal(t, 3, resp.Result.LineCount)
	assert.Len(t, resp.Result.Exceptions, 1)
	// 2 managers + branch subtotal + grand total
	assert.Len(t, resp.Result.ManagerRows, 4)

	run, err := st.GetRun(context.Background(), resp.RunID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, run.Status)
}

func TestReportHandler_Channel(t *testing.T) {
	st := setupServeTest(t)
	handler := reportHandler(st, model.ReportKindChannel)

	body := `{"text": "1、东街厅 积分30\n"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/channel", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result *model.RunResult `json:"result"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Result)
	// 1 channel + branch subtotal + grand total
	require.Len(t, resp.Result.ChannelRows, 3)
	assert.Equal(t, 30, resp.Result.ChannelRows[0].Points)
}

func TestReportHandler_BadRequest(t *testing.T) {
	st := setupServeTest(t)
	handler := reportHandler(st, model.ReportKindManager)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/manager", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/reports/manager", strings.NewReader(`{"text": ""}`))
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
