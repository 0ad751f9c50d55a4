package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dsgeops/pilotdeck/pkg/pilot"
)

// dataSlice returns the response data as a JSON array.
func dataSlice(t *testing.T, resp *APIResponse) []interface{} {
	t.Helper()

	data, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("Expected data to be an array, got %T", resp.Data)
	}
	return data
}

// newProposalRouter builds a router with the proposal routes on a
// store whose project start is pinned so task dates are deterministic.
func newProposalRouter() *Router {
	a := pilot.Default()
	a.ProjectStart = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	router := NewRouter()
	NewProposalHandler(pilot.NewStore(a)).RegisterRoutes(router)
	return router
}

// getJSON issues a GET and fails the test on a non-200 status.
func getJSON(t *testing.T, router *Router, path string) *APIResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: expected status 200, got %d: %s", path, rec.Code, rec.Body.String())
	}
	return parseAPIResponse(t, rec.Body)
}

// -----------------------------------------------------------------------------
// ProposalHandler Tests
// -----------------------------------------------------------------------------

func TestProposalHandler_GetSections(t *testing.T) {
	router := newProposalRouter()
	resp := getJSON(t, router, "/api/proposal/sections")

	data := dataMap(t, resp)
	wantTitle := "Circular Strap Diversion Pilot • Pilot Proposal (4-floor facility (pilot))"
	if data["title"] != wantTitle {
		t.Errorf("Expected title %q, got %v", wantTitle, data["title"])
	}
	if data["watermark_text"] != "property of DSGE, Region V fouo" {
		t.Errorf("Expected default watermark, got %v", data["watermark_text"])
	}

	sections, ok := data["sections"].([]interface{})
	if !ok {
		t.Fatal("Expected sections array in response")
	}
	if len(sections) != 6 {
		t.Fatalf("Expected 6 sections, got %d", len(sections))
	}

	first, _ := sections[0].(map[string]interface{})
	if first["heading"] != "Executive Summary" {
		t.Errorf("Expected Executive Summary first, got %v", first["heading"])
	}
	last, _ := sections[5].(map[string]interface{})
	if last["heading"] != "Abbreviations" {
		t.Errorf("Expected Abbreviations last, got %v", last["heading"])
	}
}

func TestProposalHandler_GetWBS(t *testing.T) {
	router := newProposalRouter()
	resp := getJSON(t, router, "/api/proposal/wbs")

	groups := dataSlice(t, resp)
	if len(groups) != 6 {
		t.Fatalf("Expected 6 work packages, got %d", len(groups))
	}

	first, _ := groups[0].(map[string]interface{})
	if first["name"] != "1.0 Program Management" {
		t.Errorf("Expected 1.0 Program Management first, got %v", first["name"])
	}

	items, ok := first["items"].([]interface{})
	if !ok {
		t.Fatal("Expected items array in work package")
	}
	if len(items) != 4 {
		t.Errorf("Expected 4 items in first package, got %d", len(items))
	}

	last, _ := groups[5].(map[string]interface{})
	if last["name"] != "6.0 CONTROL" {
		t.Errorf("Expected 6.0 CONTROL last, got %v", last["name"])
	}
}

func TestProposalHandler_GetTimeline(t *testing.T) {
	router := newProposalRouter()
	resp := getJSON(t, router, "/api/proposal/timeline")

	tasks := dataSlice(t, resp)
	if len(tasks) != 7 {
		t.Fatalf("Expected 7 timeline tasks, got %d", len(tasks))
	}

	first, _ := tasks[0].(map[string]interface{})
	if first["task"] != "DEFINE • Charter + CTQs + SIPOC" {
		t.Errorf("Expected charter task first, got %v", first["task"])
	}
	if first["start"] != "2025-06-02T00:00:00Z" {
		t.Errorf("Expected start at project start, got %v", first["start"])
	}
	if first["finish"] != "2025-06-16T00:00:00Z" {
		t.Errorf("Expected finish two weeks in, got %v", first["finish"])
	}

	last, _ := tasks[6].(map[string]interface{})
	if last["phase"] != "CONTROL" {
		t.Errorf("Expected CONTROL phase last, got %v", last["phase"])
	}
	if last["start"] != "2025-08-25T00:00:00Z" {
		t.Errorf("Expected control start at week 12, got %v", last["start"])
	}
}

func TestProposalHandler_GetCTQ(t *testing.T) {
	router := newProposalRouter()
	resp := getJSON(t, router, "/api/proposal/ctq")

	data := dataMap(t, resp)

	rows, ok := data["rows"].([]interface{})
	if !ok {
		t.Fatal("Expected rows array in response")
	}
	if len(rows) != 5 {
		t.Errorf("Expected 5 CTQ rows, got %d", len(rows))
	}

	first, _ := rows[0].(map[string]interface{})
	if first["name"] != "Contamination %" {
		t.Errorf("Expected contamination row first, got %v", first["name"])
	}
	if first["target"] != "≤ 12.0%" {
		t.Errorf("Expected target from default assumptions, got %v", first["target"])
	}

	success, ok := data["success_criteria"].([]interface{})
	if !ok || len(success) != 5 {
		t.Errorf("Expected 5 success criteria, got %v", data["success_criteria"])
	}
	exit, ok := data["exit_criteria"].([]interface{})
	if !ok || len(exit) != 4 {
		t.Errorf("Expected 4 exit criteria, got %v", data["exit_criteria"])
	}
}
