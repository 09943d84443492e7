package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cellmachine/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(nil, store.New(t.TempDir()), nil)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestLastBeforeGenerateIs404(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/last.gif", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGenerateThenFetchLast(t *testing.T) {
	s := newTestServer(t)
	body := `{"steps":2,"width":6,"height":6,"scale":2,"seed_cells":[{"x":1,"y":2},{"x":2,"y":2},{"x":3,"y":2}],"caption":"hello"}`
	rec := do(t, s, http.MethodPost, "/generate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if resp.FileName != "B3_S23_2s.gif" || resp.StepsSimulated != 2 || resp.FinalAlive != 3 {
		t.Fatalf("response = %+v", resp)
	}
	if !strings.Contains(resp.Summary, "Simulated 2 generations") {
		t.Fatalf("summary = %q", resp.Summary)
	}
	if resp.Message != resp.Summary+"\n\nhello" {
		t.Fatalf("message = %q", resp.Message)
	}
	if resp.SeedCellCount == nil || *resp.SeedCellCount != 3 || resp.EffectiveDensity != nil {
		t.Fatalf("seed fields = %v %v", resp.SeedCellCount, resp.EffectiveDensity)
	}

	last := do(t, s, http.MethodGet, "/last.gif", "")
	if last.Code != http.StatusOK {
		t.Fatalf("last status = %d", last.Code)
	}
	if ct := last.Header().Get("Content-Type"); ct != "image/gif" {
		t.Fatalf("content type = %q", ct)
	}
	if !bytes.HasPrefix(last.Body.Bytes(), []byte("GIF89a")) {
		t.Fatal("last.gif is not a GIF")
	}
}

func TestGenerateAppliesDefaults(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/generate", `{"steps":1,"width":10,"height":10,"scale":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var resp Response
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Rule != "B3/S23" || !resp.Wrap || resp.DelayCS != 6 {
		t.Fatalf("response = %+v", resp)
	}
	if resp.EffectiveDensity == nil || *resp.EffectiveDensity != 0.15 {
		t.Fatalf("effective density = %v", resp.EffectiveDensity)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	s := newTestServer(t)
	cases := []string{
		`{"rule":"B3/S2x"}`,
		`{"init_mask":"01"}`,
		`{"width":4,"height":4,"seed_cells":[{"x":9,"y":0}]}`,
		`{"scale":1000}`,
		`not json`,
	}
	for _, body := range cases {
		rec := do(t, s, http.MethodPost, "/generate", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rec.Code)
		}
		var e map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil || e["error"] == "" {
			t.Fatalf("body %s: error payload = %s", body, rec.Body)
		}
	}
	if rec := do(t, s, http.MethodGet, "/last.gif", ""); rec.Code != http.StatusNotFound {
		t.Fatal("failed runs must not store output")
	}
}

func TestGenerateRequiresPost(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/generate", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
