package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/inscribe/internal/fixture"
	"github.com/matzehuels/inscribe/pkg/cache"
	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/pipeline"
	"github.com/matzehuels/inscribe/pkg/raster"
)

func newTestServer(t *testing.T, maxBody int64) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	srv := New(runner, logger, Config{MaxBodyBytes: maxBody})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, query, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/solve"+query, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, 1<<20)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var body healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Errorf("status field = %q, want ok", body.Status)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("%s = %q is not a uuid", RequestIDHeader, resp.Header.Get(RequestIDHeader))
	}
}

func TestRequestIDIsKept(t *testing.T) {
	ts := newTestServer(t, 1<<20)
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("%s = %q, want %q", RequestIDHeader, got, id)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("invalid incoming request id should be replaced")
	}
}

func TestSolve(t *testing.T) {
	tests := []struct {
		name             string
		query            string
		contentType      string
		body             string
		wantRestricted   int64
		wantUnrestricted int64
	}{
		{"text body", "", "text/plain", fixture.SampleText, 24, 0},
		{"json body", "", "application/json; charset=utf-8", `{"vertices":[[7,1],[11,1],[11,7],[9,7],[9,5],[2,5],[2,3],[7,3]]}`, 24, 0},
		{"both variants", "?variant=both&workers=2", "text/plain", fixture.NotchedText, 45, 112},
		{"unrestricted", "?variant=unrestricted", "", fixture.SampleText, 0, 50},
		{"inclusive policy", "?policy=inclusive", "text/plain", fixture.SampleText, 24, 0},
	}

	ts := newTestServer(t, 1<<20)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, tt.query, tt.contentType, tt.body)
			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				t.Fatalf("status = %d, body %s", resp.StatusCode, b)
			}

			var res pipeline.Result
			if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
				t.Fatal(err)
			}
			if got := area(res.Restricted); got != tt.wantRestricted {
				t.Errorf("restricted area = %d, want %d", got, tt.wantRestricted)
			}
			if got := area(res.Unrestricted); got != tt.wantUnrestricted {
				t.Errorf("unrestricted area = %d, want %d", got, tt.wantUnrestricted)
			}
			if res.Source != "request" {
				t.Errorf("source = %q, want request", res.Source)
			}
		})
	}
}

func area(a *pipeline.Answer) int64 {
	if a == nil {
		return 0
	}
	return a.Area
}

func TestSolveErrors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		body       string
		wantStatus int
		wantCode   errors.Code
	}{
		{"malformed line", "", "1,2\nnope\n", http.StatusBadRequest, errors.ErrCodeMalformedInput},
		{"too few vertices", "", "0,0\n1,0\n1,1\n", http.StatusBadRequest, errors.ErrCodeMalformedInput},
		{"diagonal edge", "", "0,0\n4,0\n4,4\n1,3\n", http.StatusUnprocessableEntity, errors.ErrCodeNonRectilinearEdge},
		{"bad variant", "?variant=largest", fixture.SampleText, http.StatusBadRequest, errors.ErrCodeInvalidOption},
		{"bad policy", "?policy=closed", fixture.SampleText, http.StatusBadRequest, errors.ErrCodeInvalidOption},
		{"bad workers", "?workers=many", fixture.SampleText, http.StatusBadRequest, errors.ErrCodeInvalidOption},
		{"too wide", "", "0,0\n1000000000000,0\n1000000000000,1\n0,1\n", http.StatusRequestEntityTooLarge, errors.ErrCodePolygonTooLarge},
		{"too wide for both", "?variant=both", "0,0\n1000000000000,0\n1000000000000,1\n0,1\n", http.StatusRequestEntityTooLarge, errors.ErrCodePolygonTooLarge},
	}

	ts := newTestServer(t, 1<<20)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, tt.query, "text/plain", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			var body errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", body.Error.Code, tt.wantCode)
			}
			if body.RequestID != resp.Header.Get(RequestIDHeader) {
				t.Errorf("request_id = %q, header = %q", body.RequestID, resp.Header.Get(RequestIDHeader))
			}
		})
	}
}

func TestSolveBodyTooLarge(t *testing.T) {
	ts := newTestServer(t, 16)

	resp := post(t, ts, "", "text/plain", fixture.NotchedText)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}

func TestSolveConfiguredLimits(t *testing.T) {
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	srv := New(runner, logger, Config{
		MaxBodyBytes: 1 << 20,
		Defaults: pipeline.Options{
			MaxVertices: 8,
			Limits:      raster.Limits{MaxColumns: 10},
		},
	})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"within limits", fixture.SampleText, http.StatusOK},
		{"too many vertices", fixture.NotchedText, http.StatusRequestEntityTooLarge},
		{"too many columns", "0,0\n10,0\n10,1\n0,1\n", http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, "", "text/plain", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestSolveMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, 1<<20)

	resp, err := http.Get(ts.URL + "/v1/solve")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeDegeneratePolygon, "zero area"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeNoContainedRectangle, "none"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeInvalidOption, "bad"), http.StatusBadRequest},
		{errors.Wrap(errors.ErrCodeMalformedInput, &http.MaxBytesError{Limit: 1}, "read"), http.StatusRequestEntityTooLarge},
		{errors.New(errors.ErrCodePolygonTooLarge, "wide"), http.StatusRequestEntityTooLarge},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
