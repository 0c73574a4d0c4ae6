package gitlab

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeGitLab serves the subset of the v4 API the client uses
type fakeGitLab struct {
	t *testing.T

	mu       sync.Mutex
	projects map[string]int
	mrs      map[int][]MergeRequest
	listFail map[int]bool
	calls    map[string]int
}

func newFakeGitLab(t *testing.T) (*fakeGitLab, *Client) {
	f := &fakeGitLab{
		t:        t,
		projects: map[string]int{},
		mrs:      map[int][]MergeRequest{},
		listFail: map[int]bool{},
		calls:    map[string]int{},
	}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, "test-token", 5*time.Second)
	require.NoError(t, err)
	return f, c
}

func (f *fakeGitLab) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeGitLab) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("PRIVATE-TOKEN") != "test-token" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"401 Unauthorized"}`))
		return
	}

	tail, ok := strings.CutPrefix(r.URL.EscapedPath(), "/api/v4/projects/")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// GET /projects/:path
	if !strings.Contains(tail, "/") {
		path, _ := url.PathUnescape(tail)
		f.calls["lookup:"+path]++
		id, ok := f.projects[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"404 Project Not Found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(Project{ID: id, PathWithNamespace: path})
		return
	}

	// GET /projects/:id/merge_requests
	idStr, suffix, _ := strings.Cut(tail, "/")
	id, _ := strconv.Atoi(idStr)
	if suffix == "merge_requests" && r.Method == http.MethodGet {
		f.calls["list:"+idStr]++
		if r.URL.Query().Get("state") != "opened" || f.listFail[id] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		mrs := f.mrs[id]
		if mrs == nil {
			mrs = []MergeRequest{}
		}
		_ = json.NewEncoder(w).Encode(mrs)
		return
	}

	w.WriteHeader(http.StatusNotFound)
}
