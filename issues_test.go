package youtrack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// recordingHandler captures every request and replies with the given body.
func recordingHandler(t *testing.T, reqs *[]recordedRequest, response string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Error(err)
		}
		*reqs = append(*reqs, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   body,
		})
		w.Write([]byte(response))
	})
}

func TestGetIssues_QueryParameters(t *testing.T) {
	var reqs []recordedRequest
	c, _ := newTestClient(t, recordingHandler(t, &reqs, `[{"id":"ISS-1"},{"id":"ISS-2"}]`))

	issues, err := c.GetIssues(context.Background(), &IssuesOptions{
		Query:        "project: Demo #Unresolved",
		CustomFields: []string{"State", "Priority"},
		ListOptions:  ListOptions{Skip: 20, Top: 10},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 2 || issues[0].ID != "ISS-1" || issues[1].ID != "ISS-2" {
		t.Errorf("issues = %+v", issues)
	}

	q := reqs[0].Query
	if got := q.Get("query"); got != "project: Demo #Unresolved" {
		t.Errorf("query = %q", got)
	}
	if got := q["customFields"]; len(got) != 2 || got[0] != "State" || got[1] != "Priority" {
		t.Errorf("customFields = %v", got)
	}
	if q.Get("$skip") != "20" || q.Get("$top") != "10" {
		t.Errorf("paging = $skip=%s $top=%s", q.Get("$skip"), q.Get("$top"))
	}
}

func TestGetIssues_NilOptions(t *testing.T) {
	var reqs []recordedRequest
	c, _ := newTestClient(t, recordingHandler(t, &reqs, `[]`))

	if _, err := c.GetIssues(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := reqs[0].Query
	for _, key := range []string{"query", "customFields", "$skip", "$top"} {
		if _, ok := q[key]; ok {
			t.Errorf("parameter %q should be omitted", key)
		}
	}
	if q.Get("fields") == "" {
		t.Error("fields parameter is always sent")
	}
}

func TestCreateIssue(t *testing.T) {
	var reqs []recordedRequest
	c, _ := newTestClient(t, recordingHandler(t, &reqs, `{"$type":"Issue","id":"2-42","idReadable":"DEMO-1","summary":"Crash on save"}`))

	created, err := c.CreateIssue(context.Background(), &Issue{
		Summary: "Crash on save",
		Project: &Project{ID: "0-0"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "2-42" || created.IDReadable != "DEMO-1" {
		t.Errorf("created = %+v", created)
	}

	req := reqs[0]
	if req.Method != http.MethodPost || req.Path != "/api/issues" {
		t.Errorf("request = %s %s", req.Method, req.Path)
	}

	var sent map[string]any
	if err := json.Unmarshal(req.Body, &sent); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if sent["$type"] != "Issue" {
		t.Errorf("$type = %v, want Issue", sent["$type"])
	}
	if sent["summary"] != "Crash on save" {
		t.Errorf("summary = %v", sent["summary"])
	}
	if _, ok := sent["id"]; ok {
		t.Error("create body must not carry an id")
	}
}

func TestUpdateIssue(t *testing.T) {
	var reqs []recordedRequest
	c, _ := newTestClient(t, recordingHandler(t, &reqs, `{"$type":"Issue","id":"2-42","summary":"New title"}`))

	updated, err := c.UpdateIssue(context.Background(), "2-42", &Issue{Summary: "New title"},
		&UpdateIssueOptions{MuteUpdateNotifications: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Summary != "New title" {
		t.Errorf("summary = %q", updated.Summary)
	}

	req := reqs[0]
	if req.Method != http.MethodPost || req.Path != "/api/issues/2-42" {
		t.Errorf("request = %s %s", req.Method, req.Path)
	}
	if got := req.Query.Get("muteUpdateNotifications"); got != "true" {
		t.Errorf("muteUpdateNotifications = %q, want true", got)
	}

	var sent map[string]any
	if err := json.Unmarshal(req.Body, &sent); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if len(sent) != 2 || sent["$type"] != "Issue" || sent["summary"] != "New title" {
		t.Errorf("body = %v, want only $type and summary", sent)
	}
}

func TestUpdateIssue_NoOptions(t *testing.T) {
	var reqs []recordedRequest
	c, _ := newTestClient(t, recordingHandler(t, &reqs, `{"id":"2-42"}`))

	if _, err := c.UpdateIssue(context.Background(), "2-42", &Issue{Summary: "x"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := reqs[0].Query["muteUpdateNotifications"]; ok {
		t.Error("muteUpdateNotifications should be omitted by default")
	}
}

func TestDeleteIssue(t *testing.T) {
	var reqs []recordedRequest
	c, _ := newTestClient(t, recordingHandler(t, &reqs, ""))

	if err := c.DeleteIssue(context.Background(), "2-42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := reqs[0]
	if req.Method != http.MethodDelete || req.Path != "/api/issues/2-42" {
		t.Errorf("request = %s %s", req.Method, req.Path)
	}
}
