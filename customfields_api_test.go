package youtrack

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestGetIssueCustomFields(t *testing.T) {
	var reqs []recordedRequest
	c, _ := newTestClient(t, recordingHandler(t, &reqs,
		`[{"$type":"StateIssueCustomField","id":"110-1","name":"State","value":{"$type":"StateBundleElement","id":"111-2","name":"Open"}},`+
			`{"$type":"SimpleIssueCustomField","id":"110-2","name":"Story points","value":5}]`))

	fields, err := c.GetIssueCustomFields(context.Background(), "DEMO-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}

	state, ok := fields[0].(*StateIssueCustomField)
	if !ok {
		t.Fatalf("fields[0] = %T, want *StateIssueCustomField", fields[0])
	}
	if state.Name != "State" || state.Value == nil || state.Value.Name != "Open" {
		t.Errorf("state field = %+v", state)
	}

	simple, ok := fields[1].(*SimpleIssueCustomField)
	if !ok {
		t.Fatalf("fields[1] = %T, want *SimpleIssueCustomField", fields[1])
	}
	if simple.Value != float64(5) {
		t.Errorf("simple value = %v", simple.Value)
	}

	if reqs[0].Path != "/api/issues/DEMO-1/customFields" {
		t.Errorf("path = %s", reqs[0].Path)
	}
	if reqs[0].Query.Get("fields") != selector(customFieldSchema) {
		t.Errorf("fields = %q", reqs[0].Query.Get("fields"))
	}
}

func TestUpdateIssueCustomField(t *testing.T) {
	var reqs []recordedRequest
	c, _ := newTestClient(t, recordingHandler(t, &reqs,
		`{"$type":"StateIssueCustomField","id":"110-1","name":"State","value":{"$type":"StateBundleElement","id":"111-3","name":"Fixed"}}`))

	updated, err := c.UpdateIssueCustomField(context.Background(), "DEMO-1", "110-1", &StateIssueCustomField{
		Value: &StateBundleElement{Name: "Fixed"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, ok := updated.(*StateIssueCustomField)
	if !ok {
		t.Fatalf("updated = %T, want *StateIssueCustomField", updated)
	}
	if state.Value == nil || state.Value.ID != "111-3" {
		t.Errorf("updated field = %+v", state)
	}

	req := reqs[0]
	if req.Method != http.MethodPost || req.Path != "/api/issues/DEMO-1/customFields/110-1" {
		t.Errorf("request = %s %s", req.Method, req.Path)
	}
	var sent map[string]any
	if err := json.Unmarshal(req.Body, &sent); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if sent["$type"] != "StateIssueCustomField" {
		t.Errorf("$type = %v", sent["$type"])
	}
	value, ok := sent["value"].(map[string]any)
	if !ok || value["name"] != "Fixed" {
		t.Errorf("value = %v", sent["value"])
	}
}

func TestUpdateIssueCustomField_UnknownVariantInResponse(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"$type":"MysteryIssueCustomField","id":"110-9"}`))
	}))

	_, err := c.UpdateIssueCustomField(context.Background(), "DEMO-1", "110-9", &SimpleIssueCustomField{})
	if !IsClientError(err) {
		t.Fatalf("IsClientError = false for %v", err)
	}
}
