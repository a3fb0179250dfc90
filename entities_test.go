package youtrack

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestTimestamp_RoundTrip(t *testing.T) {
	ts := NewTimestamp(time.UnixMilli(1700000000000).UTC())

	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(data) != "1700000000000" {
		t.Errorf("marshaled timestamp = %s, want 1700000000000", data)
	}

	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if !back.Equal(ts.Time) {
		t.Errorf("round trip changed timestamp: %v vs %v", back.Time, ts.Time)
	}
}

func TestTimestamp_RejectsNonNumeric(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2023-11-14"`), &ts); err == nil {
		t.Error("expected error for non-numeric timestamp")
	}
}

func TestDate_MarshalsAsNoonUTC(t *testing.T) {
	d := NewDate(2024, time.March, 5)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	want := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC).UnixMilli()
	var got int64
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal millis: %v", err)
	}
	if got != want {
		t.Errorf("date millis = %d, want %d", got, want)
	}
}

func TestDate_RoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 5)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip changed date: %v vs %v", back.Time, d.Time)
	}
}

func TestIssue_WriteBodyOmitsUnsetFields(t *testing.T) {
	issue := Issue{
		Type:    TypeIssue,
		Summary: "Printer on fire",
		Project: &Project{ID: "0-0"},
	}

	data, err := json.Marshal(issue)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	want := map[string]bool{"$type": true, "summary": true, "project": true}
	for key := range body {
		if !want[key] {
			t.Errorf("unexpected key %q in write body", key)
		}
	}
	for _, key := range []string{"id", "created", "description", "customFields"} {
		if _, ok := body[key]; ok {
			t.Errorf("unset field %q should be omitted, got %v", key, body[key])
		}
	}
}

func TestIssueComment_DeletedTransmittedExplicitly(t *testing.T) {
	comment := IssueComment{ID: "4-1", Deleted: Bool(true)}

	data, err := json.Marshal(comment)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if deleted, ok := body["deleted"].(bool); !ok || !deleted {
		t.Errorf("deleted = %v, want explicit true", body["deleted"])
	}
}

func TestEntity_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		entity any
		target func() any
	}{
		{
			name: "user",
			entity: &User{
				Type: TypeUser, ID: "1-1", Name: "Alice",
				RingID: "r-1", Login: "alice", Email: "alice@example.test",
			},
			target: func() any { return &User{} },
		},
		{
			name:   "project",
			entity: &Project{Type: TypeProject, ID: "0-0", Name: "Demo", ShortName: "DEMO"},
			target: func() any { return &Project{} },
		},
		{
			name:   "tag",
			entity: &IssueTag{Type: TypeIssueTag, ID: "6-1", Name: "regression"},
			target: func() any { return &IssueTag{} },
		},
		{
			name: "attachment",
			entity: &IssueAttachment{
				Type: TypeIssueAttachment, ID: "8-1", Name: "log.txt",
				Author:   &User{ID: "1-1"},
				Created:  NewTimestamp(time.UnixMilli(1700000000000).UTC()),
				MimeType: "text/plain", URL: "/attachments/log.txt", Size: 512,
			},
			target: func() any { return &IssueAttachment{} },
		},
		{
			name: "comment",
			entity: &IssueComment{
				Type: TypeIssueComment, ID: "4-1", Text: "looks good",
				Author:  &User{ID: "1-1", Login: "alice"},
				Created: NewTimestamp(time.UnixMilli(1700000000000).UTC()),
				Deleted: Bool(false),
			},
			target: func() any { return &IssueComment{} },
		},
		{
			name: "link type",
			entity: &IssueLinkType{
				Type: TypeIssueLinkType, ID: "106-0", Name: "Depend",
				SourceToTarget: "is required for", TargetToSource: "depends on",
				Directed: true,
			},
			target: func() any { return &IssueLinkType{} },
		},
		{
			name: "issue",
			entity: &Issue{
				Type: TypeIssue, ID: "2-1", IDReadable: "DEMO-1",
				Created:  NewTimestamp(time.UnixMilli(1700000000000).UTC()),
				Project:  &Project{Type: TypeProject, ID: "0-0", ShortName: "DEMO"},
				Reporter: &User{Type: TypeUser, ID: "1-1", Login: "alice"},
				Summary:  "Printer on fire",
				Tags:     []IssueTag{{Type: TypeIssueTag, ID: "6-1", Name: "regression"}},
				CustomFields: CustomFields{
					&StateIssueCustomField{
						ID: "110-1", Name: "State",
						Value: &StateBundleElement{ID: "98-1", Name: "Open"},
					},
					&SingleUserIssueCustomField{
						ID: "110-2", Name: "Assignee",
						Value: &User{ID: "1-1", Login: "alice"},
					},
				},
			},
			target: func() any { return &Issue{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.entity)
			if err != nil {
				t.Fatalf("marshal error: %v", err)
			}
			back := tt.target()
			if err := json.Unmarshal(data, back); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}
			if !reflect.DeepEqual(back, tt.entity) {
				t.Errorf("round trip mismatch:\n got %#v\nwant %#v", back, tt.entity)
			}
		})
	}
}
