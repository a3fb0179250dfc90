package youtrack

import (
	"fmt"
	"strconv"
	"time"
)

// Entity $type discriminator values as transmitted by the YouTrack API.
const (
	TypeIssue           = "Issue"
	TypeIssueComment    = "IssueComment"
	TypeIssueAttachment = "IssueAttachment"
	TypeIssueTag        = "IssueTag"
	TypeIssueLink       = "IssueLink"
	TypeIssueLinkType   = "IssueLinkType"
	TypeProject         = "Project"
	TypeUser            = "User"
	TypeUserGroup       = "UserGroup"
)

// Timestamp is a moment in time transmitted as Unix epoch milliseconds.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps a time.Time in a Timestamp.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// MarshalJSON encodes the timestamp as epoch milliseconds.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, t.UnixMilli(), 10), nil
}

// UnmarshalJSON decodes epoch milliseconds into the timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", data, err)
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

// Date is a calendar date. The API transmits dates as the epoch milliseconds
// of noon UTC on that date.
type Date struct {
	time.Time
}

// NewDate builds a Date from a year, month, and day.
func NewDate(year int, month time.Month, day int) *Date {
	return &Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON encodes the date as the epoch milliseconds of noon UTC.
func (d Date) MarshalJSON() ([]byte, error) {
	noon := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
	return strconv.AppendInt(nil, noon.UnixMilli(), 10), nil
}

// UnmarshalJSON decodes epoch milliseconds into a date, dropping the
// time-of-day part.
func (d *Date) UnmarshalJSON(data []byte) error {
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", data, err)
	}
	t := time.UnixMilli(ms).UTC()
	d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}

// Bool returns a pointer to v. Use it to set entity fields that must be
// transmitted even when false, such as IssueComment.Deleted.
func Bool(v bool) *bool {
	return &v
}

// User is a YouTrack user account.
type User struct {
	Type   string `json:"$type,omitempty"`
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	RingID string `json:"ringId,omitempty"`
	Login  string `json:"login,omitempty"`
	Email  string `json:"email,omitempty"`
}

// UserGroup is a group of YouTrack users.
type UserGroup struct {
	Type   string `json:"$type,omitempty"`
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	RingID string `json:"ringId,omitempty"`
}

// EnumBundleElement is a value of an enumeration custom field.
type EnumBundleElement struct {
	Type string `json:"$type,omitempty"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// StateBundleElement is a value of a state custom field.
type StateBundleElement struct {
	Type string `json:"$type,omitempty"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// BuildBundleElement is a value of a build custom field.
type BuildBundleElement struct {
	Type string `json:"$type,omitempty"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// VersionBundleElement is a value of a version custom field.
type VersionBundleElement struct {
	Type string `json:"$type,omitempty"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// OwnedBundleElement is a value of an owned custom field.
type OwnedBundleElement struct {
	Type string `json:"$type,omitempty"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// TextFieldValue is the value of a text custom field.
type TextFieldValue struct {
	Type         string `json:"$type,omitempty"`
	ID           string `json:"id,omitempty"`
	Text         string `json:"text,omitempty"`
	MarkdownText string `json:"markdownText,omitempty"`
}

// PeriodValue is the value of a period custom field.
type PeriodValue struct {
	Type         string `json:"$type,omitempty"`
	ID           string `json:"id,omitempty"`
	Minutes      int    `json:"minutes,omitempty"`
	Presentation string `json:"presentation,omitempty"`
}

// Project is a YouTrack project.
type Project struct {
	Type      string `json:"$type,omitempty"`
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	ShortName string `json:"shortName,omitempty"`
}

// IssueTag is a tag that can be attached to issues.
type IssueTag struct {
	Type string `json:"$type,omitempty"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// IssueAttachment is a file attached to an issue or a comment. Attachments
// are created only through the multipart upload operations; the server
// assigns the identity and the download URL.
type IssueAttachment struct {
	Type          string     `json:"$type,omitempty"`
	ID            string     `json:"id,omitempty"`
	Name          string     `json:"name,omitempty"`
	Author        *User      `json:"author,omitempty"`
	Created       *Timestamp `json:"created,omitempty"`
	Updated       *Timestamp `json:"updated,omitempty"`
	MimeType      string     `json:"mimeType,omitempty"`
	URL           string     `json:"url,omitempty"`
	Size          int64      `json:"size,omitempty"`
	Base64Content string     `json:"base64Content,omitempty"`
}

// IssueComment is a comment on an issue. Deleted doubles as the hide flag:
// updating a comment with Deleted set to true hides it.
type IssueComment struct {
	Type        string            `json:"$type,omitempty"`
	ID          string            `json:"id,omitempty"`
	Text        string            `json:"text,omitempty"`
	Created     *Timestamp        `json:"created,omitempty"`
	Updated     *Timestamp        `json:"updated,omitempty"`
	Author      *User             `json:"author,omitempty"`
	Attachments []IssueAttachment `json:"attachments,omitempty"`
	Deleted     *bool             `json:"deleted,omitempty"`
}

// Issue is a YouTrack issue. ID is assigned by the server; leave it empty
// on issues destined for creation.
type Issue struct {
	Type         string            `json:"$type,omitempty"`
	ID           string            `json:"id,omitempty"`
	IDReadable   string            `json:"idReadable,omitempty"`
	Created      *Timestamp        `json:"created,omitempty"`
	Updated      *Timestamp        `json:"updated,omitempty"`
	Resolved     *Timestamp        `json:"resolved,omitempty"`
	Project      *Project          `json:"project,omitempty"`
	Reporter     *User             `json:"reporter,omitempty"`
	Updater      *User             `json:"updater,omitempty"`
	Summary      string            `json:"summary,omitempty"`
	Description  string            `json:"description,omitempty"`
	Tags         []IssueTag        `json:"tags,omitempty"`
	CustomFields CustomFields      `json:"customFields,omitempty"`
	Attachments  []IssueAttachment `json:"attachments,omitempty"`
	Comments     []IssueComment    `json:"comments,omitempty"`
}

// IssueLinkDirection selects which end of a directed link type an issue
// is attached to.
type IssueLinkDirection string

const (
	// LinkOutward attaches the source issue to the outward end of the link.
	LinkOutward IssueLinkDirection = "s"
	// LinkInward attaches the source issue to the inward end of the link.
	LinkInward IssueLinkDirection = "t"
	// LinkBoth is used with undirected link types.
	LinkBoth IssueLinkDirection = ""
)

// IssueLinkType describes a kind of relation between issues.
type IssueLinkType struct {
	Type           string `json:"$type,omitempty"`
	ID             string `json:"id,omitempty"`
	Name           string `json:"name,omitempty"`
	LocalizedName  string `json:"localizedName,omitempty"`
	SourceToTarget string `json:"sourceToTarget,omitempty"`
	TargetToSource string `json:"targetToSource,omitempty"`
	Directed       bool   `json:"directed,omitempty"`
	Aggregation    bool   `json:"aggregation,omitempty"`
	ReadOnly       bool   `json:"readOnly,omitempty"`
}

// IssueLink is a set of issues related to an issue through one link type.
type IssueLink struct {
	Type      string         `json:"$type,omitempty"`
	ID        string         `json:"id,omitempty"`
	Direction string         `json:"direction,omitempty"`
	LinkType  *IssueLinkType `json:"linkType,omitempty"`
	Issues    []Issue        `json:"issues,omitempty"`
}
