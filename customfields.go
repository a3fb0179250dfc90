package youtrack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Custom field $type discriminator values.
const (
	TypeSingleEnumIssueCustomField    = "SingleEnumIssueCustomField"
	TypeMultiEnumIssueCustomField     = "MultiEnumIssueCustomField"
	TypeSingleBuildIssueCustomField   = "SingleBuildIssueCustomField"
	TypeMultiBuildIssueCustomField    = "MultiBuildIssueCustomField"
	TypeStateIssueCustomField         = "StateIssueCustomField"
	TypeSingleVersionIssueCustomField = "SingleVersionIssueCustomField"
	TypeMultiVersionIssueCustomField  = "MultiVersionIssueCustomField"
	TypeSingleOwnedIssueCustomField   = "SingleOwnedIssueCustomField"
	TypeMultiOwnedIssueCustomField    = "MultiOwnedIssueCustomField"
	TypeSingleUserIssueCustomField    = "SingleUserIssueCustomField"
	TypeMultiUserIssueCustomField     = "MultiUserIssueCustomField"
	TypeSingleGroupIssueCustomField   = "SingleGroupIssueCustomField"
	TypeMultiGroupIssueCustomField    = "MultiGroupIssueCustomField"
	TypeSimpleIssueCustomField        = "SimpleIssueCustomField"
	TypeDateIssueCustomField          = "DateIssueCustomField"
	TypePeriodIssueCustomField        = "PeriodIssueCustomField"
	TypeTextIssueCustomField          = "TextIssueCustomField"
)

// IssueCustomField is implemented by all custom field variants. The concrete
// type of a parsed field is selected by the $type discriminator in the JSON,
// not by static knowledge of which field belongs to which issue.
type IssueCustomField interface {
	// CustomFieldType returns the $type discriminator of the variant.
	CustomFieldType() string
}

// SingleEnumIssueCustomField holds one enumeration value.
type SingleEnumIssueCustomField struct {
	ID    string             `json:"id,omitempty"`
	Name  string             `json:"name,omitempty"`
	Value *EnumBundleElement `json:"value,omitempty"`
}

// MultiEnumIssueCustomField holds a set of enumeration values.
type MultiEnumIssueCustomField struct {
	ID    string              `json:"id,omitempty"`
	Name  string              `json:"name,omitempty"`
	Value []EnumBundleElement `json:"value,omitempty"`
}

// SingleBuildIssueCustomField holds one build value.
type SingleBuildIssueCustomField struct {
	ID    string              `json:"id,omitempty"`
	Name  string              `json:"name,omitempty"`
	Value *BuildBundleElement `json:"value,omitempty"`
}

// MultiBuildIssueCustomField holds a set of build values.
type MultiBuildIssueCustomField struct {
	ID    string               `json:"id,omitempty"`
	Name  string               `json:"name,omitempty"`
	Value []BuildBundleElement `json:"value,omitempty"`
}

// StateIssueCustomField holds the issue state.
type StateIssueCustomField struct {
	ID    string              `json:"id,omitempty"`
	Name  string              `json:"name,omitempty"`
	Value *StateBundleElement `json:"value,omitempty"`
}

// SingleVersionIssueCustomField holds one version value.
type SingleVersionIssueCustomField struct {
	ID    string                `json:"id,omitempty"`
	Name  string                `json:"name,omitempty"`
	Value *VersionBundleElement `json:"value,omitempty"`
}

// MultiVersionIssueCustomField holds a set of version values.
type MultiVersionIssueCustomField struct {
	ID    string                 `json:"id,omitempty"`
	Name  string                 `json:"name,omitempty"`
	Value []VersionBundleElement `json:"value,omitempty"`
}

// SingleOwnedIssueCustomField holds one owned value.
type SingleOwnedIssueCustomField struct {
	ID    string              `json:"id,omitempty"`
	Name  string              `json:"name,omitempty"`
	Value *OwnedBundleElement `json:"value,omitempty"`
}

// MultiOwnedIssueCustomField holds a set of owned values.
type MultiOwnedIssueCustomField struct {
	ID    string               `json:"id,omitempty"`
	Name  string               `json:"name,omitempty"`
	Value []OwnedBundleElement `json:"value,omitempty"`
}

// SingleUserIssueCustomField holds one user value.
type SingleUserIssueCustomField struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Value *User  `json:"value,omitempty"`
}

// MultiUserIssueCustomField holds a set of user values.
type MultiUserIssueCustomField struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Value []User `json:"value,omitempty"`
}

// SingleGroupIssueCustomField holds one user group value.
type SingleGroupIssueCustomField struct {
	ID    string     `json:"id,omitempty"`
	Name  string     `json:"name,omitempty"`
	Value *UserGroup `json:"value,omitempty"`
}

// MultiGroupIssueCustomField holds a set of user group values.
type MultiGroupIssueCustomField struct {
	ID    string      `json:"id,omitempty"`
	Name  string      `json:"name,omitempty"`
	Value []UserGroup `json:"value,omitempty"`
}

// SimpleIssueCustomField holds a primitive value (string, number, or
// millisecond timestamp), transmitted without further structure.
type SimpleIssueCustomField struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Value any    `json:"value,omitempty"`
}

// DateIssueCustomField holds a calendar date.
type DateIssueCustomField struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Value *Date  `json:"value,omitempty"`
}

// PeriodIssueCustomField holds a work period.
type PeriodIssueCustomField struct {
	ID    string       `json:"id,omitempty"`
	Name  string       `json:"name,omitempty"`
	Value *PeriodValue `json:"value,omitempty"`
}

// TextIssueCustomField holds a block of text.
type TextIssueCustomField struct {
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Value *TextFieldValue `json:"value,omitempty"`
}

func (f SingleEnumIssueCustomField) CustomFieldType() string {
	return TypeSingleEnumIssueCustomField
}

func (f MultiEnumIssueCustomField) CustomFieldType() string {
	return TypeMultiEnumIssueCustomField
}

func (f SingleBuildIssueCustomField) CustomFieldType() string {
	return TypeSingleBuildIssueCustomField
}

func (f MultiBuildIssueCustomField) CustomFieldType() string {
	return TypeMultiBuildIssueCustomField
}

func (f StateIssueCustomField) CustomFieldType() string {
	return TypeStateIssueCustomField
}

func (f SingleVersionIssueCustomField) CustomFieldType() string {
	return TypeSingleVersionIssueCustomField
}

func (f MultiVersionIssueCustomField) CustomFieldType() string {
	return TypeMultiVersionIssueCustomField
}

func (f SingleOwnedIssueCustomField) CustomFieldType() string {
	return TypeSingleOwnedIssueCustomField
}

func (f MultiOwnedIssueCustomField) CustomFieldType() string {
	return TypeMultiOwnedIssueCustomField
}

func (f SingleUserIssueCustomField) CustomFieldType() string {
	return TypeSingleUserIssueCustomField
}

func (f MultiUserIssueCustomField) CustomFieldType() string {
	return TypeMultiUserIssueCustomField
}

func (f SingleGroupIssueCustomField) CustomFieldType() string {
	return TypeSingleGroupIssueCustomField
}

func (f MultiGroupIssueCustomField) CustomFieldType() string {
	return TypeMultiGroupIssueCustomField
}

func (f SimpleIssueCustomField) CustomFieldType() string {
	return TypeSimpleIssueCustomField
}

func (f DateIssueCustomField) CustomFieldType() string {
	return TypeDateIssueCustomField
}

func (f PeriodIssueCustomField) CustomFieldType() string {
	return TypePeriodIssueCustomField
}

func (f TextIssueCustomField) CustomFieldType() string {
	return TypeTextIssueCustomField
}

func (f SingleEnumIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias SingleEnumIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f MultiEnumIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias MultiEnumIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f SingleBuildIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias SingleBuildIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f MultiBuildIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias MultiBuildIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f StateIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias StateIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f SingleVersionIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias SingleVersionIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f MultiVersionIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias MultiVersionIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f SingleOwnedIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias SingleOwnedIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f MultiOwnedIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias MultiOwnedIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f SingleUserIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias SingleUserIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f MultiUserIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias MultiUserIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f SingleGroupIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias SingleGroupIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f MultiGroupIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias MultiGroupIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f SimpleIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias SimpleIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f DateIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias DateIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f PeriodIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias PeriodIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

func (f TextIssueCustomField) MarshalJSON() ([]byte, error) {
	type alias TextIssueCustomField
	return marshalTagged(f.CustomFieldType(), alias(f))
}

// marshalTagged encodes a custom field variant with its $type discriminator.
func marshalTagged(tag string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	head := []byte(fmt.Sprintf(`{"$type":%q`, tag))
	if string(data) == "{}" {
		return append(head, '}'), nil
	}
	head = append(head, ',')
	return append(head, data[1:]...), nil
}

// customFieldTypes maps $type discriminators to variant constructors.
var customFieldTypes = map[string]func() IssueCustomField{
	TypeSingleEnumIssueCustomField:    func() IssueCustomField { return &SingleEnumIssueCustomField{} },
	TypeMultiEnumIssueCustomField:     func() IssueCustomField { return &MultiEnumIssueCustomField{} },
	TypeSingleBuildIssueCustomField:   func() IssueCustomField { return &SingleBuildIssueCustomField{} },
	TypeMultiBuildIssueCustomField:    func() IssueCustomField { return &MultiBuildIssueCustomField{} },
	TypeStateIssueCustomField:         func() IssueCustomField { return &StateIssueCustomField{} },
	TypeSingleVersionIssueCustomField: func() IssueCustomField { return &SingleVersionIssueCustomField{} },
	TypeMultiVersionIssueCustomField:  func() IssueCustomField { return &MultiVersionIssueCustomField{} },
	TypeSingleOwnedIssueCustomField:   func() IssueCustomField { return &SingleOwnedIssueCustomField{} },
	TypeMultiOwnedIssueCustomField:    func() IssueCustomField { return &MultiOwnedIssueCustomField{} },
	TypeSingleUserIssueCustomField:    func() IssueCustomField { return &SingleUserIssueCustomField{} },
	TypeMultiUserIssueCustomField:     func() IssueCustomField { return &MultiUserIssueCustomField{} },
	TypeSingleGroupIssueCustomField:   func() IssueCustomField { return &SingleGroupIssueCustomField{} },
	TypeMultiGroupIssueCustomField:    func() IssueCustomField { return &MultiGroupIssueCustomField{} },
	TypeSimpleIssueCustomField:        func() IssueCustomField { return &SimpleIssueCustomField{} },
	TypeDateIssueCustomField:          func() IssueCustomField { return &DateIssueCustomField{} },
	TypePeriodIssueCustomField:        func() IssueCustomField { return &PeriodIssueCustomField{} },
	TypeTextIssueCustomField:          func() IssueCustomField { return &TextIssueCustomField{} },
}

// UnknownTypeError reports a $type discriminator the client does not
// recognize.
type UnknownTypeError struct {
	Tag string
}

// Error implements the error interface.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("youtrack: unknown custom field type %q", e.Tag)
}

// UnmarshalCustomField decodes a single custom field JSON object, selecting
// the concrete variant by its $type discriminator.
func UnmarshalCustomField(data []byte) (IssueCustomField, error) {
	var probe struct {
		Type string `json:"$type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode custom field discriminator: %w", err)
	}
	construct, ok := customFieldTypes[probe.Type]
	if !ok {
		return nil, &UnknownTypeError{Tag: probe.Type}
	}
	field := construct()
	if err := json.Unmarshal(data, field); err != nil {
		return nil, fmt.Errorf("decode %s: %w", probe.Type, err)
	}
	return field, nil
}

// CustomFields is an ordered sequence of polymorphic custom fields. Server
// order is preserved.
type CustomFields []IssueCustomField

// UnmarshalJSON decodes an array of custom fields, dispatching each element
// on its $type discriminator.
func (cf *CustomFields) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(CustomFields, 0, len(raws))
	for _, raw := range raws {
		field, err := UnmarshalCustomField(raw)
		if err != nil {
			return err
		}
		out = append(out, field)
	}
	*cf = out
	return nil
}

// GetIssueCustomFields returns the custom fields of an issue.
func (c *Client) GetIssueCustomFields(ctx context.Context, issueID string, opts *ListOptions) ([]IssueCustomField, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/issues/" + url.PathEscape(issueID) + "/customFields",
		fields: selector(customFieldSchema),
		params: listParams(opts),
	})
	if err != nil {
		return nil, err
	}
	var fields CustomFields
	if err := c.decode(raw, &fields, http.MethodGet, "/issues/"+issueID+"/customFields"); err != nil {
		return nil, err
	}
	return fields, nil
}

// UpdateIssueCustomField updates one custom field of an issue and returns
// the updated field as echoed by the server.
func (c *Client) UpdateIssueCustomField(ctx context.Context, issueID, fieldID string, field IssueCustomField) (IssueCustomField, error) {
	path := "/issues/" + url.PathEscape(issueID) + "/customFields/" + url.PathEscape(fieldID)
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   path,
		fields: selector(customFieldSchema),
		body:   field,
	})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, newRequestError(fmt.Sprintf("POST %s: expected a response body, got none", path))
	}
	updated, err := UnmarshalCustomField(raw)
	if err != nil {
		return nil, newDecodeError(0, http.MethodPost, path, err)
	}
	return updated, nil
}
