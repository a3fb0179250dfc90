package youtrack

import (
	"strings"
	"sync"
)

// fieldSchema declares the fields the API must return for one entity type.
// Schemas drive the "fields" query parameter: every declared field is
// requested, nested entity fields are expanded recursively into bracket
// notation, and nothing else is asked for.
type fieldSchema struct {
	name   string
	fields []schemaField
}

// schemaField is one declared field. A nil sub marks a scalar field. More
// than one sub schema marks a polymorphic field whose selector is the merged
// union of all variant shapes.
type schemaField struct {
	name string
	sub  []*fieldSchema
}

var (
	userSchema = &fieldSchema{name: "User", fields: []schemaField{
		{name: "$type"},
		{name: "id"},
		{name: "name"},
		{name: "ringId"},
		{name: "login"},
		{name: "email"},
	}}

	userGroupSchema = &fieldSchema{name: "UserGroup", fields: []schemaField{
		{name: "$type"},
		{name: "id"},
		{name: "name"},
		{name: "ringId"},
	}}

	bundleElementFields = []schemaField{
		{name: "$type"},
		{name: "id"},
		{name: "name"},
	}

	enumBundleElementSchema    = &fieldSchema{name: "EnumBundleElement", fields: bundleElementFields}
	stateBundleElementSchema   = &fieldSchema{name: "StateBundleElement", fields: bundleElementFields}
	buildBundleElementSchema   = &fieldSchema{name: "BuildBundleElement", fields: bundleElementFields}
	versionBundleElementSchema = &fieldSchema{name: "VersionBundleElement", fields: bundleElementFields}
	ownedBundleElementSchema   = &fieldSchema{name: "OwnedBundleElement", fields: bundleElementFields}

	textFieldValueSchema = &fieldSchema{name: "TextFieldValue", fields: []schemaField{
		{name: "$type"},
		{name: "id"},
		{name: "text"},
		{name: "markdownText"},
	}}

	periodValueSchema = &fieldSchema{name: "PeriodValue", fields: []schemaField{
		{name: "$type"},
		{name: "id"},
		{name: "minutes"},
		{name: "presentation"},
	}}

	projectSchema = &fieldSchema{name: "Project", fields: []schemaField{
		{name: "$type"},
		{name: "id"},
		{name: "name"},
		{name: "shortName"},
	}}

	issueTagSchema = &fieldSchema{name: "IssueTag", fields: []schemaField{
		{name: "$type"},
		{name: "id"},
		{name: "name"},
	}}

	issueAttachmentSchema = &fieldSchema{name: "IssueAttachment", fields: []schemaField{
		{name: "$type"},
		{name: "id"},
		{name: "name"},
		{name: "author", sub: []*fieldSchema{userSchema}},
		{name: "created"},
		{name: "updated"},
		{name: "mimeType"},
		{name: "url"},
		{name: "size"},
		{name: "base64Content"},
	}}

	issueCommentSchema = &fieldSchema{name: "IssueComment", fields: []schemaField{
		{name: "$type"},
		{name: "id"},
		{name: "text"},
		{name: "created"},
		{name: "updated"},
		{name: "author", sub: []*fieldSchema{userSchema}},
		{name: "attachments", sub: []*fieldSchema{issueAttachmentSchema}},
		{name: "deleted"},
	}}

	// Custom field variant schemas. The id and name fields come before the
	// discriminator, matching the declaration order of the variant types.
	singleEnumCustomFieldSchema    = customFieldVariantSchema("SingleEnumIssueCustomField", enumBundleElementSchema)
	multiEnumCustomFieldSchema     = customFieldVariantSchema("MultiEnumIssueCustomField", enumBundleElementSchema)
	singleBuildCustomFieldSchema   = customFieldVariantSchema("SingleBuildIssueCustomField", buildBundleElementSchema)
	multiBuildCustomFieldSchema    = customFieldVariantSchema("MultiBuildIssueCustomField", buildBundleElementSchema)
	stateCustomFieldSchema         = customFieldVariantSchema("StateIssueCustomField", stateBundleElementSchema)
	singleVersionCustomFieldSchema = customFieldVariantSchema("SingleVersionIssueCustomField", versionBundleElementSchema)
	multiVersionCustomFieldSchema  = customFieldVariantSchema("MultiVersionIssueCustomField", versionBundleElementSchema)
	singleOwnedCustomFieldSchema   = customFieldVariantSchema("SingleOwnedIssueCustomField", ownedBundleElementSchema)
	multiOwnedCustomFieldSchema    = customFieldVariantSchema("MultiOwnedIssueCustomField", ownedBundleElementSchema)
	singleUserCustomFieldSchema    = customFieldVariantSchema("SingleUserIssueCustomField", userSchema)
	multiUserCustomFieldSchema     = customFieldVariantSchema("MultiUserIssueCustomField", userSchema)
	singleGroupCustomFieldSchema   = customFieldVariantSchema("SingleGroupIssueCustomField", userGroupSchema)
	multiGroupCustomFieldSchema    = customFieldVariantSchema("MultiGroupIssueCustomField", userGroupSchema)
	simpleCustomFieldSchema        = customFieldVariantSchema("SimpleIssueCustomField", nil)
	dateCustomFieldSchema          = customFieldVariantSchema("DateIssueCustomField", nil)
	periodCustomFieldSchema        = customFieldVariantSchema("PeriodIssueCustomField", periodValueSchema)
	textCustomFieldSchema          = customFieldVariantSchema("TextIssueCustomField", textFieldValueSchema)

	// customFieldSchema is the merged union of every variant. The server
	// response shape is only known after parsing, so the selector has to
	// request the union of all variant-specific subfields.
	customFieldSchema = mergeSchemas("IssueCustomField",
		singleEnumCustomFieldSchema,
		multiEnumCustomFieldSchema,
		singleBuildCustomFieldSchema,
		multiBuildCustomFieldSchema,
		stateCustomFieldSchema,
		singleVersionCustomFieldSchema,
		multiVersionCustomFieldSchema,
		singleOwnedCustomFieldSchema,
		multiOwnedCustomFieldSchema,
		singleUserCustomFieldSchema,
		multiUserCustomFieldSchema,
		singleGroupCustomFieldSchema,
		multiGroupCustomFieldSchema,
		simpleCustomFieldSchema,
		dateCustomFieldSchema,
		periodCustomFieldSchema,
		textCustomFieldSchema,
	)

	issueLinkTypeSchema = &fieldSchema{name: "IssueLinkType", fields: []schemaField{
		{name: "$type"},
		{name: "id"},
		{name: "name"},
		{name: "localizedName"},
		{name: "sourceToTarget"},
		{name: "targetToSource"},
		{name: "directed"},
		{name: "aggregation"},
		{name: "readOnly"},
	}}

	issueSchema     = &fieldSchema{name: "Issue"}
	issueLinkSchema = &fieldSchema{name: "IssueLink"}
)

// Issue and IssueLink reference each other through link issues and comments,
// so their field lists are attached in init to avoid an initialization cycle.
func init() {
	issueSchema.fields = []schemaField{
		{name: "$type"},
		{name: "id"},
		{name: "idReadable"},
		{name: "created"},
		{name: "updated"},
		{name: "resolved"},
		{name: "project", sub: []*fieldSchema{projectSchema}},
		{name: "reporter", sub: []*fieldSchema{userSchema}},
		{name: "updater", sub: []*fieldSchema{userSchema}},
		{name: "summary"},
		{name: "description"},
		{name: "tags", sub: []*fieldSchema{issueTagSchema}},
		{name: "customFields", sub: []*fieldSchema{customFieldSchema}},
		{name: "attachments", sub: []*fieldSchema{issueAttachmentSchema}},
		{name: "comments", sub: []*fieldSchema{issueCommentSchema}},
	}
	issueLinkSchema.fields = []schemaField{
		{name: "$type"},
		{name: "id"},
		{name: "direction"},
		{name: "linkType", sub: []*fieldSchema{issueLinkTypeSchema}},
		{name: "issues", sub: []*fieldSchema{issueSchema}},
	}
}

// customFieldVariantSchema builds the schema of one custom field variant.
// A nil value schema marks a scalar-valued variant.
func customFieldVariantSchema(name string, value *fieldSchema) *fieldSchema {
	fields := []schemaField{
		{name: "id"},
		{name: "name"},
		{name: "$type"},
	}
	if value != nil {
		fields = append(fields, schemaField{name: "value", sub: []*fieldSchema{value}})
	} else {
		fields = append(fields, schemaField{name: "value"})
	}
	return &fieldSchema{name: name, fields: fields}
}

// mergeSchemas combines schemas into one, keeping the first-seen order of
// field names and recursively merging the sub schemas of fields that appear
// in more than one input.
func mergeSchemas(name string, schemas ...*fieldSchema) *fieldSchema {
	merged := &fieldSchema{name: name}
	index := make(map[string]int)
	for _, s := range schemas {
		for _, f := range s.fields {
			i, ok := index[f.name]
			if !ok {
				index[f.name] = len(merged.fields)
				merged.fields = append(merged.fields, schemaField{name: f.name, sub: append([]*fieldSchema(nil), f.sub...)})
				continue
			}
			merged.fields[i].sub = appendNewSchemas(merged.fields[i].sub, f.sub)
		}
	}
	return merged
}

// appendNewSchemas appends the schemas of src not already present in dst.
func appendNewSchemas(dst, src []*fieldSchema) []*fieldSchema {
	for _, s := range src {
		seen := false
		for _, d := range dst {
			if d.name == s.name {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, s)
		}
	}
	return dst
}

var (
	selectorMu    sync.Mutex
	selectorCache = make(map[*fieldSchema]string)
)

// selector returns the fields query parameter value for a schema: every
// declared field name in declaration order, nested entity fields expanded
// into bracket notation. Results are cached; the output is deterministic.
func selector(s *fieldSchema) string {
	selectorMu.Lock()
	defer selectorMu.Unlock()
	if cached, ok := selectorCache[s]; ok {
		return cached
	}
	result := buildSelector(s, map[string]bool{})
	selectorCache[s] = result
	return result
}

// buildSelector walks the schema's declared fields. Schemas already in
// progress are not expanded again, which terminates recursion on
// self-referential and mutually-referential entity graphs.
func buildSelector(s *fieldSchema, inProgress map[string]bool) string {
	inProgress[s.name] = true
	defer delete(inProgress, s.name)

	var b strings.Builder
	for i, f := range s.fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.name)
		if expansion := expandField(f, inProgress); expansion != "" {
			b.WriteByte('(')
			b.WriteString(expansion)
			b.WriteByte(')')
		}
	}
	return b.String()
}

// expandField returns the bracketed expansion of a field, merging the
// expansions of polymorphic sub schemas. Sub schemas already being expanded
// further up the walk contribute nothing.
func expandField(f schemaField, inProgress map[string]bool) string {
	var active []*fieldSchema
	for _, sub := range f.sub {
		if !inProgress[sub.name] {
			active = append(active, sub)
		}
	}
	switch len(active) {
	case 0:
		return ""
	case 1:
		return buildSelector(active[0], inProgress)
	default:
		return buildSelector(mergeSchemas(f.name, active...), inProgress)
	}
}
