// Package youtrack provides a typed client for the YouTrack REST API.
//
// The client builds requests against the YouTrack resource hierarchy
// (issues, comments, attachments, tags, projects, users), serializes typed
// entities to JSON bodies, and decodes responses back into typed entities.
// For every entity type it derives the minimal "fields" projection the API
// needs to return fully-populated objects, so responses never silently carry
// empty defaults for fields that were simply not requested.
//
// # Basic Usage
//
//	client, err := youtrack.New(youtrack.Config{
//	    BaseURL: "https://example.youtrack.cloud",
//	    Token:   "perm:abcd1234",
//	})
//	if err != nil {
//	    return err
//	}
//
//	issue, err := client.GetIssue(ctx, "DEMO-1")
//	if youtrack.IsNotFound(err) {
//	    // the issue does not exist
//	}
//
// # Writes
//
// Entities destined for creation carry only the fields meaningful for the
// write; unset fields are omitted from the request body, not sent as null:
//
//	created, err := client.CreateIssue(ctx, &youtrack.Issue{
//	    Project: &youtrack.Project{ID: "0-0"},
//	    Summary: "Printer on fire",
//	})
//
// # Custom Fields
//
// Custom field values are polymorphic. The concrete Go type of a parsed
// field is selected by the $type discriminator in the response:
//
//	fields, err := client.GetIssueCustomFields(ctx, "DEMO-1", nil)
//	for _, f := range fields {
//	    if state, ok := f.(*youtrack.StateIssueCustomField); ok {
//	        fmt.Println(state.Name, state.Value.Name)
//	    }
//	}
//
// # Errors
//
// All failures are returned synchronously as *Error values classified by
// ErrorCode; IsNotFound, IsUnauthorized, and IsClientError match them
// through wrapped error chains. The client never retries, caches, or rate
// limits on its own.
package youtrack
