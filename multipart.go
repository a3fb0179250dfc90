package youtrack

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
)

// FileField is one file part of an attachment upload.
type FileField struct {
	// Name is the multipart form field name.
	Name string
	// FileName is the file name sent to the server. Defaults to Name.
	FileName string
	// ContentType is the MIME type. If empty, application/octet-stream.
	ContentType string
	// Reader supplies the file content. It is consumed while the upload
	// request is being built and never retained afterwards.
	Reader io.Reader
}

// encodeMultipart builds a multipart/form-data body from the file parts and
// returns the body reader and the Content-Type header value.
func encodeMultipart(files []FileField) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range files {
		fileName := f.FileName
		if fileName == "" {
			fileName = f.Name
		}

		var part io.Writer
		var err error
		if f.ContentType != "" {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition",
				`form-data; name="`+escapeQuotes(f.Name)+`"; filename="`+escapeQuotes(fileName)+`"`)
			header.Set("Content-Type", f.ContentType)
			part, err = w.CreatePart(header)
		} else {
			part, err = w.CreateFormFile(f.Name, fileName)
		}
		if err != nil {
			return nil, "", err
		}

		if f.Reader != nil {
			if _, err := io.Copy(part, f.Reader); err != nil {
				return nil, "", err
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

// escapeQuotes replaces special characters in header values.
func escapeQuotes(s string) string {
	var buf bytes.Buffer
	for _, b := range []byte(s) {
		if b == '"' || b == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(b)
	}
	return buf.String()
}
