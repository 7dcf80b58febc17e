package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// File is one multipart file field.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

// Close releases Content when it is closable. A nil file is a no-op.
func (f *File) Close() error {
	if f == nil {
		return nil
	}
	if closer, ok := f.Content.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Form is a multipart body: plain fields plus files.
type Form struct {
	Fields map[string]string
	Files  []File
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Upload performs a multipart call and otherwise follows the Do contract.
func (c *Client) Upload(ctx context.Context, method, path string, form Form, query url.Values) (gjson.Result, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(form.Fields))
	for key := range form.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := writer.WriteField(key, form.Fields[key]); err != nil {
			return gjson.Result{}, crerr.Wrapf(err, "write field %s", key)
		}
	}

	for _, file := range form.Files {
		if file.Content == nil {
			continue
		}
		contentType := file.ContentType
		if contentType == "" {
			contentType = "image/jpeg"
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(file.Field), quoteEscaper.Replace(file.Filename)))
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return gjson.Result{}, crerr.Wrapf(err, "create part %s", file.Field)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return gjson.Result{}, crerr.Wrapf(err, "copy file %s", file.Field)
		}
	}

	if err := writer.Close(); err != nil {
		return gjson.Result{}, crerr.Wrap(err, "close multipart body")
	}

	req, err := c.newRequest(ctx, method, path, query, &buf)
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.send(c.uploadClient, req)
}
