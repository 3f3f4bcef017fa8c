package http

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

// FormField is one structured field in a multipart payload.
type FormField struct {
	Name  string
	Value string
}

// FilePart is one file in a multipart payload.
type FilePart struct {
	Field    string
	Filename string
	Content  []byte
}

// EncodeMultipart builds a multipart/form-data body from ordered field and
// file parts. The returned content type carries the generated boundary and
// must go to the transport layer, never into the request's header mapping.
func EncodeMultipart(fields []FormField, files []FilePart) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, field := range fields {
		err := writer.WriteField(field.Name, field.Value)
		if err != nil {
			return nil, "", fmt.Errorf("writing form field %q: %w", field.Name, err)
		}
	}

	for _, file := range files {
		part, err := writer.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("creating form file %q: %w", file.Filename, err)
		}

		_, err = part.Write(file.Content)
		if err != nil {
			return nil, "", fmt.Errorf("writing file %q to form: %w", file.Filename, err)
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}
