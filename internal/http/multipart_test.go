package http_test

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	internalhttp "github.com/communet-io/communet/internal/http"
)

func TestEncodeMultipart(t *testing.T) {
	t.Parallel()

	fields := []internalhttp.FormField{
		{Name: "api.request", Value: `{"data": {"subject": "hi"}}`},
	}
	files := []internalhttp.FilePart{
		{Field: "attachment", Filename: "a.txt", Content: []byte("alpha")},
		{Field: "attachment2", Filename: "b.bin", Content: []byte{0x00, 0x01}},
	}

	body, contentType, err := internalhttp.EncodeMultipart(fields, files)
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)
	require.NotEmpty(t, params["boundary"])

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])

	part, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "api.request", part.FormName())

	value, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, fields[0].Value, string(value))

	part, err = reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "attachment", part.FormName())
	assert.Equal(t, "a.txt", part.FileName())

	part, err = reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "attachment2", part.FormName())

	content, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, files[1].Content, content)

	_, err = reader.NextPart()
	assert.Equal(t, io.EOF, err)
}

func TestEncodeMultipartProperties(t *testing.T) {
	t.Parallel()

	fieldName := rapid.StringMatching(`[a-z][a-z0-9.]{0,15}`)

	rapid.Check(t, func(t *rapid.T) {
		fieldCount := rapid.IntRange(0, 4).Draw(t, "fields")
		fileCount := rapid.IntRange(0, 4).Draw(t, "files")

		fields := make([]internalhttp.FormField, 0, fieldCount)
		for i := 0; i < fieldCount; i++ {
			fields = append(fields, internalhttp.FormField{
				Name:  fieldName.Draw(t, "fieldName"),
				Value: rapid.String().Draw(t, "fieldValue"),
			})
		}

		files := make([]internalhttp.FilePart, 0, fileCount)
		for i := 0; i < fileCount; i++ {
			files = append(files, internalhttp.FilePart{
				Field:    fieldName.Draw(t, "fileField"),
				Filename: fieldName.Draw(t, "fileName") + ".dat",
				Content:  rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "content"),
			})
		}

		body, contentType, err := internalhttp.EncodeMultipart(fields, files)
		require.NoError(t, err)

		_, params, err := mime.ParseMediaType(contentType)
		require.NoError(t, err)

		// The encoded body decodes back to exactly fieldCount+fileCount
		// parts, in order.
		reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])

		parts := 0

		for {
			part, err := reader.NextPart()
			if err == io.EOF {
				break
			}

			require.NoError(t, err)

			if parts < len(fields) {
				assert.Equal(t, fields[parts].Name, part.FormName())
			} else {
				file := files[parts-len(fields)]
				assert.Equal(t, file.Field, part.FormName())
				assert.Equal(t, file.Filename, part.FileName())
			}

			parts++
		}

		assert.Equal(t, len(fields)+len(files), parts)
	})
}
