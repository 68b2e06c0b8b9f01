// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/slug"
)

// Multipart is a form-data request body. The client sends it with the
// boundary content type generated by the multipart writer, never as JSON.
type Multipart struct {
	fields []multipartField
	files  []File
}

type multipartField struct {
	name  string
	value string
}

// File is one uploaded file part.
type File struct {
	Field   string
	Name    string
	Content io.Reader
}

// NewMultipart creates an empty form-data body.
func NewMultipart() *Multipart {
	return &Multipart{}
}

// Field appends a text field.
func (body *Multipart) Field(name, value string) *Multipart {
	body.fields = append(body.fields, multipartField{name: name, value: value})
	return body
}

// JSONField appends a field holding the JSON encoding of value, as the backend
// expects for list-valued product attributes.
func (body *Multipart) JSONField(name string, value any) (*Multipart, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return body, fmt.Errorf("encode multipart field %q: %w", name, err)
	}
	return body.Field(name, string(encoded)), nil
}

// File appends a file part. The filename is reduced to a lowercase ASCII slug
// that keeps its extension.
func (body *Multipart) File(field, filename string, content io.Reader) *Multipart {
	body.files = append(body.files, File{Field: field, Name: slug.Filename(filename), Content: content})
	return body
}

// encode renders the body and returns its boundary content type.
func (body *Multipart) encode() (io.Reader, string, error) {
	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)

	for _, field := range body.fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("write multipart field %q: %w", field.name, err)
		}
	}

	for _, file := range body.files {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create multipart file %q: %w", file.Field, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("copy multipart file %q: %w", file.Field, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return buffer, writer.FormDataContentType(), nil
}
