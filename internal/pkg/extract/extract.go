package extract

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePlain = "text/plain"
	MimePDF   = "application/pdf"
	MimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var ErrUnsupported = errors.New("unsupported document type")

// Text returns the plain text of a pdf, docx or txt document. The content
// type wins; the file extension is used when the type is missing or generic.
func Text(filename, contentType string, data []byte) (string, error) {
	switch Detect(filename, contentType) {
	case MimePlain:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("text file is not valid utf-8")
		}
		return string(data), nil
	case MimePDF:
		return pdfText(data)
	case MimeDOCX:
		return docxText(data)
	default:
		return "", ErrUnsupported
	}
}

func Detect(filename, contentType string) string {
	mt, _, err := mime.ParseMediaType(strings.TrimSpace(contentType))
	if err == nil {
		switch mt {
		case MimePlain, MimePDF, MimeDOCX:
			return mt
		}
	}

	switch strings.ToLower(path.Ext(filename)) {
	case ".txt":
		return MimePlain
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	}
	return ""
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return stripXMLTags(doc.Editable().GetContent()), nil
}

// stripXMLTags turns the raw document.xml into readable text, breaking lines
// at paragraph ends.
func stripXMLTags(s string) string {
	s = strings.ReplaceAll(s, "</w:p>", "\n")
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
