package document

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/spigell/resume-analyzer/internal/capability"
)

var (
	xmlTagPattern   = regexp.MustCompile(`<[^>]+>`)
	blankRunPattern = regexp.MustCompile(`\n{3,}`)

	wordBreaks = strings.NewReplacer(
		"</w:p>", "\n",
		"<w:br/>", "\n",
		"<w:cr/>", "\n",
		"<w:tab/>", "\t",
	)
)

// Extractor reads PDF and Word documents from disk.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractDocumentText implements capability.DocumentExtractor.
func (e *Extractor) ExtractDocumentText(path string, format capability.Format) (string, error) {
	if format != capability.FormatPDF && format != capability.FormatWord {
		return "", &Error{Reason: ReasonUnsupportedFormat, Path: path, Err: fmt.Errorf("format %q", format)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &Error{Reason: ReasonFileNotFound, Path: path}
		}
		return "", &Error{Reason: ReasonParseError, Path: path, Err: err}
	}

	text, err := ExtractBytes(data, format)
	if err != nil {
		var docErr *Error
		if errors.As(err, &docErr) {
			docErr.Path = path
		}
		return "", err
	}

	return text, nil
}

// ExtractBytes turns an in-memory document into text.
func ExtractBytes(data []byte, format capability.Format) (string, error) {
	var (
		text string
		err  error
	)

	switch format {
	case capability.FormatPDF:
		text, err = pdfText(data)
	case capability.FormatWord:
		text, err = wordText(data)
	default:
		return "", &Error{Reason: ReasonUnsupportedFormat, Err: fmt.Errorf("format %q", format)}
	}

	if err != nil {
		return "", &Error{Reason: ReasonParseError, Err: err}
	}

	return text, nil
}

func pdfText(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n"), nil
}

func wordText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	return wordXMLToText(doc.Editable().GetContent()), nil
}

// wordXMLToText flattens WordprocessingML into one line per paragraph.
func wordXMLToText(content string) string {
	content = wordBreaks.Replace(content)
	content = xmlTagPattern.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = blankRunPattern.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
