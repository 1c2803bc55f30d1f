// Package document turns resume files into plain text.
package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spigell/resume-analyzer/internal/capability"
)

// Reason classifies why a document could not be read.
type Reason string

const (
	ReasonUnsupportedFormat Reason = "unsupported-format"
	ReasonFileNotFound      Reason = "file-not-found"
	ReasonParseError        Reason = "parse-error"
)

// Error is returned for every document that could not be turned into text.
type Error struct {
	Reason Reason
	Path   string
	Err    error
}

func (e *Error) Error() string {
	msg := string(e.Reason)
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// ReasonOf returns the reason of a document error anywhere in err's chain.
func ReasonOf(err error) (Reason, bool) {
	var docErr *Error
	if errors.As(err, &docErr) {
		return docErr.Reason, true
	}
	return "", false
}

// Kind is how a file's content is read.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindPDF
	KindWord
)

// KindFromPath classifies a path by its extension, case-insensitively.
func KindFromPath(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindWord
	case ".txt", ".md", ".text":
		return KindText
	default:
		return KindUnknown
	}
}

// Format maps a binary document kind to its capability format.
func (k Kind) Format() (capability.Format, bool) {
	switch k {
	case KindPDF:
		return capability.FormatPDF, true
	case KindWord:
		return capability.FormatWord, true
	default:
		return "", false
	}
}

// FormatFromPath returns the declared format of a PDF or Word path.
func FormatFromPath(path string) (capability.Format, bool) {
	return KindFromPath(path).Format()
}

// LooksLikePath reports whether arg was most likely meant as a file name
// rather than resume text: a single line without spaces that either
// contains a path separator or ends in a document extension.
func LooksLikePath(arg string) bool {
	arg = strings.TrimSpace(arg)
	if arg == "" || strings.ContainsAny(arg, " \t\r\n") {
		return false
	}
	if strings.ContainsRune(arg, '/') || strings.ContainsRune(arg, filepath.Separator) {
		return true
	}
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".pdf", ".docx", ".doc", ".txt", ".md", ".rtf", ".odt":
		return true
	default:
		return false
	}
}
