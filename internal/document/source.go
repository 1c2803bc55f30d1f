package document

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spigell/resume-analyzer/internal/capability"
	"github.com/spigell/resume-analyzer/internal/storage"
)

// ObjectFetcher downloads a stored resume.
type ObjectFetcher interface {
	Fetch(ctx context.Context, loc storage.Location) ([]byte, error)
}

// Source resolves a command line argument into resume text.
type Source struct {
	extractor capability.DocumentExtractor
	fetcher   ObjectFetcher
}

type SourceOption func(*Source)

// WithFetcher enables s3:// arguments.
func WithFetcher(fetcher ObjectFetcher) SourceOption {
	return func(s *Source) {
		s.fetcher = fetcher
	}
}

func NewSource(extractor capability.DocumentExtractor, opts ...SourceOption) *Source {
	s := &Source{extractor: extractor}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the text behind arg. An existing file is read according to
// its extension, an s3:// URL is downloaded, a path-like argument that does
// not exist is an error and anything else is the resume text itself.
func (s *Source) Resolve(ctx context.Context, arg string) (string, error) {
	if storage.IsURL(arg) {
		return s.resolveObject(ctx, arg)
	}

	info, err := os.Stat(arg)
	switch {
	case err == nil && !info.IsDir():
		return s.resolveFile(arg)
	case err == nil && info.IsDir():
		return "", &Error{Reason: ReasonUnsupportedFormat, Path: arg, Err: errors.New("is a directory")}
	case errors.Is(err, fs.ErrNotExist) && LooksLikePath(arg):
		return "", &Error{Reason: ReasonFileNotFound, Path: arg}
	default:
		return arg, nil
	}
}

// ResolveFile reads a document that must exist on disk.
func (s *Source) ResolveFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &Error{Reason: ReasonFileNotFound, Path: path}
		}
		return "", &Error{Reason: ReasonParseError, Path: path, Err: err}
	}
	if info.IsDir() {
		return "", &Error{Reason: ReasonUnsupportedFormat, Path: path, Err: errors.New("is a directory")}
	}
	return s.resolveFile(path)
}

func (s *Source) resolveFile(path string) (string, error) {
	kind := KindFromPath(path)
	if kind == KindText {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", &Error{Reason: ReasonParseError, Path: path, Err: err}
		}
		return string(data), nil
	}

	format, ok := kind.Format()
	if !ok {
		return "", &Error{Reason: ReasonUnsupportedFormat, Path: path,
			Err: errors.New("only PDF and Word documents are supported")}
	}
	if s.extractor == nil {
		return "", fmt.Errorf("document extractor is not configured")
	}

	return s.extractor.ExtractDocumentText(path, format)
}

func (s *Source) resolveObject(ctx context.Context, raw string) (string, error) {
	loc, err := storage.ParseURL(raw)
	if err != nil {
		return "", err
	}

	kind := KindFromPath(loc.Key)
	format, binary := kind.Format()
	if kind != KindText && !binary {
		return "", &Error{Reason: ReasonUnsupportedFormat, Path: raw,
			Err: errors.New("only PDF and Word documents are supported")}
	}

	if s.fetcher == nil {
		return "", errors.New("object storage is not configured")
	}

	data, err := s.fetcher.Fetch(ctx, loc)
	if err != nil {
		return "", err
	}

	if kind == KindText {
		return string(data), nil
	}

	text, err := ExtractBytes(data, format)
	if err != nil {
		var docErr *Error
		if errors.As(err, &docErr) {
			docErr.Path = raw
		}
		return "", err
	}

	return text, nil
}
