package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// RelmVersion is set at build time via -ldflags.
var RelmVersion = "n/a"

func GetRelmVersion() string {
	v, err := semver.NewVersion(RelmVersion)
	if err != nil {
		return RelmVersion
	}
	return strings.TrimPrefix(v.Original(), "v")
}

type ReadCloserGetter func() (io.ReadCloser, error)

func ReadCloserGetterFromBytes(raw []byte) ReadCloserGetter {
	return func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(string(raw))), nil }
}

// DetectMediaType detects the media type of the file. The type provided by the user always takes precedence over
// automatic detection, unless it is empty. The type is guessed from the filename extension first: content sniffing
// cannot tell structured text formats like JSON apart from plain text, so a known extension is the better signal.
// Only when the extension yields nothing specific is the content sniffed with http.DetectContentType.
// If all of the above fails, it returns 'application/octet-stream'
func DetectMediaType(userGivenType string, filename string, getReader ReadCloserGetter) string {
	const mediaOctetStream = "application/octet-stream"
	if userGivenType != "" {
		return userGivenType
	}

	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" && ct != mediaOctetStream {
		return ct
	}

	reader, err := getReader()
	if err == nil {
		defer reader.Close()
		truncatedContent, err := io.ReadAll(io.LimitReader(reader, 512))
		if err == nil {
			ct := http.DetectContentType(truncatedContent)
			if ct != mediaOctetStream {
				return ct
			}
		}
	}
	return mediaOctetStream
}

// ExpandHome expands ~ in path with user's home directory, but only if path begins with ~ or /~
// Otherwise, returns path unchanged
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") && !strings.HasPrefix(path, "/~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand user home directory: %w", err)
	}
	_, rest, found := strings.Cut(path, "~")
	if !found {
		panic(errors.New("should have checked for ~ before"))
	}
	return filepath.Join(home, rest), nil
}

// AtomicWriteFile writes data to the named file so that readers never observe
// a partially written file.
func AtomicWriteFile(name string, data []byte, perm os.FileMode) error {
	return atomicWriteFile(name, data, perm)
}

const CtxKeyLogger = "logger"

// GetLogger returns the logger that is valid in the context
// If component is not empty, the logger is extended with the field "where" having that value.
func GetLogger(ctx context.Context, component string) *slog.Logger {
	cv := ctx.Value(CtxKeyLogger)
	l, ok := cv.(*slog.Logger)
	if !ok || l == nil {
		l = slog.Default()
	}
	if component != "" {
		l = l.With("where", component)
	}
	return l
}
