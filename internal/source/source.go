// Package source reads a chat export from disk or from an upload. WhatsApp
// exports either a plain .txt file or a .zip holding the text next to the
// media files.
package source

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	ErrUnsupported = errors.New("unsupported export file")
	ErrNoChat      = errors.New("no chat text in archive")
	ErrNotUTF8     = errors.New("export is not UTF-8 text")
)

// maxChatSize bounds the decompressed chat text read from an archive.
const maxChatSize = 256 << 20

// ReadFile returns the chat text of the export at p.
func ReadFile(p string) (string, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	return Decode(filepath.Base(p), data)
}

// Decode returns the chat text of an export named name. Names ending in .zip
// are opened as archives; anything else must be UTF-8 text.
func Decode(name string, data []byte) (string, error) {
	ext := strings.ToLower(path.Ext(name))
	switch {
	case ext == ".zip" || isZip(data):
		return fromZip(data)
	case ext == ".txt" || ext == "":
		return text(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
}

func isZip(data []byte) bool {
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}

func text(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", ErrNotUTF8
	}
	return string(data), nil
}

func fromZip(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}

	f := chatEntry(zr.File)
	if f == nil {
		return "", ErrNoChat
	}

	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	body, err := io.ReadAll(io.LimitReader(rc, maxChatSize+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.Name, err)
	}
	if len(body) > maxChatSize {
		return "", fmt.Errorf("%s: chat text larger than %d bytes", f.Name, maxChatSize)
	}
	return text(body)
}

// chatEntry picks _chat.txt (iOS) or else the first .txt by name (Android
// names it "WhatsApp Chat with ...txt").
func chatEntry(files []*zip.File) *zip.File {
	var txt []*zip.File
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		base := path.Base(f.Name)
		if base == "_chat.txt" {
			return f
		}
		if strings.EqualFold(path.Ext(base), ".txt") && !strings.HasPrefix(base, ".") {
			txt = append(txt, f)
		}
	}
	if len(txt) == 0 {
		return nil
	}
	sort.Slice(txt, func(i, j int) bool { return txt[i].Name < txt[j].Name })
	return txt[0]
}
