// Package document turns stored text documents into pages for extraction.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"github.com/MrJamesThe3rd/invoiceqc/internal/encoding"
)

//go:generate mockgen -source=document.go -destination=provider_mock.go -package=document

// Ext is the file extension of supported documents.
const Ext = ".txt"

// pageBreak separates pages in a text dump.
const pageBreak = "\f"

var ErrUnsupportedFile = errors.New("unsupported document type")

// Provider hands out the page texts of a document, in reading order.
type Provider interface {
	Pages(ctx context.Context, id string) ([]string, error)
}

// Split decodes r to UTF-8 and splits it into pages. Content that does not
// sniff as text is rejected with ErrUnsupportedFile.
func Split(r io.Reader) ([]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	if !isText(raw) {
		return nil, ErrUnsupportedFile
	}

	utf8r, err := encoding.NewUTF8Reader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	b, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	pages := strings.Split(string(b), pageBreak)

	// A trailing form feed closes the last page rather than opening a new one.
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}

	return pages, nil
}

func isText(raw []byte) bool {
	for m := mimetype.Detect(raw); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}

	return false
}

// Supported reports whether name has a supported extension.
func Supported(name string) bool {
	return strings.EqualFold(filepath.Ext(name), Ext)
}

// DirProvider serves the text documents of one directory. Document ids are
// file names relative to the directory.
type DirProvider struct {
	dir string
}

func NewDirProvider(dir string) *DirProvider {
	return &DirProvider{dir: dir}
}

// List returns the ids of all supported documents, sorted by name.
func (p *DirProvider) List() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", p.dir, err)
	}

	var ids []string

	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}

		ids = append(ids, e.Name())
	}

	sort.Strings(ids)

	return ids, nil
}

func (p *DirProvider) Pages(ctx context.Context, id string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !Supported(id) {
		return nil, fmt.Errorf("%s: %w", id, ErrUnsupportedFile)
	}

	f, err := os.Open(filepath.Join(p.dir, filepath.Base(id)))
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	pages, err := Split(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	return pages, nil
}

// MemProvider serves documents held in memory, such as uploaded files. It is
// safe for concurrent use.
type MemProvider struct {
	mu   sync.RWMutex
	docs map[string][]byte
	ids  []string
}

func NewMemProvider() *MemProvider {
	return &MemProvider{docs: make(map[string][]byte)}
}

// Add stores data under name and returns its id. Repeated names get a
// numeric suffix so that every document keeps its own id.
func (p *MemProvider) Add(name string, data []byte) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := name
	for n := 2; ; n++ {
		if _, ok := p.docs[id]; !ok {
			break
		}

		id = fmt.Sprintf("%s (%d)", name, n)
	}

	p.docs[id] = data
	p.ids = append(p.ids, id)

	return id
}

// List returns the ids in the order they were added.
func (p *MemProvider) List() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return append([]string(nil), p.ids...)
}

func (p *MemProvider) Pages(ctx context.Context, id string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	data, ok := p.docs[id]
	p.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%s: %w", id, os.ErrNotExist)
	}

	pages, err := Split(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	return pages, nil
}
