package file

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Signature is a run of magic bytes expected at Offset.
type Signature struct {
	Offset int
	Magic  []byte
}

func (s Signature) match(head []byte) bool {
	end := s.Offset + len(s.Magic)
	return end <= len(head) && bytes.Equal(head[s.Offset:end], s.Magic)
}

// MIMEType describes one allow-listed type. Content matches when every
// signature matches, or, for text formats, when the trimmed head starts
// with one of TextPrefixes (case-insensitive).
type MIMEType struct {
	Extensions   []string
	Signatures   []Signature
	TextPrefixes []string
}

func (t MIMEType) matches(head []byte) bool {
	if len(t.Signatures) > 0 {
		for _, sig := range t.Signatures {
			if !sig.match(head) {
				return false
			}
		}
		return true
	}

	text := bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	text = bytes.TrimLeft(text, " \t\r\n\f")
	for _, prefix := range t.TextPrefixes {
		if len(text) >= len(prefix) && strings.EqualFold(string(text[:len(prefix)]), prefix) {
			return true
		}
	}
	return false
}

// MIMETable maps a MIME type to its accepted extensions and signature.
// Treat it as read-only once built.
type MIMETable map[string]MIMEType

var defaultTable = MIMETable{
	"image/jpeg": {
		Extensions: []string{"jpg", "jpeg"},
		Signatures: []Signature{{Magic: []byte{0xFF, 0xD8, 0xFF}}},
	},
	"image/png": {
		Extensions: []string{"png"},
		Signatures: []Signature{{Magic: []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}}},
	},
	"image/webp": {
		Extensions: []string{"webp"},
		Signatures: []Signature{
			{Magic: []byte("RIFF")},
			{Offset: 8, Magic: []byte("WEBP")},
		},
	},
	"image/svg+xml": {
		Extensions:   []string{"svg"},
		TextPrefixes: []string{"<svg"},
	},
}

// DefaultMIMETable returns the built-in JPEG, PNG, WebP and SVG allow-list.
func DefaultMIMETable() MIMETable {
	out := make(MIMETable, len(defaultTable))
	for k, v := range defaultTable {
		out[k] = v
	}
	return out
}

// Types returns the allow-listed MIME types in sorted order.
func (t MIMETable) Types() []string {
	out := make([]string, 0, len(t))
	for k := range t {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Lookup normalizes mimeType (parameters dropped, lowercased) and returns
// its entry.
func (t MIMETable) Lookup(mimeType string) (string, MIMEType, bool) {
	normalized := normalizeMIME(mimeType)
	entry, ok := t[normalized]
	return normalized, entry, ok
}

func normalizeMIME(s string) string {
	if mt, _, err := mime.ParseMediaType(s); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(s))
}

type tableFile struct {
	Types map[string]struct {
		Extensions []string `yaml:"extensions"`
		Signatures []struct {
			Offset int    `yaml:"offset"`
			Hex    string `yaml:"hex"`
		} `yaml:"signatures"`
		TextPrefixes []string `yaml:"text_prefixes"`
	} `yaml:"types"`
}

// LoadMIMETable reads an allow-list profile:
//
//	types:
//	  image/png:
//	    extensions: [png]
//	    signatures:
//	      - hex: "89504e470d0a1a0a"
//	  image/svg+xml:
//	    extensions: [svg]
//	    text_prefixes: ["<svg"]
//
// Every type needs at least one extension and either signatures or text
// prefixes.
func LoadMIMETable(r io.Reader) (MIMETable, error) {
	var doc tableFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMIMETable, err)
	}
	if len(doc.Types) == 0 {
		return nil, fmt.Errorf("%w: no types defined", ErrInvalidMIMETable)
	}

	table := make(MIMETable, len(doc.Types))
	for name, def := range doc.Types {
		mt := normalizeMIME(name)
		entry := MIMEType{TextPrefixes: def.TextPrefixes}

		for _, ext := range def.Extensions {
			ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
			if ext != "" {
				entry.Extensions = append(entry.Extensions, ext)
			}
		}
		if len(entry.Extensions) == 0 {
			return nil, fmt.Errorf("%w: %s has no extensions", ErrInvalidMIMETable, mt)
		}

		for _, sig := range def.Signatures {
			magic, err := hex.DecodeString(strings.ReplaceAll(sig.Hex, " ", ""))
			if err != nil || len(magic) == 0 || sig.Offset < 0 {
				return nil, fmt.Errorf("%w: %s has a malformed signature %q", ErrInvalidMIMETable, mt, sig.Hex)
			}
			entry.Signatures = append(entry.Signatures, Signature{Offset: sig.Offset, Magic: magic})
		}
		if len(entry.Signatures) == 0 && len(entry.TextPrefixes) == 0 {
			return nil, fmt.Errorf("%w: %s has no signature", ErrInvalidMIMETable, mt)
		}

		table[mt] = entry
	}
	return table, nil
}
