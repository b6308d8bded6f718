package pdftext

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
	"gopkg.in/xmlpath.v2"
)

// ErrNoXMP means the file carries no XMP metadata packet.
var ErrNoXMP = errors.New("no XMP packet")

// XMPMetadata is the subset of the document's XMP packet we use.
type XMPMetadata struct {
	Title      string
	CreateDate string
}

// xmlpath matches on local names, so the dc:/xmp: prefixes are dropped.
var (
	xmpTitlePath      = xmlpath.MustCompile(`//title//li`)
	xmpCreateDatePath = xmlpath.MustCompile(`//CreateDate`)
	xmpCreateAttrPath = xmlpath.MustCompile(`//Description/@CreateDate`)
)

var (
	xmpStart = []byte("<x:xmpmeta")
	xmpEnd   = []byte("</x:xmpmeta>")
)

// ReadXMP loads the file and parses its embedded XMP packet.
func ReadXMP(path string) (XMPMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return XMPMetadata{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseXMP(data)
}

// ParseXMP finds the first XMP packet in raw PDF bytes. Packets stored in
// compressed streams are not visible and yield ErrNoXMP.
func ParseXMP(data []byte) (XMPMetadata, error) {
	start := bytes.Index(data, xmpStart)
	if start < 0 {
		return XMPMetadata{}, ErrNoXMP
	}
	end := bytes.Index(data[start:], xmpEnd)
	if end < 0 {
		return XMPMetadata{}, ErrNoXMP
	}
	packet := data[start : start+end+len(xmpEnd)]

	dec := xml.NewDecoder(bytes.NewReader(packet))
	dec.CharsetReader = charset.NewReaderLabel
	dec.Strict = false

	root, err := xmlpath.ParseDecoder(dec)
	if err != nil {
		return XMPMetadata{}, fmt.Errorf("failed to parse XMP packet: %w", err)
	}

	var meta XMPMetadata
	if v, ok := xmpTitlePath.String(root); ok {
		meta.Title = strings.TrimSpace(v)
	}
	if v, ok := xmpCreateDatePath.String(root); ok {
		meta.CreateDate = strings.TrimSpace(v)
	} else if v, ok := xmpCreateAttrPath.String(root); ok {
		meta.CreateDate = strings.TrimSpace(v)
	}
	return meta, nil
}

// Date returns the YYYY-MM-DD part of CreateDate, if it has one.
func (m XMPMetadata) Date() (string, bool) {
	if len(m.CreateDate) < 10 {
		return "", false
	}
	d := m.CreateDate[:10]
	if d[4] != '-' || d[7] != '-' {
		return "", false
	}
	for i, r := range d {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return d, true
}
