package rhttp

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// XMLCodec reads and writes application/xml. Structured values are etree
// element trees: handlers return a [*etree.Element] (or a whole
// [*etree.Document]) and receive the decoded body as the root *etree.Element.
type XMLCodec struct {
	// Indent, when positive, pretty-prints output with that many spaces.
	Indent int
}

func (XMLCodec) ContentType() string { return "application/xml; charset=utf-8" }

// Empty returns the element an empty request body decodes to.
func (XMLCodec) Empty() any { return etree.NewElement("empty") }

func (c XMLCodec) Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return c.Empty(), nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("invalid xml: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("invalid xml: no document element")
	}

	return root, nil
}

func (c XMLCodec) Encode(v any) ([]byte, error) {
	var doc *etree.Document

	switch el := v.(type) {
	case *etree.Document:
		doc = el
	case *etree.Element:
		doc = etree.NewDocument()
		doc.SetRoot(el.Copy())
	default:
		return nil, fmt.Errorf("xml codec cannot encode %T: not an etree element or document", v)
	}

	if c.Indent > 0 {
		doc.Indent(c.Indent)
	}

	p, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml codec failed to encode: %w", err)
	}

	return p, nil
}

func (c XMLCodec) EncodeError(e *Error, withDetail bool) []byte {
	doc := etree.NewDocument()
	page := doc.CreateElement("error")
	page.CreateAttr("code", strconv.Itoa(int(e.Code())))
	page.CreateElement("message").SetText(e.Message())

	detail := page.CreateElement("detail")
	if withDetail && e.Detail() != "" {
		detail.SetText(e.Detail())
	}

	if c.Indent > 0 {
		doc.Indent(c.Indent)
	}

	p, err := doc.WriteToBytes()
	if err != nil {
		// the page is built from plain strings, this cannot fail
		panic("rhttp: failed to encode error page: " + err.Error())
	}

	return p
}
