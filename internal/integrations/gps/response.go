package gps

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// parseResponse reads the SOAP body into a DOM. An empty body yields a nil document and no error,
// which extracts as no rows.
func parseResponse(body []byte) (*etree.Document, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedResponse)
	}
	return doc, nil
}

// localName returns the tag with a single-lowercase-letter namespace prefix removed
// (s:Envelope -> Envelope, a:CardNumber -> CardNumber). Longer prefixes are kept as part of the name.
func localName(e *etree.Element) string {
	if e.Space == "" || isShortPrefix(e.Space) {
		return e.Tag
	}
	return e.Space + ":" + e.Tag
}

func isShortPrefix(p string) bool {
	return len(p) == 1 && p[0] >= 'a' && p[0] <= 'z'
}

// child returns the first child element named name, or nil
func child(e *etree.Element, name string) *etree.Element {
	for _, c := range e.ChildElements() {
		if localName(c) == name {
			return c
		}
	}
	return nil
}

// children returns every child element named name in document order
func children(e *etree.Element, name string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if localName(c) == name {
			out = append(out, c)
		}
	}
	return out
}

// resultNode walks Envelope/Body/<op>Response/<op>Result. nil means the backend returned no result.
func resultNode(doc *etree.Document, op operation) *etree.Element {
	if doc == nil {
		return nil
	}
	node := doc.Root()
	if node == nil || localName(node) != "Envelope" {
		return nil
	}
	for _, segment := range []string{"Body", op.name + "Response", op.name + "Result"} {
		node = child(node, segment)
		if node == nil {
			return nil
		}
	}
	return node
}

// project copies the allow-listed fields of a raw record. Missing or non-scalar fields become "".
func project(record *etree.Element, fields []string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f] = ""
		if e := child(record, f); e != nil && len(e.ChildElements()) == 0 {
			out[f] = e.Text()
		}
	}
	return out
}

// isEmptyElement reports an element with no children and only whitespace text; attributes are ignored
func isEmptyElement(e *etree.Element) bool {
	return len(e.ChildElements()) == 0 && strings.TrimSpace(e.Text()) == ""
}

// extractRecords locates and projects every record of op. It never fails: an absent result node
// means "no rows", and any anomaly during projection is logged and degrades to an empty list.
func (c *Client) extractRecords(doc *etree.Document, op operation) (rows []map[string]string) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("Error extracting %s records from %s response: %v", op.record, op.name, r)
			rows = []map[string]string{}
		}
	}()

	result := resultNode(doc, op)
	if result == nil {
		return []map[string]string{}
	}

	records := children(result, op.record)
	// a lone empty or i:nil record is how the backend says "no rows"
	if len(records) == 1 && isEmptyElement(records[0]) {
		return []map[string]string{}
	}
	rows = make([]map[string]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, project(r, op.fields))
	}
	return rows
}
