package gps

import (
	"fmt"

	"github.com/beevik/etree"
)

const (
	soapEnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	serviceNS      = "http://tempuri.org/"
	actionBase     = "http://tempuri.org/IServicesGps/"
)

// param is one child element of the operation element, in document order
type param struct {
	name  string
	value string
}

// buildEnvelope creates a SOAP 1.1 request for the given operation.
// Parameter values are written as escaped text content, so caller input cannot alter the envelope structure.
func buildEnvelope(operation string, params []param) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	envelope := doc.CreateElement("soap:Envelope")
	envelope.CreateAttr("xmlns:soap", soapEnvelopeNS)
	envelope.CreateElement("soap:Header")
	body := envelope.CreateElement("soap:Body")

	op := body.CreateElement(operation)
	op.CreateAttr("xmlns", serviceNS)
	for _, p := range params {
		op.CreateElement(p.name).SetText(p.value)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to write envelope: %w", err)
	}
	return out, nil
}

// soapAction returns the quoted SOAPAction header value for an operation
func soapAction(operation string) string {
	return `"` + actionBase + operation + `"`
}
