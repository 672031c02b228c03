package gps

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

func TestBuildEnvelope(t *testing.T) {
	raw, err := buildEnvelope("F4_GetCardList", []param{{name: "pCpr", value: "12345"}})
	require.NoError(t, err)
	require.Contains(t, string(raw), `<?xml version="1.0" encoding="utf-8"?>`)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(raw))

	root := doc.Root()
	require.Equal(t, "soap", root.Space)
	require.Equal(t, "Envelope", root.Tag)
	require.Equal(t, soapEnvelopeNS, root.SelectAttrValue("xmlns:soap", ""))
	require.NotNil(t, root.SelectElement("soap:Header"))

	op := root.FindElement("./soap:Body/F4_GetCardList")
	require.NotNil(t, op)
	require.Equal(t, serviceNS, op.SelectAttrValue("xmlns", ""))
	require.Len(t, op.ChildElements(), 1)
	require.Equal(t, "12345", op.SelectElement("pCpr").Text())
}

func TestBuildEnvelope_ParamOrder(t *testing.T) {
	raw, err := buildEnvelope("F5_GetStatementTransactions", []param{
		{name: "pCpr", value: "12345"},
		{name: "pCardNumber", value: "4000001234567899"},
		{name: "pStatementFlag", value: "C"},
	})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(raw))
	op := doc.FindElement("//F5_GetStatementTransactions")
	require.NotNil(t, op)

	var names []string
	for _, c := range op.ChildElements() {
		names = append(names, c.Tag)
	}
	require.Equal(t, []string{"pCpr", "pCardNumber", "pStatementFlag"}, names)
}

func TestBuildEnvelope_EscapesText(t *testing.T) {
	hostile := `1</pCpr><pCpr>2 & "3" <x/>`
	raw, err := buildEnvelope("F4_GetCardList", []param{{name: "pCpr", value: hostile}})
	require.NoError(t, err)
	require.NotContains(t, string(raw), "</pCpr><pCpr>")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(raw))
	op := doc.FindElement("//F4_GetCardList")
	require.NotNil(t, op)
	require.Len(t, op.ChildElements(), 1)
	require.Equal(t, hostile, op.SelectElement("pCpr").Text())
}

func TestSoapAction(t *testing.T) {
	require.Equal(t, `"http://tempuri.org/IServicesGps/F4_GetCardList"`, soapAction("F4_GetCardList"))
}
