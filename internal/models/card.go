package models

// Card is one payment card as relayed from the backend. Keys are exactly CardFields.
type Card map[string]string

// CardFields is the allow-list of backend Card fields exposed to clients.
// The backend returns more (balances, stop-list flags, shadow account, plastic codes);
// those are intentionally not relayed.
var CardFields = []string{
	"BrandName",
	"CardNumber",
	"CardType",
	"ClientCode",
	"CprId",
	"EmbossingName",
	"ExpiryDate",
	"MainSupp",
}
