package types

import "github.com/beevik/etree"

// NetconfResponse wraps the parsed body of an rpc reply. Consumers walk the
// document directly; rendering back to text is left to the call sites that
// need it.
type NetconfResponse struct {
	Doc *etree.Document
}

func NewNetconfResponse(doc *etree.Document) *NetconfResponse {
	return &NetconfResponse{Doc: doc}
}
