// Package api defines the request, response and view types exchanged with
// clients, and the JSON codec the Connect handlers use for them.
//
// Views are built field by field from the domain models. A field that is not
// listed in a view's constructor never reaches the wire.
package api

import "encoding/json"

// JSONCodec marshals the plain Go message types in this package as JSON.
// Registered under the name "json", it serves "application/json" requests.
type JSONCodec struct{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
