package api

import "encoding/json"

// CodecName is the Connect codec name, sent as application/json.
const CodecName = "json"

// JSONCodec marshals the plain Go messages of this package. It is
// registered on both handlers and clients so Connect never falls back to
// its protobuf codecs.
type JSONCodec struct{}

func (JSONCodec) Name() string { return CodecName }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
