package proto

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	gproto "google.golang.org/protobuf/proto"
)

// CodecName is the gRPC content-subtype of the service ("application/grpc+json").
const CodecName = "json"

// Codec marshals protobuf messages with protojson and plain structs with
// encoding/json.
type Codec struct{}

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(gproto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(gproto.Message); ok {
		if len(data) == 0 {
			return nil
		}
		return protojson.Unmarshal(data, m)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func init() {
	encoding.RegisterCodec(Codec{})
}
