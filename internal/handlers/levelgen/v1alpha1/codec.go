package v1alpha1

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"

	"github.com/KirkDiggler/rpg-levelgen/internal/errors"
)

// CodecName is the gRPC content subtype of the level service messages
const CodecName = "json"

// jsonCodec carries the plain Go messages of this package over gRPC
type jsonCodec struct{}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %T", v)
	}
	return b, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed message")
	}
	return nil
}

func (jsonCodec) Name() string {
	return CodecName
}
