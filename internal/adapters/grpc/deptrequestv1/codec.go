package deptrequestv1

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName は content-subtype として利用するコーデック名です。
const CodecName = "json"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec はメッセージを JSON で符号化する gRPC コーデックです。
type Codec struct{}

// Marshal は v を JSON へ符号化します。
func (Codec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("deptrequestv1: marshal %T: %w", v, err)
	}
	return b, nil
}

// Unmarshal は JSON を v へ復号します。空のペイロードはゼロ値として扱います。
func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("deptrequestv1: unmarshal %T: %w", v, err)
	}
	return nil
}

// Name はコーデック名を返します。
func (Codec) Name() string {
	return CodecName
}
