package entry

import (
	"fmt"

	"github.com/ugorji/go/codec"
)

// Entries are stored as canonical msgpack so that every node produces the
// same bytes for the same entry.
var msgpackHandle = func() *codec.MsgpackHandle {
	h := new(codec.MsgpackHandle)
	h.Canonical = true
	h.WriteExt = true
	return h
}()

// Marshal validates and encodes an entry.
func Marshal(e Entry) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s entry: %w", e.Type(), err)
	}
	var out []byte
	if err := codec.NewEncoderBytes(&out, msgpackHandle).Encode(e); err != nil {
		return nil, fmt.Errorf("failed to encode %s entry: %w", e.Type(), err)
	}
	return out, nil
}

// Unmarshal decodes data into e.
func Unmarshal(data []byte, e Entry) error {
	if err := codec.NewDecoderBytes(data, msgpackHandle).Decode(e); err != nil {
		return fmt.Errorf("failed to decode %s entry: %w", e.Type(), err)
	}
	return nil
}
