package kv

import (
	"reflect"

	ssz "github.com/ferranbt/fastssz"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

type sszMarshaler interface {
	MarshalSSZ() ([]byte, error)
}

func decode(data []byte, dst ssz.Unmarshaler) error {
	data, err := snappy.Decode(nil, data)
	if err != nil {
		return err
	}
	return dst.UnmarshalSSZ(data)
}

func encode(msg sszMarshaler) ([]byte, error) {
	if msg == nil || reflect.ValueOf(msg).IsNil() {
		return nil, errors.New("cannot encode nil message")
	}
	enc, err := msg.MarshalSSZ()
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, enc), nil
}
