package abi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ABIEncode is the equivalent of abi.encode.
// See a full set of examples https://github.com/ethereum/go-ethereum/blob/420b78659bef661a83c5c442121b13f13288c09f/accounts/abi/packing_test.go#L31
func ABIEncode(abiStr string, values ...any) ([]byte, error) {
	// Create a dummy method with arguments
	inDef := fmt.Sprintf(`[{ "name" : "method", "type": "function", "inputs": %s}]`, abiStr)
	inAbi, err := abi.JSON(strings.NewReader(inDef))
	if err != nil {
		return nil, err
	}

	res, err := inAbi.Pack("method", values...)
	if err != nil {
		return nil, err
	}

	return res[4:], nil
}

// EncodeConstructorArgs ABI encodes JSON decoded constructor arguments, as found in a
// deployment artifact, against the constructor of contractABI. Numbers may be JSON
// numbers, json.Number or decimal/hex strings.
func EncodeConstructorArgs(contractABI *abi.ABI, args []any) ([]byte, error) {
	inputs := contractABI.Constructor.Inputs
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("constructor expects %d arguments, got %d", len(inputs), len(args))
	}
	if len(inputs) == 0 {
		return nil, nil
	}

	values := make([]any, len(args))
	for i, input := range inputs {
		v, err := ConvertJSONArg(input.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("constructor argument %d (%s): %w", i, input.Name, err)
		}
		values[i] = v
	}

	return inputs.Pack(values...)
}

// ConvertJSONArg converts a JSON decoded value into the Go type the abi packer expects
// for t.
func ConvertJSONArg(t abi.Type, v any) (any, error) {
	switch t.T {
	case abi.AddressTy:
		s, ok := v.(string)
		if !ok || !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid address %v", v)
		}

		return common.HexToAddress(s), nil
	case abi.BoolTy:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			return b == "true", nil
		}

		return nil, fmt.Errorf("invalid bool %v", v)
	case abi.StringTy:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("invalid string %v", v)
		}

		return s, nil
	case abi.UintTy, abi.IntTy:
		return convertInteger(t, v)
	case abi.BytesTy:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("invalid bytes %v", v)
		}

		return hexutil.Decode(s)
	case abi.FixedBytesTy:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("invalid bytes%d %v", t.Size, v)
		}
		raw, err := hexutil.Decode(s)
		if err != nil {
			return nil, err
		}
		if len(raw) > t.Size {
			return nil, fmt.Errorf("bytes%d value is %d bytes long", t.Size, len(raw))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(raw))

		return arr.Interface(), nil
	case abi.SliceTy, abi.ArrayTy:
		return convertList(t, v)
	default:
		return nil, fmt.Errorf("unsupported abi type %s", t.String())
	}
}

func convertInteger(t abi.Type, v any) (any, error) {
	n := new(big.Int)
	switch x := v.(type) {
	case json.Number:
		if _, ok := n.SetString(x.String(), 10); !ok {
			return nil, fmt.Errorf("invalid integer %v", x)
		}
	case string:
		if _, ok := n.SetString(x, 0); !ok {
			return nil, fmt.Errorf("invalid integer %q", x)
		}
	case float64:
		if x != float64(int64(x)) {
			return nil, fmt.Errorf("invalid integer %v", x)
		}
		n.SetInt64(int64(x))
	default:
		return nil, fmt.Errorf("invalid integer %v", v)
	}

	if t.T == abi.UintTy && n.Sign() < 0 {
		return nil, fmt.Errorf("negative value %s for %s", n, t.String())
	}

	goType := t.GetType()
	if goType == reflect.TypeOf(n) {
		return n, nil
	}

	out := reflect.New(goType).Elem()
	if t.T == abi.UintTy {
		if !n.IsUint64() || out.OverflowUint(n.Uint64()) {
			return nil, fmt.Errorf("value %s overflows %s", n, t.String())
		}
		out.SetUint(n.Uint64())
	} else {
		if !n.IsInt64() || out.OverflowInt(n.Int64()) {
			return nil, fmt.Errorf("value %s overflows %s", n, t.String())
		}
		out.SetInt(n.Int64())
	}

	return out.Interface(), nil
}

func convertList(t abi.Type, v any) (any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid %s %v", t.String(), v)
	}
	if t.Elem == nil {
		return nil, errors.New("list type without element type")
	}
	if t.T == abi.ArrayTy && len(items) != t.Size {
		return nil, fmt.Errorf("%s expects %d items, got %d", t.String(), t.Size, len(items))
	}

	var out reflect.Value
	if t.T == abi.SliceTy {
		out = reflect.MakeSlice(t.GetType(), len(items), len(items))
	} else {
		out = reflect.New(t.GetType()).Elem()
	}

	for i, item := range items {
		converted, err := ConvertJSONArg(*t.Elem, item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out.Index(i).Set(reflect.ValueOf(converted))
	}

	return out.Interface(), nil
}
