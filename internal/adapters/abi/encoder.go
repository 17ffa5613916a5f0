package abi

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// Encoder converts plan values (strings, numbers, booleans and nested
// lists, as decoded from TOML) into typed ABI values and encodes them.
type Encoder struct{}

// NewEncoder creates a new Encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Constructor encodes constructor arguments, without selector
func (e *Encoder) Constructor(contract *abi.ABI, args []any) ([]byte, error) {
	inputs := contract.Constructor.Inputs
	if len(inputs) == 0 && len(args) == 0 {
		return nil, nil
	}
	values, err := convertArgs(inputs, args)
	if err != nil {
		return nil, fmt.Errorf("constructor: %w", err)
	}
	return contract.Pack("", values...)
}

// Call encodes a call of method with args
func (e *Encoder) Call(contract *abi.ABI, method string, args []any) ([]byte, error) {
	m, err := findMethod(contract, method)
	if err != nil {
		return nil, err
	}
	values, err := convertArgs(m.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return contract.Pack(m.Name, values...)
}

// Result encodes value the way method returns it. Methods with several
// outputs take a list.
func (e *Encoder) Result(contract *abi.ABI, method string, value any) (models.Value, error) {
	m, err := findMethod(contract, method)
	if err != nil {
		return models.Value{}, err
	}

	var args []any
	if len(m.Outputs) == 1 {
		args = []any{value}
	} else if list, ok := value.([]any); ok {
		args = list
	} else {
		return models.Value{}, fmt.Errorf("%s returns %d values, expected a list", method, len(m.Outputs))
	}

	values, err := convertArgs(m.Outputs, args)
	if err != nil {
		return models.Value{}, fmt.Errorf("%s result: %w", method, err)
	}
	raw, err := m.Outputs.Pack(values...)
	if err != nil {
		return models.Value{}, fmt.Errorf("%s result: %w", method, err)
	}
	return models.Value{Raw: raw, Text: formatValues(values)}, nil
}

// Decode wraps data returned by method into a Value
func (e *Encoder) Decode(contract *abi.ABI, method string, data []byte) (models.Value, error) {
	m, err := findMethod(contract, method)
	if err != nil {
		return models.Value{}, err
	}
	values, err := m.Outputs.Unpack(data)
	if err != nil {
		return models.Value{}, fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return models.Value{Raw: data, Text: formatValues(values)}, nil
}

func findMethod(contract *abi.ABI, method string) (abi.Method, error) {
	m, ok := contract.Methods[method]
	if !ok {
		names := lo.Keys(contract.Methods)
		slices.Sort(names)
		return abi.Method{}, fmt.Errorf("method %q not found (available: %s)", method, strings.Join(names, ", "))
	}
	return m, nil
}

func convertArgs(inputs abi.Arguments, args []any) ([]any, error) {
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(inputs), len(args))
	}
	values := make([]any, len(args))
	for i, input := range inputs {
		v, err := Convert(input.Type, args[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = strconv.Itoa(i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		values[i] = v
	}
	return values, nil
}

// Convert turns a plan value into the Go value go-ethereum packs for t
func Convert(t abi.Type, v any) (any, error) {
	switch t.T {
	case abi.AddressTy:
		return toAddress(v)
	case abi.BoolTy:
		return toBool(v)
	case abi.StringTy:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		return s, nil
	case abi.IntTy, abi.UintTy:
		n, err := toBig(v)
		if err != nil {
			return nil, err
		}
		return fitInteger(t, n)
	case abi.FixedBytesTy:
		b, err := toBytes(v)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(b))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil
	case abi.BytesTy:
		return toBytes(v)
	case abi.SliceTy, abi.ArrayTy:
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("expected list, got %T", v)
		}
		if t.T == abi.ArrayTy && len(list) != t.Size {
			return nil, fmt.Errorf("expected %d elements, got %d", t.Size, len(list))
		}
		var out reflect.Value
		if t.T == abi.SliceTy {
			out = reflect.MakeSlice(t.GetType(), len(list), len(list))
		} else {
			out = reflect.New(t.GetType()).Elem()
		}
		for i, item := range list {
			ev, err := Convert(*t.Elem, item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(reflect.ValueOf(ev))
		}
		return out.Interface(), nil
	case abi.TupleTy:
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("expected list for tuple, got %T", v)
		}
		if len(list) != len(t.TupleElems) {
			return nil, fmt.Errorf("expected %d tuple fields, got %d", len(t.TupleElems), len(list))
		}
		out := reflect.New(t.TupleType).Elem()
		for i, elem := range t.TupleElems {
			fv, err := Convert(*elem, list[i])
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", t.TupleRawNames[i], err)
			}
			out.Field(i).Set(reflect.ValueOf(fv))
		}
		return out.Interface(), nil
	default:
		return nil, fmt.Errorf("unsupported ABI type %s", t.String())
	}
}

func toAddress(v any) (common.Address, error) {
	switch a := v.(type) {
	case common.Address:
		return a, nil
	case string:
		if !common.IsHexAddress(a) {
			return common.Address{}, fmt.Errorf("%q is not an address", a)
		}
		return common.HexToAddress(a), nil
	default:
		return common.Address{}, fmt.Errorf("expected address, got %T", v)
	}
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(b)
	default:
		return false, fmt.Errorf("expected bool, got %T", v)
	}
}

func toBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case common.Hash:
		return b.Bytes(), nil
	case common.Address:
		return b.Bytes(), nil
	case string:
		decoded, err := hexutil.Decode(b)
		if err != nil {
			return nil, fmt.Errorf("%q is not 0x-prefixed hex: %w", b, err)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("expected hex bytes, got %T", v)
	}
}

func toBig(v any) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		return new(big.Int).Set(n), nil
	case int:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case int32:
		return big.NewInt(int64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), nil
	case float64:
		if n != math.Trunc(n) {
			return nil, fmt.Errorf("%v is not an integer", n)
		}
		b, _ := big.NewFloat(n).Int(nil)
		return b, nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), "_", "")
		b, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, fmt.Errorf("%q is not an integer", n)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("expected integer, got %T", v)
	}
}

// fitInteger range-checks n for t and returns the Go type go-ethereum
// expects for it (native ints up to 64 bits, *big.Int above)
func fitInteger(t abi.Type, n *big.Int) (any, error) {
	if t.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return nil, fmt.Errorf("%s out of range for uint%d", n, t.Size)
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, fmt.Errorf("%s out of range for int%d", n, t.Size)
		}
	}

	goType := t.GetType()
	switch goType.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflect.ValueOf(n.Uint64()).Convert(goType).Interface(), nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.ValueOf(n.Int64()).Convert(goType).Interface(), nil
	default:
		return n, nil
	}
}

func formatValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatValue(v any) string {
	switch x := v.(type) {
	case common.Address:
		return x.Hex()
	case *big.Int:
		return x.String()
	case []byte:
		return hexutil.Encode(x)
	case string:
		return strconv.Quote(x)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		b := make([]byte, rv.Len())
		for i := range b {
			b[i] = byte(rv.Index(i).Uint())
		}
		return hexutil.Encode(b)
	}
	return fmt.Sprint(v)
}

var _ usecase.ArgEncoder = (*Encoder)(nil)
