package common

import (
	"reflect"

	"github.com/pkg/errors"
)

type Syscall struct {
	Name     string
	Kernel   *KernelBase
	Instance reflect.Value
	Method   reflect.Method
	In       []reflect.Type
	Out      []reflect.Type
}

var uint64Type = reflect.TypeOf(uint64(0))

// Call converts the raw argument words and invokes the handler. The result
// is the handler's first return value if it converts to uint64, else 0.
func (sys Syscall) Call(args []uint64) (uint64, error) {
	if len(args) < len(sys.In) {
		return 0, errors.Errorf("%s: expected %d args, got %d", sys.Name, len(sys.In), len(args))
	}
	converted, err := sys.Kernel.Argjoy.Convert(sys.In, false, args[:len(sys.In)])
	if err != nil {
		return 0, errors.Wrapf(err, "calling %T.%s()", sys.Instance.Interface(), sys.Method.Name)
	}
	in := make([]reflect.Value, len(converted)+1)
	in[0] = sys.Instance
	copy(in[1:], converted)
	out := sys.Method.Func.Call(in)
	if len(out) > 0 && out[0].Type().ConvertibleTo(uint64Type) {
		return out[0].Convert(uint64Type).Uint(), nil
	}
	return 0, nil
}
