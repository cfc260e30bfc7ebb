package common

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lunixbochs/argjoy"

	"github.com/hobbyos/userrt/go/models"
	"github.com/hobbyos/userrt/go/models/cpu"
)

type KernelBase struct {
	Syscalls map[string]Syscall
	Mem      *cpu.Mem
	Config   *models.Config
	Argjoy   argjoy.Argjoy
}

func (k *KernelBase) Base() *KernelBase {
	return k
}

type Kernel interface {
	Base() *KernelBase
}

func camelToSnakeCase(name string) string {
	var words []string
	last := 0
	for i, c := range name {
		if unicode.IsUpper(c) {
			if i > 0 {
				words = append(words, name[last:i])
			}
			last = i
		}
	}
	words = append(words, name[last:])
	return strings.ToLower(strings.Join(words, "_"))
}

// Init builds the dispatch table from kf's exported methods. A method named
// LiteralX registers as x, for names that would clash with Go methods.
func Init(kf Kernel) {
	k := kf.Base()
	if k.Config == nil {
		k.Config = models.DefaultConfig()
	}
	k.Syscalls = make(map[string]Syscall)
	instance := reflect.ValueOf(kf)
	typ := instance.Type()
	for i := 0; i < typ.NumMethod(); i++ {
		method := typ.Method(i)
		name := method.Name
		if strings.HasPrefix(name, "Literal") {
			name = strings.Replace(name, "Literal", "", 1)
		} else if r, size := utf8.DecodeRuneInString(name); size <= 0 || !unicode.IsUpper(r) {
			continue
		}
		name = camelToSnakeCase(name)
		in := make([]reflect.Type, method.Type.NumIn()-1)
		for j := 1; j < method.Type.NumIn(); j++ {
			in[j-1] = method.Type.In(j)
		}
		out := make([]reflect.Type, method.Type.NumOut())
		for j := 0; j < method.Type.NumOut(); j++ {
			out[j] = method.Type.Out(j)
		}
		k.Syscalls[name] = Syscall{
			Name:     name,
			Kernel:   k,
			Instance: instance,
			Method:   method,
			In:       in,
			Out:      out,
		}
	}
	k.Argjoy.Register(k.wordCodec)
	k.Argjoy.Register(argjoy.IntToInt)
}

// Lookup returns the handler registered as name, initializing kf on first use.
func Lookup(kf Kernel, name string) *Syscall {
	k := kf.Base()
	if k.Syscalls == nil {
		Init(kf)
	}
	if sys, ok := k.Syscalls[name]; ok {
		return &sys
	}
	return nil
}
