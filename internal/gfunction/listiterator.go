package gfunction

import "github.com/fatalSec/DaliVM/internal/object"

// ArrayListClassName is the descriptor for mocked java/util/ArrayList
// instances, backed by a HostList payload rather than a modeled
// internal array + size pair.
const ArrayListClassName = "Ljava/util/ArrayList;"

// IteratorClassName is the descriptor for the cursor object
// ArrayList.iterator() returns: a HostIterator payload holding the
// same backing slice as its source list plus a position.
const IteratorClassName = "Ljava/util/Iterator;"

// LoadListIterator registers a minimal java/util/List and
// java/util/Iterator surface: add/get/size/isEmpty plus a real
// index-cursor iterator(), enough for the typical "collect decrypted
// chars into a list, then iterate to join" pattern string decryptors
// use.
func LoadListIterator(r *Registry) {
	r.RegisterFactory(ArrayListClassName, func(args []object.Value) *object.Object {
		o := object.NewObject(ArrayListClassName)
		o.Payload = object.HostValue{Kind: object.HostList}
		return o
	})
	r.RegisterVirtual(ArrayListClassName+"-><init>()V", noOpInit)

	r.RegisterVirtual(ArrayListClassName+"->add(Ljava/lang/Object;)Z", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		recv := args[0].Obj
		v := args[1]
		recv.Payload.List = append(recv.Payload.List, &v)
		return object.Bool(true), nil
	})

	r.RegisterVirtual(ArrayListClassName+"->get(I)Ljava/lang/Object;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		recv := args[0].Obj
		idx := int(args[1].I32)
		if idx < 0 || idx >= len(recv.Payload.List) {
			return object.Value{}, indexOutOfBounds("ArrayList.get", idx)
		}
		return *recv.Payload.List[idx], nil
	})

	r.RegisterVirtual(ArrayListClassName+"->size()I", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return object.Int32(int32(len(args[0].Obj.Payload.List))), nil
	})

	r.RegisterVirtual(ArrayListClassName+"->isEmpty()Z", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return object.Bool(len(args[0].Obj.Payload.List) == 0), nil
	})

	r.RegisterVirtual(ArrayListClassName+"->iterator()Ljava/util/Iterator;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		it := object.NewObject(IteratorClassName)
		it.Payload = object.HostValue{Kind: object.HostIterator, List: args[0].Obj.Payload.List}
		return object.ObjectVal(it), nil
	})

	r.RegisterVirtual(IteratorClassName+"->hasNext()Z", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		p := args[0].Obj.Payload
		return object.Bool(int(p.Int) < len(p.List)), nil
	})

	r.RegisterVirtual(IteratorClassName+"->next()Ljava/lang/Object;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		recv := args[0].Obj
		cursor := int(recv.Payload.Int)
		if cursor >= len(recv.Payload.List) {
			return object.Value{}, indexOutOfBounds("Iterator.next", cursor)
		}
		v := recv.Payload.List[cursor]
		recv.Payload.Int = int64(cursor + 1)
		return *v, nil
	})
}
