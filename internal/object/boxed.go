package object

// Boxed class descriptors. A boxed numeric is an ordinary Object
// instance whose payload carries the underlying primitive, rather
// than a distinct modeled type.
const (
	IntegerClassName = "Ljava/lang/Integer;"
	LongClassName    = "Ljava/lang/Long;"
	BooleanClassName = "Ljava/lang/Boolean;"
)

// BoxInt wraps a primitive int in a java/lang/Integer instance.
func BoxInt(v int32) *Object {
	o := NewObject(IntegerClassName)
	o.Payload = HostValue{Kind: HostInt, Int: int64(v)}
	return o
}

// BoxLong wraps a primitive long in a java/lang/Long instance.
func BoxLong(v int64) *Object {
	o := NewObject(LongClassName)
	o.Payload = HostValue{Kind: HostInt, Int: v}
	return o
}

// BoxBool wraps a primitive boolean in a java/lang/Boolean instance.
func BoxBool(v bool) *Object {
	o := NewObject(BooleanClassName)
	o.Payload = HostValue{Kind: HostBool, Bool: v}
	return o
}

// UnboxInt unwraps intValue()/Integer.valueOf round-trips.
func UnboxInt(o *Object) int32 {
	if o == nil {
		return 0
	}
	return int32(o.Payload.Int)
}

// UnboxLong unwraps longValue()/Long.valueOf round-trips.
func UnboxLong(o *Object) int64 {
	if o == nil {
		return 0
	}
	return o.Payload.Int
}

// UnboxBool unwraps booleanValue()/Boolean.valueOf round-trips.
func UnboxBool(o *Object) bool {
	if o == nil {
		return false
	}
	return o.Payload.Bool
}
