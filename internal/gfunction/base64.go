package gfunction

import (
	"encoding/base64"

	"github.com/fatalSec/DaliVM/internal/object"
)

// LoadBase64 registers android.util.Base64.decode, the single most
// common primitive in real-world string-decryption routines. flags is
// accepted but ignored: decode tries the standard alphabet first and
// falls back to the URL-safe alphabet; encodeToString always uses the
// standard alphabet.
func LoadBase64(r *Registry) {
	r.RegisterStatic("Landroid/util/Base64;->decode(Ljava/lang/String;I)[B", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		s := object.GoStringFromStringObject(args[0].Obj)
		decoded, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			if alt, altErr := base64.URLEncoding.DecodeString(s); altErr == nil {
				decoded = alt
			} else {
				return object.Value{}, runtimeError("Base64.decode", "malformed base64 input")
			}
		}
		return object.ArrayVal(object.ByteArrayFromGoBytes(decoded)), nil
	})

	r.RegisterStatic("Landroid/util/Base64;->encodeToString([BI)Ljava/lang/String;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		raw := object.GoBytesFromByteArray(args[0].Arr)
		return object.ConstString(base64.StdEncoding.EncodeToString(raw)), nil
	})
}
