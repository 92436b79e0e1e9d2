package gfunction

import (
	"encoding/hex"

	"github.com/fatalSec/DaliVM/internal/object"
)

// LoadBuildConfig wires the three mock configuration values into the
// static fields and methods real obfuscated code reads to fingerprint
// its host app: Context.getPackageName(), Signature.toByteArray() and
// Signature.toCharsString() (hex of the signature bytes), and
// Build.VERSION.SDK_INT. PackageInfo objects and their fields
// (packageName, signatures) are not mocked.
func LoadBuildConfig(r *Registry, cfg PackageConfig) {
	r.RegisterStaticField("Landroid/os/Build$VERSION;", "SDK_INT", object.Int32(int32(cfg.SDKInt)))

	r.RegisterVirtual("Landroid/content/Context;->getPackageName()Ljava/lang/String;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return object.ConstString(cfg.PackageName), nil
	})

	r.RegisterVirtual("Landroid/content/pm/Signature;->toByteArray()[B", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return object.ArrayVal(object.ByteArrayFromGoBytes(cfg.SignatureBytes)), nil
	})

	r.RegisterVirtual("Landroid/content/pm/Signature;->toCharsString()Ljava/lang/String;", func(ctx *Context, args []object.Value, trace string) (object.Value, error) {
		return object.ConstString(hex.EncodeToString(cfg.SignatureBytes)), nil
	})
}
