// Package sdkmodel is the model runtime behind generated REST API clients:
// declared shapes, lazily coerced instances and shape-driven encoding.
//
// - Field/Shape/Registry describe each model once (wire key, local name, type tag, required)
// - Hydrate/Unmarshal turn decoded responses into Models; values are coerced on first read and memoized
// - Encode/Marshal turn Models into request bodies, omitting unset optional fields
// - With and Model.With build instances without a payload; every With returns a new Model
// - Failures are Issues (JSON Pointer over wire keys, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put token-level helpers under internal/.
// - Place the fluent builder under dsl/, codecs under codec/, schema loaders under schemafile/ and openapi/, and the CLI under cmd/sdkmodel.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	var Transfer = sdkmodel.Define("ach_transfer", func() []sdkmodel.Field {
//		return []sdkmodel.Field{
//			sdkmodel.Required("ID", sdkmodel.String()),
//			sdkmodel.Required("Amount", sdkmodel.Int()),
//			sdkmodel.Optional("Note", sdkmodel.String()),
//		}
//	})
//
//	m, err := sdkmodel.Unmarshal(ctx, Transfer, body)
//	amount, err := sdkmodel.Get[int64](m, "Amount")
//	out, err := sdkmodel.Marshal(ctx, m.With("Note", "hi"))
package sdkmodel
