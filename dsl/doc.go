// Package dsl provides a fluent way to declare sdkmodel model types.
//
// Overview
//   - Object(name) starts a declaration; Field(name, type) appends fields in order.
//   - Required()/Optional() end a field step; Key/Nullable/Doc refine it first.
//   - Define() registers the model (in sdkmodel.Default unless In(reg) was used).
//
// Example
//
//	transfer := dsl.Object("ach_transfer").
//	    Field("ID", sdkmodel.String()).Required().
//	    Field("Amount", sdkmodel.Int()).Required().
//	    Field("Note", sdkmodel.String()).Optional().
//	    Field("Parent", sdkmodel.Ref("ach_transfer")).Key("parent_transfer").Nullable().
//	    Define()
//
// The builder is not safe for concurrent use; the returned ModelType is.
package dsl
