package sdkmodel_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/sdkmodel"
)

type status string

const (
	statusPending status = "pending"
	statusSettled status = "settled"
)

var statuses = sdkmodel.NewEnum("status", statusPending, statusSettled)

// fixture declares a small schema in a private registry.
type fixture struct {
	reg      *sdkmodel.Registry
	transfer *sdkmodel.ModelType
	item     *sdkmodel.ModelType
	batch    *sdkmodel.ModelType
}

func newFixture() fixture {
	reg := sdkmodel.NewRegistry()
	f := fixture{reg: reg}
	f.transfer = reg.Define("transfer", func() []sdkmodel.Field {
		return []sdkmodel.Field{
			sdkmodel.Required("ID", sdkmodel.String()),
			sdkmodel.Required("Amount", sdkmodel.Int()),
			sdkmodel.Optional("Note", sdkmodel.String()),
		}
	})
	f.item = reg.Define("item", func() []sdkmodel.Field {
		return []sdkmodel.Field{
			sdkmodel.Required("Amount", sdkmodel.Int()),
			sdkmodel.Optional("Status", sdkmodel.EnumOf(statuses)),
			sdkmodel.Optional("At", sdkmodel.DateTime()),
		}
	})
	f.batch = reg.Define("batch", func() []sdkmodel.Field {
		return []sdkmodel.Field{
			sdkmodel.Required("BatchID", sdkmodel.String()),
			sdkmodel.Required("Items", sdkmodel.ListOf(sdkmodel.ModelOf(f.item))),
			sdkmodel.Optional("Parent", sdkmodel.Ref("batch")).AllowNull(),
			sdkmodel.Optional("Primary", sdkmodel.UnionOf(f.item)),
			sdkmodel.Optional("Tags", sdkmodel.ListOf(sdkmodel.String())),
		}
	})
	return f
}

func TestScenario_TransferWithNote(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	raw := map[string]any{"id": "ach_123", "amount": 500}
	m, err := sdkmodel.Hydrate(ctx, f.transfer, raw)
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	out, err := sdkmodel.Encode(ctx, m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if d := cmp.Diff(map[string]any{"id": "ach_123", "amount": 500}, out); d != "" {
		t.Fatalf("encode (-want +got):\n%s", d)
	}

	noted := m.With("Note", "hi")
	out, err = sdkmodel.Encode(ctx, noted)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if d := cmp.Diff(map[string]any{"id": "ach_123", "amount": 500, "note": "hi"}, out); d != "" {
		t.Fatalf("encode with note (-want +got):\n%s", d)
	}
}

func TestRoundTrip_NestedListUnionAndNull(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	raw := map[string]any{
		"batch_id": "b_1",
		"items": []any{
			map[string]any{"amount": json.Number("1"), "status": "pending"},
			map[string]any{"amount": json.Number("2"), "at": "2025-01-01T00:00:00+02:00"},
		},
		"parent":  nil,
		"primary": map[string]any{"amount": json.Number("3"), "status": "settled"},
		"tags":    []any{},
	}
	m, err := sdkmodel.Hydrate(ctx, f.batch, raw)
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	out, err := sdkmodel.Encode(ctx, m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if d := cmp.Diff(raw, out); d != "" {
		t.Fatalf("round trip (-want +got):\n%s", d)
	}

	tags, err := sdkmodel.List[string](m, "Tags")
	if err != nil || tags == nil || len(tags) != 0 {
		t.Fatalf("empty list must stay an empty list, got %#v %v", tags, err)
	}
}

func TestOptionalOmission_WithRequiredOnly(t *testing.T) {
	f := newFixture()
	m, err := sdkmodel.With(f.transfer, sdkmodel.Values{"ID": "ach_1", "Amount": int64(10)})
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	out, err := sdkmodel.Encode(context.Background(), m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, present := out["note"]; present {
		t.Fatalf("unset optional emitted: %v", out)
	}
	note, ok, err := sdkmodel.Lookup[string](m, "Note")
	if note != "" || ok || err != nil {
		t.Fatalf("unset optional should read as absent: %q %v %v", note, ok, err)
	}
}

func TestRequiredEnforcement(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := sdkmodel.Hydrate(ctx, f.transfer, map[string]any{"amount": 1})
	iss, ok := sdkmodel.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != sdkmodel.CodeRequired || iss[0].Path != "/id" {
		t.Fatalf("expected required at /id, got %v", err)
	}

	_, err = sdkmodel.With(f.transfer, sdkmodel.Values{"Note": "x"})
	iss, _ = sdkmodel.AsIssues(err)
	if len(iss) != 2 || iss[0].Path != "/amount" || iss[1].Path != "/id" {
		t.Fatalf("expected required issues for amount and id, got %v", err)
	}

	_, err = sdkmodel.With(f.transfer, sdkmodel.Values{"ID": "x", "Amount": 1, "Memo": "y"})
	if !sdkmodel.HasCode(err, sdkmodel.CodeUnknownKey) {
		t.Fatalf("expected unknown_key, got %v", err)
	}

	// an incomplete instance reports uninitialized on read and on encode
	blank := sdkmodel.New(f.transfer)
	if _, err := sdkmodel.Get[string](blank, "ID"); !sdkmodel.HasCode(err, sdkmodel.CodeUninitialized) {
		t.Fatalf("expected uninitialized, got %v", err)
	}
	if _, err := sdkmodel.Encode(ctx, blank); !sdkmodel.HasCode(err, sdkmodel.CodeUninitialized) {
		t.Fatalf("expected uninitialized on encode, got %v", err)
	}
	var zero sdkmodel.Model
	if _, err := zero.Value("ID"); !sdkmodel.HasCode(err, sdkmodel.CodeUninitialized) {
		t.Fatalf("zero model should be uninitialized, got %v", err)
	}
	if !blank.With("ID", "a").With("Amount", 1).Complete() {
		t.Fatalf("chained With should complete the instance")
	}
}

func TestImmutability(t *testing.T) {
	f := newFixture()
	a := sdkmodel.MustWith(f.transfer, sdkmodel.Values{"ID": "x", "Amount": 1})
	b := a.With("Amount", 2)

	av, _ := sdkmodel.Get[int64](a, "Amount")
	bv, _ := sdkmodel.Get[int64](b, "Amount")
	if av != 1 || bv != 2 {
		t.Fatalf("a=%d b=%d", av, bv)
	}
	c := b.Unset("Note").With("Note", "n")
	if a.Has("Note") || b.Has("Note") || !c.Has("note") {
		t.Fatalf("unexpected presence a=%v b=%v c=%v", a.Has("Note"), b.Has("Note"), c.Has("note"))
	}
	if c.Unset("Note").Has("Note") {
		t.Fatalf("Unset did not clear the field")
	}
}

func TestEnumStrictness(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	m, err := sdkmodel.Hydrate(ctx, f.item, map[string]any{"amount": 1, "status": "lost"})
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	_, err = sdkmodel.Get[status](m, "Status")
	iss, _ := sdkmodel.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != sdkmodel.CodeInvalidEnum || iss[0].Path != "/status" {
		t.Fatalf("expected invalid_enum at /status, got %v", err)
	}

	typed := m.With("Status", statusSettled)
	got, err := sdkmodel.Get[status](typed, "Status")
	if err != nil || got != statusSettled {
		t.Fatalf("typed member should pass through: %q %v", got, err)
	}
	out, err := sdkmodel.Encode(ctx, typed)
	if err != nil || out["status"] != "settled" {
		t.Fatalf("enum must encode as its wire string: %v %v", out, err)
	}

	m2, _ := sdkmodel.Hydrate(ctx, f.item, map[string]any{"amount": 1, "status": 7})
	if _, err := m2.Value("Status"); !sdkmodel.HasCode(err, sdkmodel.CodeInvalidType) {
		t.Fatalf("non-string enum input should be invalid_type, got %v", err)
	}
}

func TestCoercionErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	m, err := sdkmodel.Hydrate(ctx, f.batch, map[string]any{
		"batch_id": "b",
		"items": []any{
			map[string]any{"amount": 1},
			map[string]any{"amount": "two", "at": "yesterday"},
		},
		"primary": "nope",
	})
	if err != nil {
		t.Fatalf("hydrate should defer value checks: %v", err)
	}
	err = m.Validate()
	iss, ok := sdkmodel.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	got := map[string]string{}
	for _, it := range iss {
		got[it.Path] = it.Code
	}
	want := map[string]string{
		"/items/1/amount": sdkmodel.CodeInvalidType,
		"/items/1/at":     sdkmodel.CodeInvalidFormat,
		"/primary":        sdkmodel.CodeInvalidUnion,
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("issues (-want +got):\n%s", d)
	}

	// fail-fast stops at the first issue
	ff, _ := sdkmodel.Hydrate(sdkmodel.WithFailFast(ctx, true), f.batch, map[string]any{
		"batch_id": "b",
		"items":    []any{map[string]any{"amount": "x"}, map[string]any{"amount": "y"}},
	})
	if iss, _ := sdkmodel.AsIssues(ff.Validate()); len(iss) != 1 {
		t.Fatalf("fail-fast should report one issue, got %v", iss)
	}

	// a null in a non-nullable field is a type mismatch
	nm, _ := sdkmodel.Hydrate(ctx, f.transfer, map[string]any{"id": "a", "amount": 1, "note": nil})
	if _, err := nm.Value("Note"); !sdkmodel.HasCode(err, sdkmodel.CodeInvalidType) {
		t.Fatalf("expected invalid_type for null, got %v", err)
	}
	if !nm.IsNull("note") {
		t.Fatalf("explicit null should be visible")
	}
}

func TestIntCoercion(t *testing.T) {
	f := newFixture()
	for _, raw := range []any{500, int64(500), json.Number("500"), float64(500), uint8(200)} {
		m, err := sdkmodel.Hydrate(context.Background(), f.transfer, map[string]any{"id": "a", "amount": raw})
		if err != nil {
			t.Fatalf("hydrate %T: %v", raw, err)
		}
		if _, err := sdkmodel.Get[int64](m, "Amount"); err != nil {
			t.Fatalf("%T should coerce to int64: %v", raw, err)
		}
	}
	for _, raw := range []any{"500", 1.5, json.Number("1.5"), true,
		json.Number("9223372036854775808"), json.Number("9.223372036854775808e18"), float64(1 << 63), -1e19} {
		m, _ := sdkmodel.Hydrate(context.Background(), f.transfer, map[string]any{"id": "a", "amount": raw})
		if _, err := sdkmodel.Get[int64](m, "Amount"); !sdkmodel.HasCode(err, sdkmodel.CodeInvalidType) {
			t.Fatalf("%T(%v) should be invalid_type, got %v", raw, raw, err)
		}
	}
}

func TestDateTimeCoercion(t *testing.T) {
	f := newFixture()
	m, _ := sdkmodel.Hydrate(context.Background(), f.item, map[string]any{"amount": 1, "at": "2025-01-01T12:00:00.25+01:00"})
	at, err := sdkmodel.Get[time.Time](m, "at")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !at.Equal(time.Date(2025, 1, 1, 11, 0, 0, 25e7, time.UTC)) {
		t.Fatalf("unexpected time %v", at)
	}

	built := m.With("At", time.Date(2025, 6, 1, 0, 0, 0, 0, time.FixedZone("x", 3600)))
	out, err := sdkmodel.Encode(context.Background(), built)
	if err != nil || out["at"] != "2025-05-31T23:00:00Z" {
		t.Fatalf("typed time should encode canonically: %v %v", out, err)
	}
}

func TestUnknownPolicy(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	raw := map[string]any{"id": "a", "amount": 1, "zzz": true, "yyy": "x"}

	m, err := sdkmodel.Hydrate(ctx, f.transfer, raw)
	if err != nil {
		t.Fatalf("strip: %v", err)
	}
	out, _ := sdkmodel.Encode(ctx, m)
	if len(out) != 2 {
		t.Fatalf("strip should drop unknown keys: %v", out)
	}

	_, err = sdkmodel.Hydrate(ctx, f.transfer, raw, sdkmodel.DecodeOpt{Unknown: sdkmodel.UnknownStrict})
	iss, _ := sdkmodel.AsIssues(err)
	if len(iss) != 2 || iss[0].Path != "/yyy" || iss[1].Path != "/zzz" {
		t.Fatalf("strict should report sorted unknown keys, got %v", err)
	}

	m, err = sdkmodel.Hydrate(ctx, f.transfer, raw, sdkmodel.DecodeOpt{Unknown: sdkmodel.UnknownPassthrough})
	if err != nil {
		t.Fatalf("passthrough: %v", err)
	}
	if d := cmp.Diff([]string{"yyy", "zzz"}, m.ExtraKeys()); d != "" {
		t.Fatalf("extra keys (-want +got):\n%s", d)
	}
	out, _ = sdkmodel.Encode(ctx, m)
	if d := cmp.Diff(raw, out); d != "" {
		t.Fatalf("passthrough round trip (-want +got):\n%s", d)
	}

	// local names are not wire keys
	_, err = sdkmodel.Hydrate(ctx, f.transfer, map[string]any{"id": "a", "amount": 1, "Note": "x"}, sdkmodel.DecodeOpt{Unknown: sdkmodel.UnknownStrict})
	if !sdkmodel.HasCode(err, sdkmodel.CodeUnknownKey) {
		t.Fatalf("local name on the wire should be unknown, got %v", err)
	}
}

func TestPresence(t *testing.T) {
	f := newFixture()
	m, _ := sdkmodel.Hydrate(context.Background(), f.batch, map[string]any{
		"batch_id": "b",
		"items":    []any{map[string]any{"amount": 1}},
		"parent":   nil,
	})
	if p := m.Presence("Parent"); p&sdkmodel.PresenceSeen == 0 || p&sdkmodel.PresenceWasNull == 0 {
		t.Fatalf("parent presence = %b", p)
	}
	if p := m.Presence("Tags"); p != 0 {
		t.Fatalf("unset field presence = %b", p)
	}
	if p := m.With("Tags", []string{"x"}).Presence("tags"); p != sdkmodel.PresenceSet {
		t.Fatalf("built field presence = %b", p)
	}
	pm := m.PresenceMap()
	for _, ptr := range []string{"/", "/batch_id", "/items", "/items/0", "/items/0/amount", "/parent"} {
		if pm[ptr]&sdkmodel.PresenceSeen == 0 {
			t.Fatalf("%s not marked seen in %v", ptr, pm)
		}
	}
}

func TestUnmarshalMarshal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	m, err := sdkmodel.Unmarshal(ctx, f.transfer, []byte(`{"id":"ach_1","amount":500}`))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	b, err := sdkmodel.Marshal(ctx, m.With("Note", "hi"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"amount":500,"id":"ach_1","note":"hi"}` {
		t.Fatalf("unexpected bytes: %s", b)
	}

	_, err = sdkmodel.Unmarshal(ctx, f.transfer, []byte(`[1,2]`))
	if !sdkmodel.HasCode(err, sdkmodel.CodeInvalidType) {
		t.Fatalf("expected invalid_type for a non-object, got %v", err)
	}
	_, err = sdkmodel.Unmarshal(ctx, f.transfer, []byte(`{"id":`))
	if !sdkmodel.HasCode(err, sdkmodel.CodeParseError) {
		t.Fatalf("expected parse_error, got %v", err)
	}
	_, err = sdkmodel.Unmarshal(ctx, f.transfer, []byte(`{"id":"a","amount":1,"amount":2}`),
		sdkmodel.DecodeOpt{Strictness: sdkmodel.Strictness{OnDuplicateKey: sdkmodel.Error}})
	if !sdkmodel.HasCode(err, sdkmodel.CodeDuplicateKey) {
		t.Fatalf("expected duplicate_key, got %v", err)
	}
	_, err = sdkmodel.Unmarshal(ctx, f.transfer, []byte(`{"id":"a","amount":1}`), sdkmodel.DecodeOpt{MaxBytes: 8})
	if !sdkmodel.HasCode(err, sdkmodel.CodeTruncated) {
		t.Fatalf("expected truncated, got %v", err)
	}

	dst := sdkmodel.New(f.transfer)
	if err := sdkmodel.UnmarshalInto(ctx, &dst, []byte(`{"id":"x","amount":2}`)); err != nil {
		t.Fatalf("unmarshal into: %v", err)
	}
	if id, _ := sdkmodel.Get[string](dst, "ID"); id != "x" {
		t.Fatalf("id = %q", id)
	}
	var untyped sdkmodel.Model
	if err := sdkmodel.UnmarshalInto(ctx, &untyped, []byte(`{}`)); err == nil {
		t.Fatalf("expected error for an untyped destination")
	}
}

func TestModelNestsInStructs(t *testing.T) {
	f := newFixture()
	m := sdkmodel.MustWith(f.transfer, sdkmodel.Values{"id": "a", "amount": 3})
	b, err := json.Marshal(struct {
		Transfer sdkmodel.Model `json:"transfer"`
	}{m})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"transfer":{"amount":3,"id":"a"}}` {
		t.Fatalf("unexpected bytes: %s", b)
	}
}
