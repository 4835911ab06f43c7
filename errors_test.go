package sdkmodel_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/reoring/sdkmodel"
	"github.com/reoring/sdkmodel/codec"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := sdkmodel.Issues{
		{Path: "/a", Code: sdkmodel.CodeRequired},
		{Path: "/b", Code: sdkmodel.CodeInvalidType},
		{Path: "/c", Code: sdkmodel.CodeInvalidEnum},
		{Path: "/d", Code: sdkmodel.CodeInvalidUnion},
	}
	want := "required at /a; invalid_type at /b; invalid_enum at /c; ... (total 4)"
	if got := iss.Error(); got != want {
		t.Fatalf("got %q", got)
	}
}

func TestIssues_ParamsAndCause(t *testing.T) {
	reg := sdkmodel.NewRegistry()
	mt := reg.Define("p", func() []sdkmodel.Field {
		return []sdkmodel.Field{
			sdkmodel.Required("Amount", sdkmodel.Int()),
			sdkmodel.Optional("On", sdkmodel.Date()),
			sdkmodel.Optional("Total", sdkmodel.Decimal()),
		}
	})
	m, _ := sdkmodel.Hydrate(context.Background(), mt, map[string]any{"amount": "5", "on": "2025-02-30", "total": "1,5"})

	_, err := m.Value("Amount")
	iss, _ := sdkmodel.AsIssues(err)
	if iss[0].Params["field"] != "Amount" || iss[0].Params["expected"] != "int" || iss[0].Params["actual"] != "string" {
		t.Fatalf("unexpected params: %v", iss[0].Params)
	}
	if iss[0].Message != "invalid type: expected int, got string" {
		t.Fatalf("unexpected message: %q", iss[0].Message)
	}

	_, err = m.Value("On")
	iss, _ = sdkmodel.AsIssues(err)
	if iss[0].Code != sdkmodel.CodeInvalidFormat || iss[0].Params["raw"] != "2025-02-30" || iss[0].Cause == nil {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}

	_, err = m.Value("Total")
	if !sdkmodel.HasCode(err, sdkmodel.CodeInvalidFormat) {
		t.Fatalf("expected invalid_format for a malformed decimal, got %v", err)
	}

	m2, _ := sdkmodel.Hydrate(context.Background(), mt, map[string]any{"amount": 1, "total": true})
	_, err = m2.Value("Total")
	if !sdkmodel.HasCode(err, sdkmodel.CodeInvalidType) {
		t.Fatalf("expected invalid_type for a bool decimal, got %v", err)
	}
	if errors.Is(err, codec.ErrNotNumeric) {
		t.Fatalf("type mismatches carry no cause")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	sdkmodel.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	defer sdkmodel.SetLogger(zerolog.Nop())

	reg := sdkmodel.NewRegistry()
	mt := reg.Define("logged", func() []sdkmodel.Field {
		return []sdkmodel.Field{sdkmodel.Required("ID", sdkmodel.String())}
	})
	_, _ = sdkmodel.Hydrate(context.Background(), mt, map[string]any{})
	out := buf.String()
	if !strings.Contains(out, `"message":"shape built"`) || !strings.Contains(out, `"message":"hydrate failed"`) {
		t.Fatalf("missing debug records: %s", out)
	}
}
