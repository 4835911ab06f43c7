package schemafile_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/sdkmodel"
	"github.com/reoring/sdkmodel/schemafile"
)

func TestLoadFile_Banking(t *testing.T) {
	s, err := schemafile.LoadFile(filepath.Join("testdata", "banking.yaml"), nil)
	require.NoError(t, err)

	transfer, ok := s.Model("ach_transfer")
	require.True(t, ok)
	shape := transfer.Shape()
	require.Equal(t, 7, shape.Len())

	f, _, ok := shape.Lookup("ReturnOf")
	require.True(t, ok)
	require.Equal(t, "return_of_transfer", f.WireKey)
	require.True(t, f.Nullable)
	require.Same(t, transfer, f.Type.Model())

	f, _, ok = shape.Lookup("created_at")
	require.True(t, ok)
	require.Equal(t, sdkmodel.KindDateTime, f.Type.Kind())

	page, ok := s.Model("transfer_page")
	require.True(t, ok)
	data, _, _ := page.Shape().Lookup("Data")
	require.Equal(t, "list<model(ach_transfer)>", data.Type.String())
}

func TestLoad_HydratesLoadedModels(t *testing.T) {
	s, err := schemafile.LoadFile(filepath.Join("testdata", "banking.yaml"), nil)
	require.NoError(t, err)
	page, _ := s.Model("transfer_page")

	raw := map[string]any{
		"data": []any{
			map[string]any{"id": "ach_1", "amount": 500, "status": "pending", "created_at": "2025-01-01T00:00:00Z"},
		},
		"next_cursor": nil,
	}
	m, err := sdkmodel.Hydrate(context.Background(), page, raw)
	require.NoError(t, err)
	items, err := sdkmodel.List[sdkmodel.Model](m, "Data")
	require.NoError(t, err)
	require.Len(t, items, 1)
	amount, err := sdkmodel.Get[int64](items[0], "Amount")
	require.NoError(t, err)
	require.EqualValues(t, 500, amount)

	out, err := sdkmodel.Encode(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, raw, out)
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown yaml key": `
models:
  a:
    fields:
      - {name: ID, type: string, requird: true}
`,
		"undeclared enum": `
models:
  a:
    fields:
      - {name: Status, type: "enum:nope"}
`,
		"unknown model": `
models:
  a:
    fields:
      - {name: Child, type: "model:b"}
`,
		"bad type": `
models:
  a:
    fields:
      - {name: ID, type: uuid}
`,
		"duplicate wire key": `
models:
  a:
    fields:
      - {name: AccountID, type: string}
      - {name: Other, type: string, key: account_id}
`,
		"no fields": `
models:
  a: {}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := schemafile.Load([]byte(doc), nil)
			require.Error(t, err)
		})
	}
}

func TestLoad_ReferencesExistingRegistry(t *testing.T) {
	reg := sdkmodel.NewRegistry()
	reg.Define("money", func() []sdkmodel.Field {
		return []sdkmodel.Field{sdkmodel.Required("Value", sdkmodel.Decimal())}
	})
	s, err := schemafile.Load([]byte(`
models:
  invoice:
    fields:
      - {name: Total, type: "model:money", required: true}
`), reg)
	require.NoError(t, err)
	inv, _ := s.Model("invoice")
	f, _, _ := inv.Shape().Lookup("Total")
	money, _ := reg.Lookup("money")
	require.Same(t, money, f.Type.Model())
}

func TestParseType(t *testing.T) {
	enums := map[string]sdkmodel.EnumType{"s": sdkmodel.NewEnum("s", "a", "b")}
	for expr, want := range map[string]string{
		"string":             "string",
		"integer":            "int",
		"decimal":            "decimal",
		"date":               "date",
		"enum:s":             "enum(s)",
		"union:x":            "union(x)",
		"list<list<string>>": "list<list<string>>",
		" list<model:card> ": "list<model(card)>",
	} {
		got, err := schemafile.ParseType(expr, enums)
		require.NoError(t, err, expr)
		require.Equal(t, want, got.String(), expr)
	}
	_, err := schemafile.ParseType("list<>", enums)
	require.Error(t, err)
}
