package schema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thriftrs/rsgen/internal/schema"
)

const tutorialYAML = `
name: tutorial
typedefs:
  - {name: MyInteger, type: i32}
enums:
  - name: Operation
    members:
      - {name: ADD, value: 1}
      - {name: SUBTRACT, value: 2}
      - {name: DIVIDE, value: 4}
records:
  - name: Work
    fields:
      - {id: 1, name: num1, type: i32}
      - {id: 2, name: num2, type: i32}
      - {id: 3, name: op, type: Operation}
      - {id: 4, name: comment, type: string}
  - name: InvalidOperation
    exception: true
    fields:
      - {id: 1, name: whatOp, type: i32}
      - {id: 2, name: why, type: string}
services:
  - name: Calculator
    methods:
      - name: calculate
        returns: i32
        args:
          - {id: 1, name: logid, type: i32}
          - {id: 2, name: w, type: Work}
        throws: [InvalidOperation]
      - name: zip
        oneway: true
`

func TestLoadYAML(t *testing.T) {
	prog, err := schema.Load(strings.NewReader(tutorialYAML), "yaml")
	require.NoError(t, err)

	assert.Equal(t, "tutorial", prog.Name)
	require.Len(t, prog.Typedefs(), 1)
	require.Len(t, prog.Enums(), 1)
	require.Len(t, prog.Records(), 2)
	require.Len(t, prog.Services(), 1)

	op := prog.Enums()[0]
	assert.Equal(t, []schema.EnumMember{
		{Name: "ADD", Value: 1},
		{Name: "SUBTRACT", Value: 2},
		{Name: "DIVIDE", Value: 4},
	}, op.Members)

	work := prog.Records()[0]
	require.Len(t, work.Fields, 4)
	opID, ok := prog.Lookup("Operation")
	require.True(t, ok)
	assert.Equal(t, schema.Named{ID: opID}, work.Fields[2].Type)
	assert.True(t, prog.Records()[1].Exception)

	svc := prog.Services()[0]
	require.Len(t, svc.Methods, 2)
	calc := svc.Methods[0]
	assert.Equal(t, schema.Primitive{Base: schema.I32}, calc.Returns)
	require.Len(t, calc.Exceptions, 1)
	require.Len(t, calc.Args.Fields, 2)

	zip := svc.Methods[1]
	assert.True(t, zip.Oneway)
	assert.True(t, schema.IsVoid(zip.Returns))
	assert.Empty(t, zip.Args.Fields)
}

func TestLoadFormatsAgree(t *testing.T) {
	jsonDoc := `{"name":"shapes","records":[{"name":"Point","fields":[{"id":1,"name":"x","type":"double"},{"id":2,"name":"tags","type":"set<string>"}]}]}`
	tomlDoc := `
name = "shapes"

[[records]]
name = "Point"

  [[records.fields]]
  id = 1
  name = "x"
  type = "double"

  [[records.fields]]
  id = 2
  name = "tags"
  type = "set<string>"
`
	fromJSON, err := schema.Load(strings.NewReader(jsonDoc), "json")
	require.NoError(t, err)
	fromTOML, err := schema.Load(strings.NewReader(tomlDoc), "toml")
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromTOML)
}

func TestLoadFileDefaultsName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shared.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"typedefs":[{"name":"Id","type":"i64"}]}`), 0o644))

	prog, err := schema.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "shared", prog.Name)
}

func TestLoadUnresolved(t *testing.T) {
	doc := `{"records":[{"name":"A","fields":[{"id":1,"name":"b","type":"list<B>"}]}]}`
	_, err := schema.Load(strings.NewReader(doc), "json")
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnresolved)
	assert.Contains(t, err.Error(), "record A")
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := schema.Load(strings.NewReader("{}"), "xml")
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "yaml", schema.FormatFromPath("a.yml"))
	assert.Equal(t, "yaml", schema.FormatFromPath("a.YAML"))
	assert.Equal(t, "toml", schema.FormatFromPath("a.toml"))
	assert.Equal(t, "json", schema.FormatFromPath("a.json"))
	assert.Equal(t, "json", schema.FormatFromPath("a"))
}

func TestLoadFieldIDRange(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
		want    int16
	}{
		{"max", "32767", false, 32767},
		{"min", "-32768", false, -32768},
		{"above", "40000", true, 0},
		{"below", "-40000", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"name":"ids","records":[{"name":"R","fields":[{"id":` + tt.id + `,"name":"f","type":"i32"}]}]}`
			prog, err := schema.Load(strings.NewReader(doc), "json")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "out of range")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, prog.Records()[0].Fields[0].ID)
		})
	}

	doc := `{"name":"ids","services":[{"name":"S","methods":[{"name":"m","args":[{"id":70000,"name":"a","type":"i32"}]}]}]}`
	_, err := schema.Load(strings.NewReader(doc), "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "method m")
}
