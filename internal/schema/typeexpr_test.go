package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeExpr(t *testing.T) {
	names := map[string]DeclID{"Point": 0, "Color": 1}
	resolve := func(name string) (DeclID, bool) {
		id, ok := names[name]
		return id, ok
	}

	tests := []struct {
		expr string
		want TypeRef
	}{
		{"i32", Primitive{Base: I32}},
		{"i8", Primitive{Base: Byte}},
		{"binary", Primitive{Base: Binary}},
		{"Point", Named{ID: 0}},
		{"shared.Color", Named{ID: 1}},
		{"list<string>", List{Elem: Primitive{Base: String}}},
		{"set< Color >", Set{Elem: Named{ID: 1}}},
		{
			"map<string, list<Point>>",
			Map{Key: Primitive{Base: String}, Val: List{Elem: Named{ID: 0}}},
		},
		{
			"map<map<i16,i64>,set<binary>>",
			Map{
				Key: Map{Key: Primitive{Base: I16}, Val: Primitive{Base: I64}},
				Val: Set{Elem: Primitive{Base: Binary}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseTypeExpr(tt.expr, resolve)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTypeExprErrors(t *testing.T) {
	resolve := func(string) (DeclID, bool) { return 0, false }

	for _, expr := range []string{"", "list<i32", "map<i32>", "Missing", "i32 junk", "list<>"} {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseTypeExpr(expr, resolve)
			assert.Error(t, err)
		})
	}

	_, err := ParseTypeExpr("Missing", resolve)
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestResolveTypedefChain(t *testing.T) {
	p := &Program{}
	inner := p.Add(&Typedef{Name: "Inner", Type: Primitive{Base: I64}})
	outer := p.Add(&Typedef{Name: "Outer", Type: Named{ID: inner}})
	rec := p.Add(&Record{Name: "Rec"})

	got, err := p.Resolve(Named{ID: outer})
	require.NoError(t, err)
	assert.Equal(t, Primitive{Base: I64}, got)

	got, err = p.Resolve(Named{ID: rec})
	require.NoError(t, err)
	assert.Equal(t, Named{ID: rec}, got)

	_, err = p.Resolve(Named{ID: 42})
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestResolveTypedefCycle(t *testing.T) {
	p := &Program{}
	a := &Typedef{Name: "A"}
	b := &Typedef{Name: "B"}
	ida := p.Add(a)
	idb := p.Add(b)
	a.Type = Named{ID: idb}
	b.Type = Named{ID: ida}

	_, err := p.Resolve(Named{ID: ida})
	assert.ErrorIs(t, err, ErrUnknownType)
}
