package rust

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thriftrs/rsgen/internal/log"
	"github.com/thriftrs/rsgen/internal/schema"
)

const testPreamble = `///////////////////////////////////////////////////////////////
// Autogenerated by rsgen (0.0.1-dev)
//
// DO NOT EDIT UNLESS YOU ARE SURE YOU KNOW WHAT YOU ARE DOING
///////////////////////////////////////////////////////////////

#[allow(unused_imports)]
use std::collections::{HashMap, HashSet};

`

// testEmitter returns an emitter writing to memory and a function returning
// everything written after the preamble.
func testEmitter(t *testing.T, prog *schema.Program) (*Emitter, func() string) {
	t.Helper()

	var buf strings.Builder
	out, err := NewOutput(&buf, prog.Name, nil)
	require.NoError(t, err)

	body := func() string {
		t.Helper()
		require.NoError(t, out.Close())
		s := buf.String()
		require.True(t, strings.HasPrefix(s, testPreamble), "missing preamble:\n%s", s)
		return strings.TrimPrefix(s, testPreamble)
	}
	return NewEmitter(log.Discard(), prog, out), body
}

// structNames lists the names of the pub struct declarations in src, in order.
func structNames(src string) []string {
	var names []string
	for _, line := range strings.Split(src, "\n") {
		if !strings.HasPrefix(line, "pub struct ") {
			continue
		}
		rest := strings.TrimPrefix(line, "pub struct ")
		end := strings.IndexAny(rest, " ;")
		names = append(names, rest[:end])
	}
	return names
}

func prim(b schema.BaseType) schema.TypeRef { return schema.Primitive{Base: b} }
