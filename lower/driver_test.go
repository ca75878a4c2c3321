package lower

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glacier-ir/glacier/hir"
	"github.com/glacier-ir/glacier/lir"
)

func TestLowerModuleGolden(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "branch_loop.yaml"))
	require.NoError(t, err)

	hm, err := hir.DecodeYAML(data)
	require.NoError(t, err)

	lm, err := LowerModule(hm)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "branch_loop", []byte(lm.String()))
}

func TestLowerModuleDeclarations(t *testing.T) {
	hm := &hir.Module{
		Name: "decls",
		Funcs: []*hir.Func{
			{Name: "ext", Typ: hir.NewFunc(hir.I32, hir.I32)},
		},
		Globals: []*hir.Global{
			{Name: "g", Typ: hir.I64},
		},
	}
	lm, err := LowerModule(hm)
	require.NoError(t, err)

	f := lm.Func("ext")
	require.NotNil(t, f)
	assert.True(t, f.IsDecl())
	g := lm.Global("g")
	require.NotNil(t, g)
	assert.True(t, g.Typ.Equal(lir.I64))
}

func TestLowerModuleFailureAborts(t *testing.T) {
	entry := hir.NewBlock("entry")
	entry.Append(hir.NewGeneric("hl.bogus", nil, nil))
	hm := &hir.Module{
		Name: "bad",
		Funcs: []*hir.Func{
			{Name: "f", Typ: hir.NewFunc(hir.Void), Blocks: []*hir.Block{entry}},
		},
	}
	_, err := LowerModule(hm)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "function f")
	assert.Contains(t, err.Error(), "unsupported operation")
}
