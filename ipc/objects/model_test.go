package objects

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocIDEncodesKindAndIncrementsPerKind(t *testing.T) {
	tbl := New()

	s1 := tbl.AllocID(KindSelection)
	s2 := tbl.AllocID(KindSelection)
	i1 := tbl.AllocID(KindImport)

	assert.Equal(t, KindSelection|1, s1)
	assert.Equal(t, KindSelection|2, s2)
	assert.Equal(t, KindImport|1, i1)
}

func TestPutGetRemove(t *testing.T) {
	tbl := New()
	env := &Environment{ID: 7, Name: "desktop", Mascots: map[uint32]*Mascot{}}
	tbl.Put(env)

	got, ok := tbl.Get(7)
	require.True(t, ok)
	assert.Same(t, env, got)

	require.NoError(t, tbl.Remove(7))
	_, ok = tbl.Get(7)
	assert.False(t, ok)
}

func TestRemoveClosesOwnedFD(t *testing.T) {
	tbl := New()
	f, err := os.CreateTemp(t.TempDir(), "import")
	require.NoError(t, err)

	imp := &Import{ID: 42, FD: f}
	tbl.Put(imp)

	require.NoError(t, tbl.Remove(42))
	assert.Nil(t, imp.FD)
	assert.Error(t, f.Close(), "fd should already be closed by Remove")
}

func TestRemoveMissingIDIsNoop(t *testing.T) {
	tbl := New()
	assert.NoError(t, tbl.Remove(999))
}

func TestPrototypeCloseClosesBothFDs(t *testing.T) {
	f1, err := os.CreateTemp(t.TempDir(), "def")
	require.NoError(t, err)
	f2, err := os.CreateTemp(t.TempDir(), "icon")
	require.NoError(t, err)

	p := &Prototype{ID: 1, FD: f1, IconFD: f2}
	require.NoError(t, p.Close())
	assert.Nil(t, p.FD)
	assert.Nil(t, p.IconFD)
}
