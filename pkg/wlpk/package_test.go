package wlpk

import (
	"bytes"
	"io"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadHeaderRoundTrip(t *testing.T) {
	assets := fstest.MapFS{
		"img/stand.qoi": &fstest.MapFile{Data: []byte("fake-qoi-bytes")},
	}

	p := Package{
		Manifest: Manifest{Name: "tux", Version: "1.0", Programs: 1, Actions: 1, Behaviors: 1, Assets: []string{"img/stand.qoi"}},
		Programs: []ProgramEntry{{Name: 0, Instructions: "2000", EvaluateOnce: true}},
		Actions:  jsonArray{"actions"},
		Behaviors: jsonArray{"behaviors"},
		Assets:   assets,
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p))

	name, version, tr, err := ReadHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "tux", name)
	assert.Equal(t, "1.0", version)

	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, hdr.Name)
	}
	assert.ElementsMatch(t, []string{"manifest.json", "scripts.json", "actions.json", "behaviors.json", "assets/img/stand.qoi"}, names)
}

func TestWriteRejectsOversizedName(t *testing.T) {
	longName := make([]byte, 256)
	for i := range longName {
		longName[i] = 'a'
	}
	p := Package{Manifest: Manifest{Name: string(longName)}, Actions: jsonArray{}, Behaviors: jsonArray{}}

	var buf bytes.Buffer
	err := Write(&buf, p)
	assert.Error(t, err)
}

type jsonArray []string

func (j jsonArray) MarshalJSON() ([]byte, error) {
	return []byte(`["` + string(j[0]) + `"]`), nil
}
