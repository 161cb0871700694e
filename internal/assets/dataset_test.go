package assets

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
)

const quadJSON = `{
  "vertices": [0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0],
  "indices": [0, 1, 2, 2, 1, 3]
}`

func TestDecode(t *testing.T) {
	d, err := Decode(strings.NewReader(quadJSON))
	require.NoError(t, err)

	assert.Len(t, d.Vertices, 12)
	assert.Equal(t, []uint32{0, 1, 2, 2, 1, 3}, d.Indices)
	assert.Equal(t, float32(1), d.Vertices[3])
}

func TestDecodeRejectsNegativeIndex(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"vertices":[0,0,0],"indices":[0,-1,0]}`))
	require.Error(t, err)

	var geomErr *terrain.InvalidGeometryError
	require.True(t, errors.As(err, &geomErr))
	assert.Equal(t, 1, geomErr.Index)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []string{
		`not json`,
		`{"vertices":"abc"}`,
		`{"vertices":[0,0,0],"indices":[0.5]}`,
	}
	for _, in := range tests {
		_, err := Decode(strings.NewReader(in))
		assert.Error(t, err, in)
	}
}

func TestDecodeLeavesLengthChecksToBuilder(t *testing.T) {
	d, err := Decode(strings.NewReader(`{"vertices":[0,0],"indices":[]}`))
	require.NoError(t, err)

	_, err = d.Mesh()
	var geomErr *terrain.InvalidGeometryError
	assert.True(t, errors.As(err, &geomErr))
}

func TestEncodeDecode(t *testing.T) {
	g, err := terrain.Generate(terrain.GenerateOptions{
		Resolution: 4,
		Size:       12,
		Elevation:  terrain.DefaultElevation(),
		Rand:       terrain.NewRand(7),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FromGeometry(g, terrain.AxisY)))
	assert.Contains(t, buf.String(), `"up_axis":"y"`)

	d, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, g.Vertices, d.Vertices)
	assert.Equal(t, g.Indices, d.Indices)
	require.NotNil(t, d.UpAxis)
	assert.Equal(t, terrain.AxisY, *d.UpAxis)
}

func TestDecodeUpAxis(t *testing.T) {
	d, err := Decode(strings.NewReader(quadJSON))
	require.NoError(t, err)
	assert.Nil(t, d.UpAxis, "absent up_axis stays unset")

	d, err = Decode(strings.NewReader(`{"vertices":[0,0,0],"indices":[],"up_axis":"z"}`))
	require.NoError(t, err)
	require.NotNil(t, d.UpAxis)
	assert.Equal(t, terrain.AxisZ, *d.UpAxis)

	_, err = Decode(strings.NewReader(`{"vertices":[0,0,0],"indices":[],"up_axis":"w"}`))
	assert.Error(t, err)
}

func TestDeclaredAxisOverridesOption(t *testing.T) {
	up := terrain.AxisY
	d := &Dataset{
		Vertices: []float32{0, 0, 0, 4, 2, 0, 0, 0, 4},
		Indices:  []uint32{0, 1, 2},
		UpAxis:   &up,
	}
	mesh, err := d.Mesh(terrain.WithUpAxis(terrain.AxisZ))
	require.NoError(t, err)
	assert.Equal(t, terrain.AxisY, mesh.UpAxis)
	assert.Equal(t, terrain.HeightRange{Min: -1, Max: 1}, mesh.Heights)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.json")
	want := &Dataset{
		Vertices: []float32{0, 0, 0, 2, 0, 0, 0, 0, 2},
		Indices:  []uint32{0, 2, 1},
	}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	mesh, err := got.Mesh()
	require.NoError(t, err)
	assert.Equal(t, 1, mesh.TriangleCount())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
