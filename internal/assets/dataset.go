// Package assets loads and caches terrain datasets.
//
// A dataset is a JSON document holding flat vertex and index buffers:
//
//	{"vertices": [x0, y0, z0, x1, ...], "indices": [i0, i1, i2, ...], "up_axis": "y"}
//
// up_axis is optional; files without it take the axis of the scene that
// opens them. The loader only checks that indices fit in uint32. Buffer
// lengths and index ranges are validated by terrain.BuildMesh.
package assets

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	gomath "math"
	"os"

	"github.com/Faultbox/terrain-viewer/internal/engine/terrain"
)

// Dataset is a static mesh as stored on disk.
type Dataset struct {
	Vertices []float32
	Indices  []uint32
	UpAxis   *terrain.Axis // nil when the file does not declare one
}

type datasetJSON struct {
	Vertices []float64 `json:"vertices"`
	Indices  []int64   `json:"indices"`
	UpAxis   string    `json:"up_axis,omitempty"`
}

// Decode reads a dataset from r.
func Decode(r io.Reader) (*Dataset, error) {
	var raw datasetJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}

	d := &Dataset{
		Vertices: make([]float32, len(raw.Vertices)),
		Indices:  make([]uint32, len(raw.Indices)),
	}
	for i, v := range raw.Vertices {
		d.Vertices[i] = float32(v)
	}
	for i, idx := range raw.Indices {
		if idx < 0 || idx > gomath.MaxUint32 {
			return nil, &terrain.InvalidGeometryError{Reason: fmt.Sprintf("index value %d out of uint32 range", idx), Index: i}
		}
		d.Indices[i] = uint32(idx)
	}
	if raw.UpAxis != "" {
		axis, err := terrain.ParseAxis(raw.UpAxis)
		if err != nil {
			return nil, err
		}
		d.UpAxis = &axis
	}
	return d, nil
}

// Encode writes d to w as JSON.
func Encode(w io.Writer, d *Dataset) error {
	raw := datasetJSON{
		Vertices: make([]float64, len(d.Vertices)),
		Indices:  make([]int64, len(d.Indices)),
	}
	for i, v := range d.Vertices {
		raw.Vertices[i] = float64(v)
	}
	for i, idx := range d.Indices {
		raw.Indices[i] = int64(idx)
	}
	if d.UpAxis != nil {
		raw.UpAxis = d.UpAxis.String()
	}
	if err := json.NewEncoder(w).Encode(&raw); err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	return nil
}

// Load reads a dataset file.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	d, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Save writes d to path, replacing any existing file.
func Save(path string, d *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := Encode(w, d); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing dataset: %w", err)
	}
	return f.Close()
}

// FromGeometry wraps generated geometry for export, recording its
// elevation axis. UVs are not stored.
func FromGeometry(g *terrain.Geometry, up terrain.Axis) *Dataset {
	return &Dataset{Vertices: g.Vertices, Indices: g.Indices, UpAxis: &up}
}

// Mesh builds a render-ready mesh from the dataset. A declared axis
// overrides any WithUpAxis in opts.
func (d *Dataset) Mesh(opts ...terrain.BuildOption) (*terrain.Mesh, error) {
	if d.UpAxis != nil {
		opts = append(opts, terrain.WithUpAxis(*d.UpAxis))
	}
	return terrain.BuildMesh(d.Vertices, d.Indices, opts...)
}
