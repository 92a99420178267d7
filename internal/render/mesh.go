package render

import (
	"fmt"
	"runtime"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"shapefield/internal/geometry"
)

// cached holds an uploaded mesh. The vertex arrays stay pinned for the mesh's
// lifetime: raylib keeps pointers to them for ray picking.
type cached struct {
	mesh   rl.Mesh
	src    geometry.Mesh
	radius float32 // unit-size bounding sphere, for picking
	pinner runtime.Pinner
}

// meshCache maps geometry keys to uploaded meshes. Meshes are built and uploaded on
// first use so GPU resources are allocated after the window/OpenGL context exists.
// Every shape of the same kind shares one unit-size mesh, scaled at draw time.
type meshCache struct {
	meshes map[string]*cached
}

func newMeshCache() *meshCache {
	return &meshCache{meshes: make(map[string]*cached)}
}

// get returns the mesh for p, building and uploading it if needed.
func (c *meshCache) get(p geometry.Params) (*cached, error) {
	key := p.Key()
	if m, ok := c.meshes[key]; ok {
		return m, nil
	}
	src, err := geometry.Build(p)
	if err != nil {
		return nil, err
	}
	if src.VertexCount() == 0 {
		return nil, fmt.Errorf("mesh %s has no vertices", key)
	}
	m := &cached{src: src, radius: src.Radius()}
	m.pinner.Pin(&src.Vertices[0])
	m.pinner.Pin(&src.Normals[0])
	m.pinner.Pin(&src.Texcoords[0])
	m.mesh = rl.Mesh{
		VertexCount:   int32(src.VertexCount()),
		TriangleCount: int32(src.TriangleCount()),
		Vertices:      unsafe.SliceData(src.Vertices),
		Normals:       unsafe.SliceData(src.Normals),
		Texcoords:     unsafe.SliceData(src.Texcoords),
	}
	rl.UploadMesh(&m.mesh, false)
	c.meshes[key] = m
	return m, nil
}

func (c *meshCache) len() int { return len(c.meshes) }

// unload frees the GPU buffers. The CPU arrays belong to Go and are only unpinned.
func (c *meshCache) unload() {
	for key, m := range c.meshes {
		m.mesh.Vertices, m.mesh.Normals, m.mesh.Texcoords = nil, nil, nil
		rl.UnloadMesh(&m.mesh)
		m.pinner.Unpin()
		delete(c.meshes, key)
	}
}
