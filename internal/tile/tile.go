package tile

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultTexture is the albedo used when a tile has no texture of its own.
const DefaultTexture = "textures/tileMetal.png"

// Neighbor directions used with SetNeighbor.
const (
	North = iota
	East
	South
	West
)

// NoNeighbor marks an empty neighbor slot and an unassigned mesh id.
const NoNeighbor = -1

var nextID atomic.Int64

// Material is the surface description of a tile.
type Material struct {
	Kd           mgl32.Vec3
	Ks           mgl32.Vec3
	Shininess    float32
	Transparency float32
	KdTexture    string
}

// DefaultMaterial is light grey, non-specular and opaque.
func DefaultMaterial() Material {
	return Material{Kd: mgl32.Vec3{0.7, 0.7, 0.7}, Shininess: 1, Transparency: 1}
}

// Tile is an axis-aligned rectangle of ground on the plane y = Start.Y.
// Start and End are opposite corners; End.Y is ignored.
type Tile struct {
	ID       int64
	Start    mgl32.Vec3
	End      mgl32.Vec3
	Material Material

	meshID    int64
	neighbors [4]int64
}

// New returns a tile spanning start..end with the default material and a fresh id.
func New(start, end mgl32.Vec3) *Tile {
	return NewWithMaterial(start, end, DefaultMaterial())
}

// NewWithMaterial returns a tile spanning start..end with the given material.
func NewWithMaterial(start, end mgl32.Vec3, m Material) *Tile {
	return &Tile{
		ID:        nextID.Add(1) - 1,
		Start:     start,
		End:       end,
		Material:  m,
		meshID:    NoNeighbor,
		neighbors: [4]int64{NoNeighbor, NoNeighbor, NoNeighbor, NoNeighbor},
	}
}

// SetNeighbor records the tile id adjacent in direction dir. Out-of-range directions are ignored.
func (t *Tile) SetNeighbor(dir int, id int64) {
	if dir < 0 || dir >= len(t.neighbors) {
		return
	}
	t.neighbors[dir] = id
}

// Neighbor returns the tile id in direction dir, or NoNeighbor.
func (t *Tile) Neighbor(dir int) int64 {
	if dir < 0 || dir >= len(t.neighbors) {
		return NoNeighbor
	}
	return t.neighbors[dir]
}

// SetMeshID links the tile to the mesh drawn for it.
func (t *Tile) SetMeshID(id int64) { t.meshID = id }

// MeshID returns the linked mesh id, or NoNeighbor if none.
func (t *Tile) MeshID() int64 { return t.meshID }

// Texture returns the albedo texture path, falling back to DefaultTexture.
func (t *Tile) Texture() string {
	if t.Material.KdTexture != "" {
		return t.Material.KdTexture
	}
	return DefaultTexture
}

// Size returns the tile extent on X and Z (always positive).
func (t *Tile) Size() (width, depth float32) {
	return abs(t.End.X() - t.Start.X()), abs(t.End.Z() - t.Start.Z())
}

// Center returns the middle of the tile on its plane.
func (t *Tile) Center() mgl32.Vec3 {
	return t.PositionInTile(0.5, 0.5)
}

// PositionInTile maps normalized coordinates x, z in [0, 1] to a world point on
// the tile. Coordinates outside [0, 1] return Start.
func (t *Tile) PositionInTile(x, z float32) mgl32.Vec3 {
	if x < 0 || x > 1 || z < 0 || z > 1 {
		return t.Start
	}
	return mgl32.Vec3{
		t.Start.X() + x*(t.End.X()-t.Start.X()),
		t.Start.Y(),
		t.Start.Z() + z*(t.End.Z()-t.Start.Z()),
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
