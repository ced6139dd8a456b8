package bezier

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// segmentDef is the YAML form of one segment (e.g. assets/paths/loop.yaml).
type segmentDef struct {
	P0 []float32 `yaml:"p0"`
	P1 []float32 `yaml:"p1"`
	P2 []float32 `yaml:"p2"`
	P3 []float32 `yaml:"p3"`
}

type pathDef struct {
	Segments []segmentDef `yaml:"segments"`
}

// ParseSegments decodes a YAML document of the form
//
//	segments:
//	  - {p0: [x, y, z], p1: [...], p2: [...], p3: [...]}
//
// Every control point must have exactly three coordinates.
func ParseSegments(data []byte) ([]CubicBezier, error) {
	var def pathDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("bezier: %w", err)
	}
	out := make([]CubicBezier, 0, len(def.Segments))
	for i, s := range def.Segments {
		var seg CubicBezier
		for _, pt := range []struct {
			name string
			src  []float32
			dst  *mgl32.Vec3
		}{
			{"p0", s.P0, &seg.P0},
			{"p1", s.P1, &seg.P1},
			{"p2", s.P2, &seg.P2},
			{"p3", s.P3, &seg.P3},
		} {
			if len(pt.src) != 3 {
				return nil, fmt.Errorf("bezier: segment %d %s: want 3 coordinates, got %d", i, pt.name, len(pt.src))
			}
			*pt.dst = mgl32.Vec3{pt.src[0], pt.src[1], pt.src[2]}
		}
		out = append(out, seg)
	}
	return out, nil
}

// LoadSegments reads and parses a YAML path file.
func LoadSegments(path string) ([]CubicBezier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bezier: %w", err)
	}
	return ParseSegments(data)
}

// MarshalSegments encodes segs in the format read by ParseSegments.
func MarshalSegments(segs []CubicBezier) ([]byte, error) {
	def := pathDef{Segments: make([]segmentDef, 0, len(segs))}
	for _, s := range segs {
		def.Segments = append(def.Segments, segmentDef{
			P0: s.P0[:], P1: s.P1[:], P2: s.P2[:], P3: s.P3[:],
		})
	}
	return yaml.Marshal(def)
}
