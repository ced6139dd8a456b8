// Package scene keeps the named objects of the world and renders them in
// passes through a Painter. It implements envmap.SceneRenderer.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"mirror-scene/internal/envmap"
)

// Well-known object names.
const (
	Ground = "tile"
	Car    = "car"
	Robot  = "robot"
	Mirror = "mirror"
)

var (
	ErrUnknownObject = errors.New("unknown object")
	ErrDuplicate     = errors.New("duplicate object")
)

// Object is one drawable thing in the world.
type Object struct {
	Name       string
	Transform  mgl32.Mat4
	Reflective bool
	Hidden     bool
}

// Painter does the actual drawing. Begin is called once per pass before any
// Draw, End once after the last.
type Painter interface {
	Begin(p envmap.Pass)
	Draw(o *Object)
	End()
}

var _ envmap.SceneRenderer = (*Scene)(nil)

// Scene is an ordered set of objects. Not safe for concurrent use.
type Scene struct {
	painter Painter
	objects []*Object
	byName  map[string]*Object
	passes  uint64
}

func New(p Painter) *Scene {
	return &Scene{painter: p, byName: make(map[string]*Object)}
}

// Add appends an object. Names must be unique.
func (s *Scene) Add(name string, transform mgl32.Mat4, reflective bool) (*Object, error) {
	if _, ok := s.byName[name]; ok {
		return nil, fmt.Errorf("scene: %w: %s", ErrDuplicate, name)
	}
	o := &Object{Name: name, Transform: transform, Reflective: reflective}
	s.objects = append(s.objects, o)
	s.byName[name] = o
	return o, nil
}

// Object looks up an object by name.
func (s *Scene) Object(name string) (*Object, bool) {
	o, ok := s.byName[name]
	return o, ok
}

// Names returns object names in insertion order.
func (s *Scene) Names() []string {
	names := make([]string, len(s.objects))
	for i, o := range s.objects {
		names[i] = o.Name
	}
	return names
}

// SetTransform moves the named object.
func (s *Scene) SetTransform(name string, m mgl32.Mat4) error {
	o, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("scene: %w: %s", ErrUnknownObject, name)
	}
	o.Transform = m
	return nil
}

// Passes counts completed RenderPass calls.
func (s *Scene) Passes() uint64 { return s.passes }

// RenderPass draws every visible object except p.Exclude. Opaque objects are
// drawn first, reflective ones after them in insertion order.
func (s *Scene) RenderPass(p envmap.Pass) error {
	if p.Exclude != "" {
		if _, ok := s.byName[p.Exclude]; !ok {
			return fmt.Errorf("scene: exclude: %w: %s", ErrUnknownObject, p.Exclude)
		}
	}
	s.painter.Begin(p)
	defer s.painter.End()
	for _, reflective := range [2]bool{false, true} {
		for _, o := range s.objects {
			if o.Reflective != reflective || o.Hidden || o.Name == p.Exclude {
				continue
			}
			s.painter.Draw(o)
		}
	}
	s.passes++
	return nil
}

// Draw renders the main view. The eye is recovered from view.
func (s *Scene) Draw(proj, view mgl32.Mat4) error {
	return s.RenderPass(envmap.Pass{
		Face:       envmap.NoFace,
		Projection: proj,
		View:       view,
		Eye:        view.Inv().Col(3).Vec3(),
	})
}
