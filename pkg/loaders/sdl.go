package loaders

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"go.uber.org/multierr"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// LoadScene reads a scene description file. Files ending in .yaml or .yml are
// decoded as YAML, everything else as scene language.
func LoadScene(filename string) (*SceneDescription, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return ParseSceneYAML(source)
	}
	return ParseScene(string(source))
}

// ParseScene parses scene language source. A syntax error stops parsing; otherwise
// every invalid object is reported. The returned error combines *ParseError values
// with go.uber.org/multierr.
func ParseScene(source string) (*SceneDescription, error) {
	entries, syntaxErr := parseSceneEntries(source)
	if syntaxErr != nil {
		return nil, syntaxErr
	}
	return buildScene(source, entries)
}

// buildScene validates entries from either scene format
func buildScene(source string, entries []sceneEntry) (*SceneDescription, error) {
	b := &sceneBuilder{source: source, desc: newSceneDescription()}
	for _, entry := range entries {
		b.addEntry(entry)
	}
	b.checkCameras()

	if len(b.errs) > 0 {
		return nil, multierr.Combine(b.errs...)
	}
	return b.desc, nil
}

// sceneBuilder validates parsed entries into a SceneDescription, collecting errors
type sceneBuilder struct {
	source  string
	desc    *SceneDescription
	errs    []error
	cameras []ident
}

func (b *sceneBuilder) errorf(start, end int, format string, args ...any) {
	b.errs = append(b.errs, newParseError(b.source, start, end, format, args...))
}

func (b *sceneBuilder) addEntry(entry sceneEntry) {
	before := len(b.errs)
	opts := b.newOptions(entry.name, entry.fields)

	switch strings.ToLower(entry.name.name) {
	case "global":
		depth := DefaultRecurseDepth
		if lit, ok := opts.optional("recurse_depth"); ok {
			depth, _ = b.u32(lit)
		}
		if b.finish(opts, before) {
			b.desc.RecurseDepth = depth
		}

	case "camera":
		camera := b.buildCamera(entry.name, opts)
		if b.finish(opts, before) {
			b.desc.Camera = camera
		}
		b.cameras = append(b.cameras, entry.name)

	case "light":
		pos, _ := b.vec3(b.require(opts, "pos"))
		var intensity float64
		if lit := b.require(opts, "intensity"); lit != nil {
			if v, ok := b.double(lit); ok {
				if v < 0 || math.IsNaN(v) {
					b.errorf(lit.start, lit.end, "Light intensity must be non-negative, found %v", v)
				}
				intensity = v
			}
		}
		if b.finish(opts, before) {
			b.desc.Lights = append(b.desc.Lights, lights.NewLight(pos, intensity))
		}

	case "background":
		color, _ := b.color(b.require(opts, "color"))
		if b.finish(opts, before) {
			b.desc.Background = color
		}

	case "sphere", "triangle", "plane", "mesh":
		obj := b.buildObject(entry.name, opts)
		if b.finish(opts, before) {
			b.desc.Objects = append(b.desc.Objects, obj)
		}

	default:
		b.errorf(entry.name.start, entry.name.end, "Unknown object '%s'", entry.name.name)
	}
}

func (b *sceneBuilder) checkCameras() {
	switch len(b.cameras) {
	case 1:
	case 0:
		b.errorf(0, -1, "There must be exactly one camera in a scene, found 0")
	default:
		for _, extra := range b.cameras[1:] {
			b.errorf(extra.start, extra.end, "There must be exactly one camera in a scene, found %d", len(b.cameras))
		}
	}
}

func (b *sceneBuilder) buildCamera(name ident, opts *optionSet) CameraDescription {
	camera := CameraDescription{FOV: DefaultFOV}

	camera.Width, _ = b.dimension(b.require(opts, "width"))
	camera.Height, _ = b.dimension(b.require(opts, "height"))
	camera.Position, _ = b.vec3(b.require(opts, "pos"))

	if lit := b.require(opts, "dir"); lit != nil {
		if dir, ok := b.vec3(lit); ok {
			if dir.IsZero() {
				b.errorf(lit.start, lit.end, "Camera direction must be non-zero")
			}
			camera.Direction = dir
		}
	}

	if lit, ok := opts.optional("up"); ok {
		camera.Up, _ = b.vec3(lit)
	}

	if lit, ok := opts.optional("fov"); ok {
		if fov, ok := b.double(lit); ok {
			if fov <= 0 || fov >= 180 {
				b.errorf(lit.start, lit.end, "Field of view must be in (0, 180) degrees, found %v", fov)
			}
			camera.FOV = fov
		}
	}

	return camera
}

func (b *sceneBuilder) buildObject(name ident, opts *optionSet) ObjectDescription {
	var obj ObjectDescription
	matLit := b.require(opts, "material")

	switch strings.ToLower(name.name) {
	case "sphere":
		center, _ := b.vec3(b.require(opts, "pos"))
		if lit := b.require(opts, "r"); lit != nil {
			if r, ok := b.double(lit); ok {
				if r <= 0 {
					b.errorf(lit.start, lit.end, "Sphere radius must be positive, found %v", r)
				}
				p := geometry.NewSphere(center, r).Primitive()
				obj.Primitive = &p
			}
		}

	case "triangle":
		t1, _ := b.vec3(b.require(opts, "t1"))
		t2, _ := b.vec3(b.require(opts, "t2"))
		t3, _ := b.vec3(b.require(opts, "t3"))
		p := geometry.NewTriangle(t1, t2, t3).Primitive()
		obj.Primitive = &p

	case "plane":
		point, _ := b.vec3(b.require(opts, "point"))
		if lit := b.require(opts, "normal"); lit != nil {
			if normal, ok := b.vec3(lit); ok {
				if normal.IsZero() {
					b.errorf(lit.start, lit.end, "Plane normal must be non-zero")
				} else {
					p := geometry.NewPlane(point, normal).Primitive()
					obj.Primitive = &p
				}
			}
		}

	case "mesh":
		mesh := &MeshDescription{}
		if lit := b.require(opts, "file"); lit != nil {
			mesh.File, _ = b.str(lit)
		}
		if lit, ok := opts.optional("scale"); ok {
			mesh.Scale, _ = b.double(lit)
		}
		if lit, ok := opts.optional("offset"); ok {
			mesh.Offset, _ = b.vec3(lit)
		}
		obj.Mesh = mesh
	}

	if matLit != nil {
		obj.Material = b.buildMaterial(matLit)
	}
	return obj
}

func (b *sceneBuilder) buildMaterial(lit *literal) material.Material {
	if lit.kind != litObject {
		b.wrongType(lit, typeObject)
		return material.Material{}
	}

	owner := ident{name: "material", start: lit.start, end: lit.start + 1}
	before := len(b.errs)
	opts := b.newOptions(owner, lit.fields)

	color, _ := b.color(b.require(opts, "color"))

	var mat material.Material
	if tmplLit, ok := opts.optional("template"); ok {
		if name, ok := b.str(tmplLit); ok {
			tmpl, err := material.LookupTemplate(name)
			if err != nil {
				b.errorf(tmplLit.start, tmplLit.end, "Unknown material '%s'", name)
			}
			mat = tmpl.Material(color)
		}
		if l, ok := opts.optional("lambert"); ok {
			mat.Lambert, _ = b.coefficient(l)
		}
		if l, ok := opts.optional("specular"); ok {
			mat.Specular, _ = b.coefficient(l)
		}
		if l, ok := opts.optional("ambient"); ok {
			mat.Ambient, _ = b.coefficient(l)
		}
	} else {
		mat.Color = color
		mat.Lambert, _ = b.coefficient(b.require(opts, "lambert"))
		mat.Specular, _ = b.coefficient(b.require(opts, "specular"))
		mat.Ambient, _ = b.coefficient(b.require(opts, "ambient"))
	}

	b.finish(opts, before)
	return mat
}

// optionSet tracks which keys of an object have been consumed
type optionSet struct {
	owner   ident
	entries map[string]field
}

func (b *sceneBuilder) newOptions(owner ident, fields []field) *optionSet {
	opts := &optionSet{owner: owner, entries: make(map[string]field, len(fields))}
	for _, f := range fields {
		key := strings.ToLower(f.key.name)
		if _, dup := opts.entries[key]; dup {
			b.errorf(f.key.start, -1, "Duplicate key '%s' in object", f.key.name)
			continue
		}
		opts.entries[key] = f
	}
	return opts
}

// optional removes and returns a key if present
func (o *optionSet) optional(name string) (*literal, bool) {
	f, ok := o.entries[name]
	if !ok {
		return nil, false
	}
	delete(o.entries, name)
	return f.value, true
}

// require removes and returns a key, recording an error when it is missing
func (b *sceneBuilder) require(o *optionSet, name string) *literal {
	lit, ok := o.optional(name)
	if !ok {
		b.errorf(o.owner.start, -1, "Missing option '%s' in object", name)
		return nil
	}
	return lit
}

// finish reports leftover keys and returns true if no errors occurred since before
func (b *sceneBuilder) finish(o *optionSet, before int) bool {
	leftover := make([]field, 0, len(o.entries))
	for _, f := range o.entries {
		leftover = append(leftover, f)
	}
	sort.Slice(leftover, func(i, j int) bool { return leftover[i].key.start < leftover[j].key.start })

	for _, f := range leftover {
		b.errorf(f.key.start, f.key.end, "Unknown option '%s'", f.key.name)
	}
	o.entries = map[string]field{}

	return len(b.errs) == before
}

func (b *sceneBuilder) wrongType(lit *literal, expected string) {
	b.errorf(lit.start, lit.end, "Expected type '%s' but found type '%s'", expected, lit.typeString())
}

// The conversions below return ok=false for a nil literal without recording
// anything, since require has already reported it.

func (b *sceneBuilder) str(lit *literal) (string, bool) {
	if lit == nil {
		return "", false
	}
	if lit.kind != litString {
		b.wrongType(lit, typeStr)
		return "", false
	}
	return lit.str, true
}

func (b *sceneBuilder) double(lit *literal) (float64, bool) {
	if lit == nil {
		return 0, false
	}
	switch lit.kind {
	case litDouble:
		return lit.double, true
	case litInt:
		return float64(lit.integer), true
	default:
		b.wrongType(lit, typeDouble)
		return 0, false
	}
}

func (b *sceneBuilder) u32(lit *literal) (int, bool) {
	if lit == nil {
		return 0, false
	}
	if lit.kind != litInt {
		b.wrongType(lit, typeU32)
		return 0, false
	}
	if lit.integer < 0 || lit.integer > math.MaxUint32 {
		b.errorf(lit.start, lit.end, "Number %d out of range for %s", lit.integer, typeU32)
		return 0, false
	}
	return int(lit.integer), true
}

// dimension is a u32 that must also be positive
func (b *sceneBuilder) dimension(lit *literal) (int, bool) {
	v, ok := b.u32(lit)
	if ok && v == 0 {
		b.errorf(lit.start, lit.end, "Image dimension must be positive")
		return 0, false
	}
	return v, ok
}

func (b *sceneBuilder) u8(lit *literal) (uint8, bool) {
	if lit.kind != litInt {
		b.wrongType(lit, typeU8)
		return 0, false
	}
	if lit.integer < 0 || lit.integer > math.MaxUint8 {
		b.errorf(lit.start, lit.end, "Number %d out of range for %s", lit.integer, typeU8)
		return 0, false
	}
	return uint8(lit.integer), true
}

func (b *sceneBuilder) vec3(lit *literal) (core.Vec3, bool) {
	if lit == nil {
		return core.Vec3{}, false
	}
	if lit.kind != litTuple || len(lit.items) != 3 {
		b.wrongType(lit, typeVec3)
		return core.Vec3{}, false
	}

	var xyz [3]float64
	for i, item := range lit.items {
		v, ok := b.double(item)
		if !ok {
			return core.Vec3{}, false
		}
		xyz[i] = v
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), true
}

// color accepts a color name or an (r, g, b) tuple of bytes
func (b *sceneBuilder) color(lit *literal) (core.Color, bool) {
	if lit == nil {
		return core.Black, false
	}

	switch {
	case lit.kind == litString:
		c, err := material.ColorByName(lit.str)
		if err != nil {
			b.errorf(lit.start, lit.end, "Unknown color '%s'", lit.str)
			return core.Black, false
		}
		return c, true

	case lit.kind == litTuple && len(lit.items) == 3:
		var rgb [3]uint8
		for i, item := range lit.items {
			v, ok := b.u8(item)
			if !ok {
				return core.Black, false
			}
			rgb[i] = v
		}
		return core.ColorFromRGB8(rgb[0], rgb[1], rgb[2]), true

	default:
		b.wrongType(lit, typeColor)
		return core.Black, false
	}
}

// coefficient accepts a number for a grey response or any color literal
func (b *sceneBuilder) coefficient(lit *literal) (core.Color, bool) {
	if lit == nil {
		return core.Black, false
	}
	if lit.kind == litInt || lit.kind == litDouble {
		v, _ := b.double(lit)
		if v < 0 || v > 1 {
			b.errorf(lit.start, lit.end, "Coefficient must be in [0, 1], found %v", v)
			return core.Black, false
		}
		return core.Gray(v), true
	}
	return b.color(lit)
}
