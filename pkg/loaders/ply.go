package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version     string // Usually "1.0"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the mesh loaded from a PLY file
type PLYData struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Faces    []int       // Triangle indices (3 per triangle), polygons fan-triangulated
}

// TriangleCount returns the number of triangles in Faces
func (d *PLYData) TriangleCount() int {
	return len(d.Faces) / 3
}

// LoadPLY loads a PLY file
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ReadPLY parses PLY data in ASCII or binary form from r
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var elements plyElementReader
	switch header.Format {
	case "ascii":
		elements = &asciiElementReader{scanner: newTokenScanner(reader)}
	case "binary_little_endian":
		elements = &binaryElementReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		elements = &binaryElementReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	data, err := readPLYElements(header, elements)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data: %w", err)
	}
	return data, nil
}

// parsePLYHeader parses the header up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var currentElement string
	first := true

	for {
		raw, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || raw == "") {
			return nil, fmt.Errorf("unexpected end of header: %w", err)
		}
		line := strings.TrimSpace(raw)

		if first {
			if line != "ply" {
				return nil, fmt.Errorf("missing ply magic number")
			}
			first = false
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			default:
				if count > 0 {
					return nil, fmt.Errorf("unsupported element %q", currentElement)
				}
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		default:
			return nil, fmt.Errorf("unknown header keyword %q", parts[0])
		}

		if err == io.EOF {
			return nil, fmt.Errorf("unexpected end of header")
		}
	}

	for _, name := range []string{"x", "y", "z"} {
		if header.vertexIndex(name) < 0 {
			return nil, fmt.Errorf("vertex element has no %q property", name)
		}
	}
	if header.FaceCount > 0 && header.faceIndicesProperty() < 0 {
		return nil, fmt.Errorf("face element has no vertex_indices list")
	}

	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop := PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}
		if getTypeSize(prop.ListType) == 0 || getTypeSize(prop.DataType) == 0 {
			return PLYProperty{}, fmt.Errorf("unsupported list types %s %s", prop.ListType, prop.DataType)
		}
		return prop, nil
	}

	if getTypeSize(parts[0]) == 0 {
		return PLYProperty{}, fmt.Errorf("unsupported data type: %s", parts[0])
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

func (h *PLYHeader) vertexIndex(name string) int {
	for i, prop := range h.VertexProps {
		if prop.Name == name && !prop.IsList {
			return i
		}
	}
	return -1
}

func (h *PLYHeader) faceIndicesProperty() int {
	for i, prop := range h.FaceProps {
		if prop.IsList && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
			return i
		}
	}
	return -1
}

// getTypeSize returns the size in bytes of a PLY scalar type, 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "double", "float64":
		return 8
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}

// plyElementReader reads scalar values in body order regardless of encoding
type plyElementReader interface {
	readScalar(dataType string) (float64, error)
}

func readPLYElements(header *PLYHeader, elements plyElementReader) (*PLYData, error) {
	xi, yi, zi := header.vertexIndex("x"), header.vertexIndex("y"), header.vertexIndex("z")
	data := &PLYData{
		Vertices: make([]core.Vec3, 0, header.VertexCount),
		Faces:    make([]int, 0, header.FaceCount*3),
	}

	values := make([]float64, len(header.VertexProps))
	for i := 0; i < header.VertexCount; i++ {
		for j, prop := range header.VertexProps {
			if prop.IsList {
				if _, err := readList(elements, prop); err != nil {
					return nil, fmt.Errorf("vertex %d: %w", i, err)
				}
				continue
			}
			v, err := elements.readScalar(prop.Type)
			if err != nil {
				return nil, fmt.Errorf("vertex %d property %s: %w", i, prop.Name, err)
			}
			values[j] = v
		}
		data.Vertices = append(data.Vertices, core.NewVec3(values[xi], values[yi], values[zi]))
	}

	indicesProp := header.faceIndicesProperty()
	for i := 0; i < header.FaceCount; i++ {
		for j, prop := range header.FaceProps {
			if !prop.IsList {
				if _, err := elements.readScalar(prop.Type); err != nil {
					return nil, fmt.Errorf("face %d property %s: %w", i, prop.Name, err)
				}
				continue
			}

			list, err := readList(elements, prop)
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			if j != indicesProp {
				continue
			}
			if len(list) < 3 {
				return nil, fmt.Errorf("face %d has %d vertices, need at least 3", i, len(list))
			}

			// Fan triangulation around the first vertex
			for k := 1; k+1 < len(list); k++ {
				data.Faces = append(data.Faces, int(list[0]), int(list[k]), int(list[k+1]))
			}
		}
	}

	for i, idx := range data.Faces {
		if idx < 0 || idx >= len(data.Vertices) {
			return nil, fmt.Errorf("face %d references vertex %d, only %d vertices", i/3, idx, len(data.Vertices))
		}
	}

	return data, nil
}

func readList(elements plyElementReader, prop PLYProperty) ([]float64, error) {
	count, err := elements.readScalar(prop.ListType)
	if err != nil {
		return nil, fmt.Errorf("list count for %s: %w", prop.Name, err)
	}
	if count < 0 || count != math.Trunc(count) {
		return nil, fmt.Errorf("invalid list count %v for %s", count, prop.Name)
	}

	list := make([]float64, int(count))
	for i := range list {
		if list[i], err = elements.readScalar(prop.DataType); err != nil {
			return nil, fmt.Errorf("list item %d of %s: %w", i, prop.Name, err)
		}
	}
	return list, nil
}

// binaryElementReader decodes fixed-size scalars with the file's byte order
type binaryElementReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryElementReader) readScalar(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	raw := b.buf[:size]
	if _, err := io.ReadFull(b.reader, raw); err != nil {
		return 0, err
	}

	switch dataType {
	case "double", "float64":
		return math.Float64frombits(b.order.Uint64(raw)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(raw))), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(raw))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(raw)), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(raw))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(raw)), nil
	case "char", "int8":
		return float64(int8(raw[0])), nil
	default:
		return float64(raw[0]), nil
	}
}

// asciiElementReader reads whitespace-separated values
type asciiElementReader struct {
	scanner *bufio.Scanner
}

func newTokenScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return scanner
}

func (a *asciiElementReader) readScalar(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	v, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, a.scanner.Text())
	}
	return v, nil
}
