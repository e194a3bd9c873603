package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrInvalidOBJ     = errors.New("invalid OBJ data")
	ErrInvalidOBJFace = errors.New("invalid OBJ face")
)

// OBJFace is a polygon given as zero-based indices into OBJ.Vertices.
// Indices are resolved but not range-checked against later vertices.
type OBJFace struct {
	Indices []int
}

// OBJGroup is a named run of faces ("g" statement).
type OBJGroup struct {
	Name  string
	Faces []OBJFace
}

// OBJObject is a named set of groups ("o" statement).
type OBJObject struct {
	Name   string
	Groups []OBJGroup
}

// OBJ represents a parsed Wavefront OBJ file. Only geometry is kept:
// texture coordinates, normals and materials are skipped.
type OBJ struct {
	Vertices [][3]float32
	Objects  []OBJObject
}

// FaceCount returns the total number of faces across all objects.
func (o *OBJ) FaceCount() int {
	n := 0
	for _, obj := range o.Objects {
		for _, g := range obj.Groups {
			n += len(g.Faces)
		}
	}
	return n
}

// objBuilder tracks the current object and group while parsing.
type objBuilder struct {
	obj        *OBJ
	objectName string
	groupName  string
	// open is false after an "o" or "g" until the first face lands.
	open bool
}

func (b *objBuilder) addFace(f OBJFace) {
	if !b.open {
		if len(b.obj.Objects) == 0 || b.obj.Objects[len(b.obj.Objects)-1].Name != b.objectName {
			b.obj.Objects = append(b.obj.Objects, OBJObject{Name: b.objectName})
		}
		cur := &b.obj.Objects[len(b.obj.Objects)-1]
		cur.Groups = append(cur.Groups, OBJGroup{Name: b.groupName})
		b.open = true
	}
	cur := &b.obj.Objects[len(b.obj.Objects)-1]
	g := &cur.Groups[len(cur.Groups)-1]
	g.Faces = append(g.Faces, f)
}

// ParseOBJ parses OBJ text.
func ParseOBJ(data []byte) (*OBJ, error) {
	b := &objBuilder{obj: &OBJ{}}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseOBJVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			b.obj.Vertices = append(b.obj.Vertices, v)
		case "f":
			f, err := parseOBJFace(fields[1:], len(b.obj.Vertices))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			b.addFace(f)
		case "o":
			b.objectName = strings.Join(fields[1:], " ")
			b.groupName = ""
			b.open = false
			// A repeated name must still start a new object.
			b.obj.Objects = append(b.obj.Objects, OBJObject{Name: b.objectName})
		case "g":
			b.groupName = strings.Join(fields[1:], " ")
			b.open = false
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOBJ, err)
	}

	b.obj.Objects = pruneEmptyObjects(b.obj.Objects)
	return b.obj, nil
}

func pruneEmptyObjects(objects []OBJObject) []OBJObject {
	out := objects[:0]
	for _, o := range objects {
		if len(o.Groups) > 0 {
			out = append(out, o)
		}
	}
	return out
}

func parseOBJVertex(args []string) ([3]float32, error) {
	var v [3]float32
	if len(args) < 3 {
		return v, fmt.Errorf("%w: vertex needs 3 coordinates, got %d", ErrInvalidOBJ, len(args))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return v, fmt.Errorf("%w: vertex coordinate %q", ErrInvalidOBJ, args[i])
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseOBJFace resolves "v", "v/vt", "v//vn" and "v/vt/vn" references.
// Negative indices count back from the vertices defined so far.
func parseOBJFace(args []string, defined int) (OBJFace, error) {
	if len(args) < 3 {
		return OBJFace{}, fmt.Errorf("%w: need at least 3 vertices, got %d", ErrInvalidOBJFace, len(args))
	}
	face := OBJFace{Indices: make([]int, 0, len(args))}
	for _, ref := range args {
		pos, _, _ := strings.Cut(ref, "/")
		idx, err := strconv.Atoi(pos)
		if err != nil {
			return OBJFace{}, fmt.Errorf("%w: vertex reference %q", ErrInvalidOBJFace, ref)
		}
		switch {
		case idx > 0:
			idx--
		case idx < 0:
			idx += defined
			if idx < 0 {
				return OBJFace{}, fmt.Errorf("%w: relative reference %q before start", ErrInvalidOBJFace, ref)
			}
		default:
			return OBJFace{}, fmt.Errorf("%w: vertex index 0", ErrInvalidOBJFace)
		}
		face.Indices = append(face.Indices, idx)
	}
	return face, nil
}

// ParseOBJFile reads and parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}
