package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parse reads a Gmsh MSH version 2.2 ASCII stream. Binary files and
// the 4.x format are rejected with a descriptive error.
func Parse(r io.Reader) (*Mesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	m := &Mesh{
		Nodes:  make(map[int]Node),
		Groups: make(map[int]Group),
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "$MeshFormat":
			if err := parseFormat(sc); err != nil {
				return nil, err
			}
		case "$PhysicalNames":
			if err := parsePhysicalNames(sc, m); err != nil {
				return nil, err
			}
		case "$Nodes":
			if err := parseNodes(sc, m); err != nil {
				return nil, err
			}
		case "$Elements":
			if err := parseElements(sc, m); err != nil {
				return nil, err
			}
		default:
			// Skip unknown sections wholesale.
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				if err := skipSection(sc, line); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read msh: %w", err)
	}
	if len(m.Nodes) == 0 {
		return nil, fmt.Errorf("msh: no $Nodes section found")
	}
	return m, nil
}

// ParseFile opens and parses a .msh file.
func ParseFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func parseFormat(sc *bufio.Scanner) error {
	if !sc.Scan() {
		return fmt.Errorf("msh: truncated $MeshFormat section")
	}
	fields := strings.Fields(sc.Text())
	if len(fields) < 3 {
		return fmt.Errorf("msh: malformed $MeshFormat line %q", sc.Text())
	}
	version := fields[0]
	if !strings.HasPrefix(version, "2.") {
		return fmt.Errorf("msh: unsupported format version %s (only 2.2 ASCII is supported; export with gmsh -format msh22)", version)
	}
	if fields[1] != "0" {
		return fmt.Errorf("msh: binary files are not supported; export as ASCII")
	}
	return expectEnd(sc, "$EndMeshFormat")
}

func parsePhysicalNames(sc *bufio.Scanner, m *Mesh) error {
	n, err := readCount(sc, "$PhysicalNames")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return fmt.Errorf("msh: truncated $PhysicalNames section")
		}
		fields := strings.SplitN(strings.TrimSpace(sc.Text()), " ", 3)
		if len(fields) < 3 {
			return fmt.Errorf("msh: malformed physical name %q", sc.Text())
		}
		dim, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("msh: physical name dim: %w", err)
		}
		tag, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("msh: physical name tag: %w", err)
		}
		name := strings.Trim(fields[2], `"`)
		m.Groups[tag] = Group{Tag: tag, Dim: dim, Name: name}
	}
	return expectEnd(sc, "$EndPhysicalNames")
}

func parseNodes(sc *bufio.Scanner, m *Mesh) error {
	n, err := readCount(sc, "$Nodes")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return fmt.Errorf("msh: truncated $Nodes section")
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			return fmt.Errorf("msh: malformed node %q", sc.Text())
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("msh: node id: %w", err)
		}
		var xyz [3]float64
		for j := 0; j < 3; j++ {
			xyz[j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return fmt.Errorf("msh: node %d coordinate: %w", id, err)
			}
		}
		m.Nodes[id] = Node{ID: id, X: xyz[0], Y: xyz[1], Z: xyz[2]}
	}
	return expectEnd(sc, "$EndNodes")
}

func parseElements(sc *bufio.Scanner, m *Mesh) error {
	n, err := readCount(sc, "$Elements")
	if err != nil {
		return err
	}
	m.Elements = make([]Element, 0, n)
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return fmt.Errorf("msh: truncated $Elements section")
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			return fmt.Errorf("msh: malformed element %q", sc.Text())
		}
		var e Element
		e.ID, err = strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("msh: element id: %w", err)
		}
		e.Type, err = strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("msh: element %d type: %w", e.ID, err)
		}
		ntags, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("msh: element %d tag count: %w", e.ID, err)
		}
		if len(fields) < 3+ntags {
			return fmt.Errorf("msh: element %d has %d tags but line is short", e.ID, ntags)
		}
		if ntags > 0 {
			// First tag is the physical group.
			e.Physical, err = strconv.Atoi(fields[3])
			if err != nil {
				return fmt.Errorf("msh: element %d physical tag: %w", e.ID, err)
			}
		}
		for _, f := range fields[3+ntags:] {
			id, err := strconv.Atoi(f)
			if err != nil {
				return fmt.Errorf("msh: element %d node ref: %w", e.ID, err)
			}
			e.Nodes = append(e.Nodes, id)
		}
		m.Elements = append(m.Elements, e)
	}
	return expectEnd(sc, "$EndElements")
}

func readCount(sc *bufio.Scanner, section string) (int, error) {
	if !sc.Scan() {
		return 0, fmt.Errorf("msh: truncated %s section", section)
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return 0, fmt.Errorf("msh: %s count: %w", section, err)
	}
	return n, nil
}

func expectEnd(sc *bufio.Scanner, marker string) error {
	if !sc.Scan() || strings.TrimSpace(sc.Text()) != marker {
		return fmt.Errorf("msh: expected %s", marker)
	}
	return nil
}

func skipSection(sc *bufio.Scanner, header string) error {
	end := "$End" + strings.TrimPrefix(header, "$")
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == end {
			return nil
		}
	}
	return fmt.Errorf("msh: unterminated section %s", header)
}
