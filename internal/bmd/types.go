package bmd

// Triangle holds polygon type and index tuples into the vertex/normal/texcoord arrays.
// Polygon == 4 means a quad using all four slots; anything else uses the first three.
type Triangle struct {
	Polygon int
	VI      [4]int16
	NI      [4]int16
	TI      [4]int16
}

// Corners returns how many index slots the polygon uses.
func (t Triangle) Corners() int {
	if t.Polygon == 4 {
		return 4
	}
	return 3
}

// Mesh holds parsed geometry for one sub-mesh within a BMD file.
type Mesh struct {
	Verts   [][3]float32
	Normals [][3]float32
	UVs     [][2]float32
	Tris    []Triangle
	TexPath string // texture reference from BMD (e.g. "sword04.jpg")
}

// Model is a parsed BMD file. Bones and actions are skipped.
type Model struct {
	Name    string
	Version byte
	Meshes  []Mesh
}
