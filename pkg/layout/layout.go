package layout

// FloorLayout is the generated tile grid plus the rooms and special points
// that carving produced. Grid is stored row-major: Grid[y*Width+x].
type FloorLayout struct {
	Width, Height int
	Grid          []TileType
	Rooms         []Room
	SpawnPoints   []Point
	ExitPoint     Point
}

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

func newFloorLayout(width, height int) *FloorLayout {
	grid := make([]TileType, width*height)
	for i := range grid {
		grid[i] = TileWall
	}
	return &FloorLayout{Width: width, Height: height, Grid: grid}
}

// At returns the tile type at (x, y), or TileEmpty if out of bounds.
func (f *FloorLayout) At(x, y int) TileType {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return TileEmpty
	}
	return f.Grid[y*f.Width+x]
}

func (f *FloorLayout) set(x, y int, t TileType) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	f.Grid[y*f.Width+x] = t
}

// RoomAt returns the room containing (x, y), if any.
func (f *FloorLayout) RoomAt(x, y int) (Room, bool) {
	for _, r := range f.Rooms {
		if r.Contains(x, y) {
			return r, true
		}
	}
	return Room{}, false
}
