package layout

// Params configures a single Solve call. Width/Height and the room count
// bounds are supplied by the caller (floor.Tier owns the tier-to-dimension
// mapping; layout stays tier-agnostic to avoid a package cycle). The actual
// room count is drawn from Solve's own RNG stream, seeded by Seed, so it
// consumes the same sequence placement subsequently reads from.
type Params struct {
	Width    int
	Height   int
	MinRooms int
	MaxRooms int
	Seed     uint64
}

const (
	minRoomDim = 3
	maxRoomDim = 8 // exclusive upper bound: rooms are in [3, 8)
)

// Solve runs the full grid-placement layout pipeline: room placement,
// wall/floor initialization, L-shaped corridor carving, per-room-type
// decoration, and spawn/exit point collection. The result is deterministic
// for a given Params.Seed.
func Solve(p Params) *FloorLayout {
	rng := NewXorshift64(p.Seed)
	fl := newFloorLayout(p.Width, p.Height)

	targetRooms := p.MinRooms
	if p.MaxRooms > p.MinRooms {
		targetRooms = rng.IntRange(p.MinRooms, p.MaxRooms)
	}

	rooms := placeRooms(rng, p.Width, p.Height, targetRooms)
	assignRoomTypes(rng, rooms)
	fl.Rooms = rooms

	carveRooms(fl, rooms)
	connectRooms(rng, fl, rooms)
	decorateRooms(rng, fl, rooms)

	fl.SpawnPoints = collectSpawnPoints(fl, rooms)
	fl.ExitPoint = collectExitPoint(fl, rooms)

	enforceInvariants(fl, rooms)
	return fl
}

// placeRooms attempts up to 20*target room placements, rejecting any
// candidate that would touch the grid border or overlap (with one tile of
// padding) an already-placed room.
func placeRooms(rng *Xorshift64, width, height, target int) []Room {
	if target < 1 {
		target = 1
	}
	maxAttempts := 20 * target
	rooms := make([]Room, 0, target)

	for attempt := 0; attempt < maxAttempts && len(rooms) < target; attempt++ {
		w := rng.IntRange(minRoomDim, maxRoomDim-1)
		h := rng.IntRange(minRoomDim, maxRoomDim-1)
		if width-2-w < 1 || height-2-h < 1 {
			continue
		}
		x := rng.IntRange(1, width-1-w)
		y := rng.IntRange(1, height-1-h)

		candidate := Room{X: x, Y: y, Width: w, Height: h}
		if !fitsBorder(candidate, width, height) {
			continue
		}

		collides := false
		for _, existing := range rooms {
			if candidate.Overlaps(existing) {
				collides = true
				break
			}
		}
		if collides {
			continue
		}
		rooms = append(rooms, candidate)
	}
	return rooms
}

func fitsBorder(r Room, width, height int) bool {
	return r.X >= 1 && r.Y >= 1 && r.X+r.Width <= width-1 && r.Y+r.Height <= height-1
}

// assignRoomTypes designates the first placed room Entrance and the last
// Exit; every other room draws its type from the weighted distribution.
func assignRoomTypes(rng *Xorshift64, rooms []Room) {
	if len(rooms) == 0 {
		return
	}
	for i := range rooms {
		rooms[i].Type = weightedRoomTypes[rng.WeightedChoice(weightedRoomWeights)]
	}
	rooms[0].Type = RoomEntrance
	if len(rooms) > 1 {
		rooms[len(rooms)-1].Type = RoomExit
	}
}

func carveRooms(fl *FloorLayout, rooms []Room) {
	for _, r := range rooms {
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				fl.set(x, y, TileFloor)
			}
		}
	}
}

// connectRooms links consecutive rooms (in placement order) with an
// L-shaped corridor: a horizontal run then a vertical run (or the reverse,
// chosen by coin flip), with a door placed at the elbow.
func connectRooms(rng *Xorshift64, fl *FloorLayout, rooms []Room) {
	for i := 0; i+1 < len(rooms); i++ {
		ax, ay := rooms[i].Center()
		bx, by := rooms[i+1].Center()

		if rng.Bool() {
			carveHorizontal(fl, ax, bx, ay)
			fl.set(bx, ay, TileDoor)
			carveVertical(fl, ay, by, bx)
		} else {
			carveVertical(fl, ay, by, ax)
			fl.set(ax, by, TileDoor)
			carveHorizontal(fl, ax, bx, by)
		}
	}
}

func carveHorizontal(fl *FloorLayout, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if fl.At(x, y) == TileWall {
			fl.set(x, y, TileFloor)
		}
	}
}

func carveVertical(fl *FloorLayout, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if fl.At(x, y) == TileWall {
			fl.set(x, y, TileFloor)
		}
	}
}

// decorateRooms stamps room-type-specific special tiles at each room's
// center, and the entrance/exit rooms additionally receive their stairs.
func decorateRooms(rng *Xorshift64, fl *FloorLayout, rooms []Room) {
	for _, r := range rooms {
		cx, cy := r.Center()
		switch r.Type {
		case RoomEntrance:
			fl.set(cx, cy, TileStairsUp)
		case RoomExit:
			fl.set(cx, cy, TileStairsDown)
		case RoomTreasure:
			fl.set(cx, cy, TileChest)
		case RoomPuzzle:
			fl.set(cx, cy, TileShrine)
		case RoomRest:
			fl.set(cx, cy, TileWindColumn)
		case RoomCombat:
			if rng.Bool() {
				fl.set(cx, cy, TileSpawner)
			}
		case RoomBoss:
			fl.set(cx, cy, TileSpawner)
			// boss rooms get an extra hazard near an edge of the room
			hx, hy := r.X, r.Y
			if hx != cx || hy != cy {
				fl.set(hx, hy, TileTrap)
			}
		}
	}
}

func collectSpawnPoints(fl *FloorLayout, rooms []Room) []Point {
	var points []Point
	for _, r := range rooms {
		if r.Type != RoomCombat && r.Type != RoomBoss {
			continue
		}
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				if fl.At(x, y) == TileSpawner {
					points = append(points, Point{X: x, Y: y})
				}
			}
		}
	}
	if len(points) == 0 && len(rooms) > 0 {
		cx, cy := rooms[0].Center()
		points = append(points, Point{X: cx, Y: cy})
	}
	return points
}

func collectExitPoint(fl *FloorLayout, rooms []Room) Point {
	for _, r := range rooms {
		if r.Type == RoomExit {
			cx, cy := r.Center()
			return Point{X: cx, Y: cy}
		}
	}
	if len(rooms) > 0 {
		cx, cy := rooms[len(rooms)-1].Center()
		return Point{X: cx, Y: cy}
	}
	return Point{}
}

// enforceInvariants guarantees the properties spec.md requires regardless
// of how placement/carving landed: at least one up and down staircase, no
// VoidPit adjacent to a staircase, and no Door directly adjacent to
// another Door.
func enforceInvariants(fl *FloorLayout, rooms []Room) {
	hasUp, hasDown := false, false
	for _, t := range fl.Grid {
		if t == TileStairsUp {
			hasUp = true
		}
		if t == TileStairsDown {
			hasDown = true
		}
	}
	if !hasUp && len(rooms) > 0 {
		cx, cy := rooms[0].Center()
		fl.set(cx, cy, TileStairsUp)
	}
	if !hasDown && len(rooms) > 0 {
		cx, cy := rooms[len(rooms)-1].Center()
		fl.set(cx, cy, TileStairsDown)
	}

	for y := 0; y < fl.Height; y++ {
		for x := 0; x < fl.Width; x++ {
			t := fl.At(x, y)
			if t != TileStairsUp && t != TileStairsDown {
				continue
			}
			for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				if fl.At(x+d[0], y+d[1]) == TileVoidPit {
					fl.set(x+d[0], y+d[1], TileFloor)
				}
			}
		}
	}

	for y := 0; y < fl.Height; y++ {
		for x := 0; x < fl.Width; x++ {
			if fl.At(x, y) != TileDoor {
				continue
			}
			if fl.At(x+1, y) == TileDoor {
				fl.set(x+1, y, TileFloor)
			}
			if fl.At(x, y+1) == TileDoor {
				fl.set(x, y+1, TileFloor)
			}
		}
	}
}
