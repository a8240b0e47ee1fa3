package rig

// Ground answers vertical ray casts against the environment.
type Ground interface {
	// HeightAt returns the surface height below the world position (x, z),
	// or false if nothing is there.
	HeightAt(x, z float32) (float32, bool)
}

// FlatGround is an infinite horizontal plane at the given height.
type FlatGround float32

// HeightAt implements Ground.
func (g FlatGround) HeightAt(x, z float32) (float32, bool) {
	return float32(g), true
}

// SlopeGround is an infinite plane through (0, Height, 0) rising SlopeX per
// unit along X and SlopeZ per unit along Z.
type SlopeGround struct {
	Height float32
	SlopeX float32
	SlopeZ float32
}

// HeightAt implements Ground.
func (g SlopeGround) HeightAt(x, z float32) (float32, bool) {
	return g.Height + g.SlopeX*x + g.SlopeZ*z, true
}

// HeightGrid is a regular grid of corner heights starting at the world
// origin. Heights[x][z] is the corner at (x*CellSize, z*CellSize).
// Positions outside the grid have no ground.
type HeightGrid struct {
	Heights  [][]float32
	CellSize float32
}

// NewHeightGrid returns a flat grid of w by d corners.
func NewHeightGrid(w, d int, cellSize float32) *HeightGrid {
	heights := make([][]float32, w)
	for x := 0; x < w; x++ {
		heights[x] = make([]float32, d)
	}
	return &HeightGrid{Heights: heights, CellSize: cellSize}
}

// Set sets the height of corner (x, z).
func (g *HeightGrid) Set(x, z int, h float32) { g.Heights[x][z] = h }

// HeightAt implements Ground with bilinear interpolation between the four
// corners of the cell containing (x, z).
func (g *HeightGrid) HeightAt(x, z float32) (float32, bool) {
	w := len(g.Heights)
	if w < 2 || g.CellSize <= 0 {
		return 0, false
	}
	d := len(g.Heights[0])
	if d < 2 {
		return 0, false
	}

	fx := x / g.CellSize
	fz := z / g.CellSize
	if fx < 0 || fz < 0 || fx > float32(w-1) || fz > float32(d-1) {
		return 0, false
	}

	cx := min(int(fx), w-2)
	cz := min(int(fz), d-2)
	tx := clampf(fx-float32(cx), 0, 1)
	tz := clampf(fz-float32(cz), 0, 1)

	near := g.Heights[cx][cz]*(1-tx) + g.Heights[cx+1][cz]*tx
	far := g.Heights[cx][cz+1]*(1-tx) + g.Heights[cx+1][cz+1]*tx
	return near*(1-tz) + far*tz, true
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
