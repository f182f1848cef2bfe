package farm

import "math"

// Board collects the output rows of a run, indexed by task ID.
type Board struct {
	Module string      `json:"module"`
	XRes   int         `json:"xres"`
	YRes   int         `json:"yres"`
	Width  int         `json:"width"`
	Cells  [][]float64 `json:"-"`
}

func NewBoard(module string, xres, yres, width int) *Board {
	return &Board{
		Module: module,
		XRes:   xres,
		YRes:   yres,
		Width:  width,
		Cells:  make([][]float64, xres*yres),
	}
}

func (b *Board) Len() int {
	return len(b.Cells)
}

// Set stores a copy of out for task id. Distinct ids may be set
// concurrently.
func (b *Board) Set(id int, out []float64) {
	row := make([]float64, len(out))
	copy(row, out)
	b.Cells[id] = row
}

// Column returns component i of every cell; missing cells read as NaN.
func (b *Board) Column(i int) []float64 {
	col := make([]float64, len(b.Cells))
	for id, row := range b.Cells {
		if i < len(row) {
			col[id] = row[i]
		} else {
			col[id] = math.NaN()
		}
	}
	return col
}

// Range is the finite extent of column i. ok is false when no cell is
// finite.
func (b *Board) Range(i int) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range b.Column(i) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}
