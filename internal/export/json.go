package export

import (
	"encoding/json"
	"io"
	"math"

	"github.com/san-kum/arnoldweb/internal/farm"
)

type BoardData struct {
	RunID  string      `json:"run_id,omitempty"`
	Module string      `json:"module"`
	XRes   int         `json:"xres"`
	YRes   int         `json:"yres"`
	Width  int         `json:"width"`
	Cells  [][]float64 `json:"cells"`
	// Invalid lists the task IDs whose rows held NaN or Inf; those values
	// are written as zero since JSON has no encoding for them.
	Invalid []int `json:"invalid,omitempty"`
}

func BoardJSON(w io.Writer, runID string, b *farm.Board) error {
	data := BoardData{
		RunID:  runID,
		Module: b.Module,
		XRes:   b.XRes,
		YRes:   b.YRes,
		Width:  b.Width,
		Cells:  make([][]float64, len(b.Cells)),
	}

	for id, row := range b.Cells {
		clean := make([]float64, len(row))
		bad := false
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				bad = true
				continue
			}
			clean[j] = v
		}
		if bad {
			data.Invalid = append(data.Invalid, id)
		}
		data.Cells[id] = clean
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
