package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/arnoldweb/internal/export"
	"github.com/san-kum/arnoldweb/internal/storage"
	"github.com/san-kum/arnoldweb/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODULE\tTIME\tGRID\tSEED\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%.2fs\n",
			run.ID,
			run.Module,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.XRes,
			run.YRes,
			run.Seed,
			run.Elapsed,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}

	board, err := st.LoadBoard(runID)
	if err != nil {
		return err
	}

	out, err := viz.RenderMap(board, column, viz.GetTheme(theme))
	if err != nil {
		return err
	}

	fmt.Println(viz.HeaderStyle.Render(fmt.Sprintf("%s  %s  o%d", meta.ID, meta.Module, column)))
	fmt.Println(out)
	fmt.Println()
	for _, k := range sortedKeys(meta.Summary) {
		fmt.Println(viz.Metric(k, fmt.Sprintf("%.6g", meta.Summary[k])))
	}
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	board, err := storage.New(dataDir).LoadBoard(runID)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = filepath.Join(dataDir, runID, fmt.Sprintf("map_o%d.png", column))
	}
	if err := export.HeatMapPNG(board, column, path, fmt.Sprintf("%s o%d", runID, column)); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	board, err := storage.New(dataDir).LoadBoard(runID)
	if err != nil {
		return err
	}

	svg, err := export.BoardToSVG(board, column, svgScale)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = filepath.Join(dataDir, runID, fmt.Sprintf("map_o%d.svg", column))
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	board, err := storage.New(dataDir).LoadBoard(runID)
	if err != nil {
		return err
	}

	if outPath == "" {
		return export.BoardJSON(os.Stdout, runID, board)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.BoardJSON(f, runID, board); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
