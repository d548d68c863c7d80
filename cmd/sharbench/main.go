// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: MIT

// Command sharbench compares the branch-minimized search against the
// standard library's sorted searches over a range of slice sizes.
//
// Each measurement sweeps every present value plus a miss on each side,
// so both hit and miss paths at every landing position are timed. With
// --check the sweep is first verified against slices.BinarySearch.
package main

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strconv"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	sharsearch "github.com/ClementTsang/shar-search"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sharbench: %+v\n", err)
		os.Exit(1)
	}
}

type competitor struct {
	name   string
	search func([]int64, int64) (int, bool)
}

func competitors() []competitor {
	return []competitor{
		{"shar", func(data []int64, target int64) (int, bool) {
			return sharsearch.Search(data, target)
		}},
		{"slices.BinarySearch", func(data []int64, target int64) (int, bool) {
			return slices.BinarySearch(data, target)
		}},
		{"sort.Search", func(data []int64, target int64) (int, bool) {
			i := sort.Search(len(data), func(i int) bool { return data[i] >= target })
			return i, i < len(data) && data[i] == target
		}},
	}
}

func newRootCmd() *cobra.Command {
	var sizes []int
	var check bool

	cmd := &cobra.Command{
		Use:           "sharbench",
		Short:         "Micro-benchmark Shar's search against the standard library",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, size := range sizes {
				if size < 0 {
					return fmt.Errorf("negative size %d", size)
				}
			}
			if check {
				if err := checkAll(sizes); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("all sweeps agree with slices.BinarySearch"))
			}
			return runBenchmarks(cmd, sizes)
		},
	}

	cmd.Flags().IntSliceVar(&sizes, "sizes", []int{1, 2, 3, 4, 32, 128, 256, 512, 1024},
		"slice sizes to measure")
	cmd.Flags().BoolVar(&check, "check", false,
		"verify every sweep position against the reference search before timing")

	return cmd
}

// checkAll replays the exact sweep the benchmark times, asserting each
// result against the reference lower-bound search.
func checkAll(sizes []int) error {
	for _, comp := range competitors() {
		for _, size := range sizes {
			data := sortedInt64s(size)
			for target := int64(-1); target <= int64(size); target++ {
				wantIndex, wantFound := slices.BinarySearch(data, target)
				index, found := comp.search(data, target)
				if index != wantIndex || found != wantFound {
					return fmt.Errorf("%s: size %d target %d: got (%d, %t), reference says (%d, %t)",
						comp.name, size, target, index, found, wantIndex, wantFound)
				}
			}
		}
	}
	return nil
}

func runBenchmarks(cmd *cobra.Command, sizes []int) error {
	comps := competitors()

	header := []string{"size"}
	for _, comp := range comps {
		header = append(header, comp.name)
	}
	rows := [][]string{}

	for _, size := range sizes {
		data := sortedInt64s(size)
		row := []string{strconv.Itoa(size)}
		for _, comp := range comps {
			search := comp.search
			result := testing.Benchmark(func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					search(data, -1)
					for j := range data {
						search(data, int64(j))
					}
					search(data, int64(len(data)))
				}
			})
			// Normalize to a single search: the sweep does size+2 of them.
			perSearch := float64(result.NsPerOp()) / float64(size+2)
			row = append(row, fmt.Sprintf("%.1f ns", perSearch))
		}
		rows = append(rows, row)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(header, rows))
	return nil
}

func sortedInt64s(size int) []int64 {
	data := make([]int64, size)
	for i := range data {
		data[i] = int64(i)
	}
	return data
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle   = lipgloss.NewStyle().Align(lipgloss.Right)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var out string
	for i, h := range header {
		if i > 0 {
			out += "  "
		}
		out += headerStyle.Render(cellStyle.Width(widths[i]).Render(h))
	}
	out += "\n"
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				out += "  "
			}
			out += cellStyle.Width(widths[i]).Render(cell)
		}
		out += "\n"
	}
	return out
}
