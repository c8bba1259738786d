package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/autoshard/autoshard/metainfo"
	"github.com/autoshard/autoshard/types/shapes"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	cellStyle  = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 0, 4)
)

// parseShape parses comma-separated dimensions, like "1,3,8,8".
func parseShape(dtype dtypes.DType, dims string) (shapes.Shape, error) {
	parts := strings.Split(dims, ",")
	dimensions := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dim, err := strconv.Atoi(part)
		if err != nil {
			return shapes.Invalid(), errors.Wrapf(err, "failed to parse dimension %q of %q", part, dims)
		}
		if dim <= 0 {
			return shapes.Invalid(), errors.Errorf("dimension %d in %q must be > 0", dim, dims)
		}
		dimensions = append(dimensions, dim)
	}
	return shapes.Make(dtype, dimensions...), nil
}

func flopsString(flops float64) string {
	return humanize.CommafWithDigits(flops, 0)
}

func bytesString(numBytes int) string {
	if numBytes < 0 {
		return fmt.Sprintf("-%s", humanize.IBytes(uint64(-numBytes)))
	}
	return humanize.IBytes(uint64(numBytes))
}

// report renders the costs of one operator as a table.
func report(kind metainfo.OpKind, input, output shapes.Shape, result metainfo.Result) string {
	table := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerRowStyle
			}
			if col == 0 {
				return cellStyle.Align(lipgloss.Left)
			}
			return cellStyle.Align(lipgloss.Right)
		}).
		Headers("Pass", "FLOPs", "Activation", "Temporary")
	rows := []struct {
		name    string
		compute float64
		memory  metainfo.MemoryCost
	}{
		{"forward", result.Compute.Forward, result.Memory.Forward},
		{"backward", result.Compute.Backward, result.Memory.Backward},
		{"total", result.Compute.Total, result.Memory.Total},
	}
	for _, row := range rows {
		table.Row(row.name, flopsString(row.compute), bytesString(row.memory.Activation), bytesString(row.memory.Temporary))
	}

	var saved []string
	for _, s := range result.ForwardInputs {
		saved = append(saved, s.String())
	}
	return fmt.Sprintf("%s\n%s\nsaved for backward: %s\n",
		titleStyle.Render(fmt.Sprintf("%s: %s -> %s", kind, input, output)),
		table.Render(), strings.Join(saved, ", "))
}
