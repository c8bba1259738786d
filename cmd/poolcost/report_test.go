package main

import (
	"testing"

	"github.com/autoshard/autoshard/metainfo"
	"github.com/autoshard/autoshard/metainfo/pooling"
	"github.com/autoshard/autoshard/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/require"
)

func TestParseShape(t *testing.T) {
	s, err := parseShape(dtypes.Float32, "1, 3,8,8")
	require.NoError(t, err)
	require.True(t, s.Equal(shapes.Make(dtypes.Float32, 1, 3, 8, 8)))

	s, err = parseShape(dtypes.Int32, "")
	require.NoError(t, err)
	require.True(t, s.IsScalar())

	_, err = parseShape(dtypes.Float32, "1,x,8")
	require.Error(t, err)
	_, err = parseShape(dtypes.Float32, "1,0,8")
	require.Error(t, err)
}

func TestReport(t *testing.T) {
	input := must.M1(parseShape(dtypes.Float32, "1,3,8,8"))
	output := must.M1(parseShape(dtypes.Float32, "1,3,4,4"))
	registry := must.M1(pooling.NewRegistry(pooling.DefaultConfig()))
	result := must.M1(registry.Estimate(metainfo.MaxPool2d,
		metainfo.NewArgument("input", input), metainfo.NewOutput("output", output)))
	got := report(metainfo.MaxPool2d, input, output, result)
	require.Contains(t, got, "MaxPool2d")
	require.Contains(t, got, "backward")
	require.Contains(t, got, "384 B")
	require.Contains(t, got, "1.7 KiB")
	require.Contains(t, got, "saved for backward: (Float32)[1 3 8 8]")

	require.Equal(t, "-384 B", bytesString(-384))
	require.Equal(t, "1,536", flopsString(1536))
}
