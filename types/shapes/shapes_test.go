/*
 *	Copyright 2026 The AutoShard Authors
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

package shapes

import (
	"testing"

	. "github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	invalidShape := Invalid()
	require.False(t, invalidShape.Ok())

	shape0 := Make(Float64)
	require.True(t, shape0.Ok())
	require.True(t, shape0.IsScalar())
	require.Equal(t, 0, shape0.Rank())
	require.Len(t, shape0.Dimensions, 0)
	require.Equal(t, 1, shape0.Size())
	require.Equal(t, 8, int(shape0.Memory()))

	shape1 := Make(Float32, 4, 3, 2)
	require.True(t, shape1.Ok())
	require.False(t, shape1.IsScalar())
	require.Equal(t, 3, shape1.Rank())
	require.Len(t, shape1.Dimensions, 3)
	require.Equal(t, 4*3*2, shape1.Size())
	require.Equal(t, 4*4*3*2, int(shape1.Memory()))

	require.Panics(t, func() { _ = Make(Float32, 4, 0) })
	require.Panics(t, func() { _ = Make(Float32, -1) })
}

func TestWithDType(t *testing.T) {
	output := Make(Float32, 1, 3, 4, 4)
	indices := output.WithDType(Int64)
	require.Equal(t, Int64, indices.DType)
	require.True(t, indices.EqualDimensions(output))
	require.False(t, indices.Equal(output))
	require.Equal(t, 2*int(output.Memory()), int(indices.Memory()))

	// Changing the clone doesn't change the original.
	indices.Dimensions[0] = 7
	require.Equal(t, 1, output.Dimensions[0])
}

func TestTotalMemory(t *testing.T) {
	require.Equal(t, uintptr(0), TotalMemory())
	input := Make(Float32, 1, 3, 8, 8)
	output := Make(Float32, 1, 3, 4, 4)
	require.Equal(t, uintptr(768+192), TotalMemory(input, output))
}

func TestChecks(t *testing.T) {
	shape := Make(Float32, 2, 16, 16, 8)
	require.NoError(t, shape.CheckRank(4))
	require.Error(t, shape.CheckRank(3))

	require.NoError(t, shape.CheckPoolable(2))
	require.NoError(t, shape.CheckPoolable(3))
	require.Error(t, shape.CheckPoolable(1))
	require.Error(t, Invalid().CheckPoolable(1))
	require.Equal(t, "(Float32)[2 16 16 8]", shape.String())
}
