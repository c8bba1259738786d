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

// Package flops maps the primitive operations that layers are lowered to onto functions that count
// their floating point operations, from the shapes of their inputs and outputs only.
package flops

import (
	"fmt"

	"github.com/autoshard/autoshard/types/shapes"
	"github.com/pkg/errors"
)

// Primitive identifies a primitive operation of the training graph, as opposed to the layer
// (see metainfo.OpKind) that is lowered to it.
type Primitive string

// Pooling primitives. The backward primitives take the gradient of the forward output as input,
// and produce the gradient of the forward input as output.
const (
	AvgPool1d         Primitive = "avg_pool1d"
	AvgPool2d         Primitive = "avg_pool2d"
	AvgPool3d         Primitive = "avg_pool3d"
	AvgPool1dBackward Primitive = "avg_pool1d_backward"
	AvgPool2dBackward Primitive = "avg_pool2d_backward"
	AvgPool3dBackward Primitive = "avg_pool3d_backward"

	AdaptiveAvgPool1d         Primitive = "adaptive_avg_pool1d"
	AdaptiveAvgPool2d         Primitive = "adaptive_avg_pool2d"
	AdaptiveAvgPool3d         Primitive = "adaptive_avg_pool3d"
	AdaptiveAvgPool1dBackward Primitive = "adaptive_avg_pool1d_backward"
	AdaptiveAvgPool2dBackward Primitive = "adaptive_avg_pool2d_backward"
	AdaptiveAvgPool3dBackward Primitive = "adaptive_avg_pool3d_backward"

	MaxPool1dWithIndices         Primitive = "max_pool1d_with_indices"
	MaxPool2dWithIndices         Primitive = "max_pool2d_with_indices"
	MaxPool3dWithIndices         Primitive = "max_pool3d_with_indices"
	MaxPool1dWithIndicesBackward Primitive = "max_pool1d_with_indices_backward"
	MaxPool2dWithIndicesBackward Primitive = "max_pool2d_with_indices_backward"
	MaxPool3dWithIndicesBackward Primitive = "max_pool3d_with_indices_backward"

	AdaptiveMaxPool1d         Primitive = "adaptive_max_pool1d"
	AdaptiveMaxPool2d         Primitive = "adaptive_max_pool2d"
	AdaptiveMaxPool3d         Primitive = "adaptive_max_pool3d"
	AdaptiveMaxPool1dBackward Primitive = "adaptive_max_pool1d_backward"
	AdaptiveMaxPool2dBackward Primitive = "adaptive_max_pool2d_backward"
	AdaptiveMaxPool3dBackward Primitive = "adaptive_max_pool3d_backward"
)

// Counter returns the number of floating point operations of a primitive with the given
// input and output shapes.
type Counter func(inputs, outputs []shapes.Shape) (float64, error)

// Elementwise returns a Counter for primitives that do a constant amount of work per element:
// inputScale operations per element of the first input plus outputScale operations per element
// of the first output. Scalar (rank 0) operands count as no work. The count is truncated to an integer.
func Elementwise(inputScale, outputScale float64) Counter {
	return func(inputs, outputs []shapes.Shape) (float64, error) {
		var count float64
		if inputScale != 0 {
			if len(inputs) == 0 {
				return 0, errors.New("elementwise FLOP counter requires at least one input")
			}
			count += inputScale * float64(elements(inputs[0]))
		}
		if outputScale != 0 {
			if len(outputs) == 0 {
				return 0, errors.New("elementwise FLOP counter requires at least one output")
			}
			count += outputScale * float64(elements(outputs[0]))
		}
		return float64(int64(count)), nil
	}
}

// elements counted by Elementwise: scalars count as 0.
func elements(s shapes.Shape) int {
	if s.Rank() == 0 {
		return 0
	}
	return s.Size()
}

// UnsupportedPrimitiveError is returned when a Table has no Counter for a primitive.
type UnsupportedPrimitiveError struct {
	Primitive Primitive
}

// Error implements error.
func (e *UnsupportedPrimitiveError) Error() string {
	return fmt.Sprintf("no FLOP counter for primitive %q", e.Primitive)
}

// Table maps primitives to their FLOP Counter.
type Table map[Primitive]Counter

// Default returns a new Table with the counters of all primitives in this package.
//
// Pooling visits each element of its input once on the forward pass, and writes each
// element of the input gradient once on the backward pass.
func Default() Table {
	t := make(Table)
	forward := Elementwise(1, 0)
	backward := Elementwise(0, 1)
	for _, p := range []Primitive{
		AvgPool1d, AvgPool2d, AvgPool3d,
		AdaptiveAvgPool1d, AdaptiveAvgPool2d, AdaptiveAvgPool3d,
		MaxPool1dWithIndices, MaxPool2dWithIndices, MaxPool3dWithIndices,
		AdaptiveMaxPool1d, AdaptiveMaxPool2d, AdaptiveMaxPool3d,
	} {
		t[p] = forward
	}
	for _, p := range []Primitive{
		AvgPool1dBackward, AvgPool2dBackward, AvgPool3dBackward,
		AdaptiveAvgPool1dBackward, AdaptiveAvgPool2dBackward, AdaptiveAvgPool3dBackward,
		MaxPool1dWithIndicesBackward, MaxPool2dWithIndicesBackward, MaxPool3dWithIndicesBackward,
		AdaptiveMaxPool1dBackward, AdaptiveMaxPool2dBackward, AdaptiveMaxPool3dBackward,
	} {
		t[p] = backward
	}
	return t
}

// Count returns the FLOPs of primitive for the given shapes.
//
// It returns an *UnsupportedPrimitiveError if the table has no counter for primitive: a missing
// counter is never taken as zero cost.
func (t Table) Count(primitive Primitive, inputs, outputs []shapes.Shape) (float64, error) {
	counter, found := t[primitive]
	if !found || counter == nil {
		return 0, errors.WithStack(&UnsupportedPrimitiveError{Primitive: primitive})
	}
	count, err := counter(inputs, outputs)
	if err != nil {
		return 0, errors.WithMessagef(err, "counting FLOPs of %q", primitive)
	}
	return count, nil
}

// Clone returns a shallow copy of the table, that can be changed without affecting t.
func (t Table) Clone() Table {
	t2 := make(Table, len(t))
	for p, c := range t {
		t2[p] = c
	}
	return t2
}
