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

package metainfo

import (
	"fmt"

	"github.com/autoshard/autoshard/types/shapes"
)

// TrainCycleItem pairs the cost of the forward and backward passes of one training step with their total.
type TrainCycleItem[T any] struct {
	Forward, Backward, Total T
}

// ComputeCost is the number of floating point operations of a training step.
type ComputeCost = TrainCycleItem[float64]

// NewComputeCost returns the ComputeCost with the given forward and backward FLOPs, and their sum as Total.
func NewComputeCost(forward, backward float64) ComputeCost {
	return ComputeCost{Forward: forward, Backward: backward, Total: forward + backward}
}

// MemoryCost in bytes of one pass.
type MemoryCost struct {
	// Activation bytes must persist across the forward/backward boundary.
	Activation int

	// Temporary bytes are allocated and freed within the pass.
	Temporary int
}

// Add returns the field-wise sum of the two memory costs.
func (m MemoryCost) Add(other MemoryCost) MemoryCost {
	return MemoryCost{Activation: m.Activation + other.Activation, Temporary: m.Temporary + other.Temporary}
}

// String implements fmt.Stringer.
func (m MemoryCost) String() string {
	return fmt.Sprintf("{activation=%d, temporary=%d}", m.Activation, m.Temporary)
}

// TrainCycleMemory is the MemoryCost of a training step.
type TrainCycleMemory = TrainCycleItem[MemoryCost]

// Result of an Estimator.
type Result struct {
	Compute ComputeCost
	Memory  TrainCycleMemory

	// ForwardInputs are the tensors of the forward pass that must remain alive until backward executes.
	ForwardInputs []shapes.Shape
}

// ActivationSize returns the total number of bytes of the given tensors, from their shape alone.
func ActivationSize(tensors ...shapes.Shape) int {
	return int(shapes.TotalMemory(tensors...))
}
