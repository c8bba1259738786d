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

// Package metainfo holds the per-operator cost model consumed by the sharding-strategy solver.
//
// For each operator instance in a training graph the solver asks an Estimator for:
//
//   - The compute cost, in FLOPs, of the forward and backward passes (ComputeCost).
//   - The memory cost, in bytes, of the forward and backward passes (MemoryCost), split into
//     activation bytes that live across the forward/backward boundary and temporary bytes
//     allocated and freed within one pass.
//   - The forward inputs that must be kept alive until the backward pass.
//
// Estimators work only on shape metadata (see package shapes): no tensor is ever materialized.
// They are pure functions, so they can be called concurrently.
//
// Estimators are registered per operator kind in a Registry, see sub-package pooling for the
// pooling layers, and sub-package flops for the FLOP counts of the primitives they are lowered to.
package metainfo
