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

// Package pooling provides the cost estimators of the adaptive average pooling and max pooling layers,
// in their 1D, 2D and 3D variants.
//
// Both take the operation's first Argument as the pooled input and its first Output as the pooled output.
// The backward pass is modeled as the forward primitive in reverse: its input is the output gradient
// (shaped like the output) and its output is the input gradient (shaped like the input).
package pooling

import (
	"github.com/autoshard/autoshard/metainfo"
	"github.com/autoshard/autoshard/metainfo/flops"
	"github.com/autoshard/autoshard/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// AvgPoolKinds are the operator kinds estimated by Config.AvgPool, indexed by number of spatial axes - 1.
var AvgPoolKinds = []metainfo.OpKind{metainfo.AdaptiveAvgPool1d, metainfo.AdaptiveAvgPool2d, metainfo.AdaptiveAvgPool3d}

// MaxPoolKinds are the operator kinds estimated by Config.MaxPool, indexed by number of spatial axes - 1.
var MaxPoolKinds = []metainfo.OpKind{metainfo.MaxPool1d, metainfo.MaxPool2d, metainfo.MaxPool3d}

// Config of the pooling estimators.
type Config struct {
	// Flops counts the primitives the pooling layers are lowered to.
	Flops flops.Table

	// IndexDType is the dtype of the indices saved by max pooling: it must be an integer
	// wide enough to index any element of the input.
	IndexDType dtypes.DType
}

// DefaultConfig uses the default FLOP table and Int64 indices.
func DefaultConfig() Config {
	return Config{
		Flops:      flops.Default(),
		IndexDType: dtypes.Int64,
	}
}

// Validate returns an error if the configuration can't be used to estimate costs.
func (cfg Config) Validate() error {
	if cfg.Flops == nil {
		return errors.New("pooling.Config: no FLOP table configured")
	}
	if !cfg.IndexDType.IsInt() {
		return errors.Errorf("pooling.Config: index dtype %s is not an integer type", cfg.IndexDType)
	}
	return nil
}

// checkIndexCapacity returns an error if cfg.IndexDType can't address every one of the numElements
// of the pooled input. Indices are taken as signed.
func (cfg Config) checkIndexCapacity(numElements int) error {
	bits := 8 * int(cfg.IndexDType.Memory())
	if bits >= 64 {
		return nil
	}
	maxIndex := uint64(1)<<(bits-1) - 1
	if uint64(numElements-1) > maxIndex {
		return errors.Errorf("index dtype %s can't address the %d elements of the input", cfg.IndexDType, numElements)
	}
	return nil
}

var defaultConfig = DefaultConfig()

// AvgPool estimates the costs of an adaptive average pooling with the default configuration.
func AvgPool(items ...metainfo.OperationData) (metainfo.Result, error) {
	return defaultConfig.AvgPool(items...)
}

// MaxPool estimates the costs of a max pooling with the default configuration.
func MaxPool(items ...metainfo.OperationData) (metainfo.Result, error) {
	return defaultConfig.MaxPool(items...)
}

// withSpatialAxes returns estimator restricted to inputs that can be pooled over numSpatialDims axes.
func withSpatialAxes(numSpatialDims int, estimator metainfo.Estimator) metainfo.Estimator {
	return func(items ...metainfo.OperationData) (metainfo.Result, error) {
		input, err := metainfo.FindFirst(items, metainfo.Argument)
		if err != nil {
			return metainfo.Result{}, err
		}
		if err = input.CheckPoolable(numSpatialDims); err != nil {
			return metainfo.Result{}, errors.WithMessagef(err, "%dD pooling", numSpatialDims)
		}
		return estimator(items...)
	}
}

// Register the pooling estimators of cfg in registry, for all kinds in AvgPoolKinds and MaxPoolKinds.
//
// The estimator of each kind also checks that the input rank matches its number of spatial axes.
func Register(registry *metainfo.Registry, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	for ii, kind := range AvgPoolKinds {
		if err := registry.Register(withSpatialAxes(ii+1, cfg.AvgPool), kind); err != nil {
			return err
		}
	}
	for ii, kind := range MaxPoolKinds {
		if err := registry.Register(withSpatialAxes(ii+1, cfg.MaxPool), kind); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a new registry with the pooling estimators of cfg registered.
func NewRegistry(cfg Config) (*metainfo.Registry, error) {
	registry := metainfo.NewRegistry()
	if err := Register(registry, cfg); err != nil {
		return nil, err
	}
	return registry, nil
}

// operands returns the pooled input and output. They must be valid and have the same rank.
func operands(items []metainfo.OperationData) (input, output shapes.Shape, err error) {
	input, err = metainfo.FindFirst(items, metainfo.Argument)
	if err != nil {
		return
	}
	output, err = metainfo.FindFirst(items, metainfo.Output)
	if err != nil {
		return
	}
	if !input.Ok() || !output.Ok() {
		err = errors.Errorf("pooling requires valid input and output shapes, got input=%s, output=%s", input, output)
		return
	}
	if input.IsScalar() {
		err = errors.Errorf("pooling requires at least one axis, got input=%s", input)
		return
	}
	if err = output.CheckRank(input.Rank()); err != nil {
		err = errors.WithMessagef(err, "pooled output must have the rank of the input %s", input)
	}
	return
}

// computeCost counts the forward primitive on (input -> output) and the backward primitive on
// (output gradient -> input gradient).
func (cfg Config) computeCost(forward, backward flops.Primitive, input, output shapes.Shape) (metainfo.ComputeCost, error) {
	fwdFlops, err := cfg.Flops.Count(forward, []shapes.Shape{input}, []shapes.Shape{output})
	if err != nil {
		return metainfo.ComputeCost{}, err
	}
	bwdFlops, err := cfg.Flops.Count(backward, []shapes.Shape{output}, []shapes.Shape{input})
	if err != nil {
		return metainfo.ComputeCost{}, err
	}
	return metainfo.NewComputeCost(fwdFlops, bwdFlops), nil
}

// AvgPool estimates the costs of an adaptive average pooling.
//
// The forward pass retains its output; the backward pass produces the input gradient. No temporary
// buffers are used.
func (cfg Config) AvgPool(items ...metainfo.OperationData) (metainfo.Result, error) {
	if cfg.Flops == nil {
		return metainfo.Result{}, errors.New("AvgPool: no FLOP table configured")
	}
	input, output, err := operands(items)
	if err != nil {
		return metainfo.Result{}, errors.WithMessage(err, "AvgPool")
	}
	compute, err := cfg.computeCost(flops.AdaptiveAvgPool2d, flops.AdaptiveAvgPool2dBackward, input, output)
	if err != nil {
		return metainfo.Result{}, errors.WithMessage(err, "AvgPool")
	}

	fwdMemory := metainfo.MemoryCost{Activation: metainfo.ActivationSize(output)}
	bwdMemory := metainfo.MemoryCost{Activation: metainfo.ActivationSize(input)}
	totalMemory := metainfo.MemoryCost{Activation: fwdMemory.Activation + bwdMemory.Activation}

	if klog.V(2).Enabled() {
		klog.Infof("AvgPool(%s -> %s): flops=%v, memory fwd=%s bwd=%s", input, output, compute, fwdMemory, bwdMemory)
	}
	return metainfo.Result{
		Compute:       compute,
		Memory:        metainfo.TrainCycleMemory{Forward: fwdMemory, Backward: bwdMemory, Total: totalMemory},
		ForwardInputs: []shapes.Shape{input},
	}, nil
}

// MaxPool estimates the costs of a max pooling.
//
// Max pooling saves the index of the maximum of each window in a buffer shaped like the output,
// with cfg.IndexDType. The forward pass retains input, output and indices. The backward pass uses the
// indices to route the gradients and then frees them, so they are accounted as temporary memory of
// the backward pass and discounted from its activation.
//
// It returns a *metainfo.InvalidCostError if the indices take more bytes than the input, since the
// backward activation would be negative.
func (cfg Config) MaxPool(items ...metainfo.OperationData) (metainfo.Result, error) {
	if err := cfg.Validate(); err != nil {
		return metainfo.Result{}, errors.WithMessage(err, "MaxPool")
	}
	input, output, err := operands(items)
	if err != nil {
		return metainfo.Result{}, errors.WithMessage(err, "MaxPool")
	}
	if err = cfg.checkIndexCapacity(input.Size()); err != nil {
		return metainfo.Result{}, errors.WithMessage(err, "MaxPool")
	}
	compute, err := cfg.computeCost(flops.MaxPool2dWithIndices, flops.MaxPool2dWithIndicesBackward, input, output)
	if err != nil {
		return metainfo.Result{}, errors.WithMessage(err, "MaxPool")
	}

	indices := output.WithDType(cfg.IndexDType)
	inputBytes := metainfo.ActivationSize(input)
	indicesBytes := metainfo.ActivationSize(indices)
	if indicesBytes > inputBytes {
		return metainfo.Result{}, metainfo.NewInvalidCostError(
			"MaxPool(%s -> %s): indices %s take %d bytes, more than the %d bytes of the input",
			input, output, indices, indicesBytes, inputBytes)
	}

	fwdMemory := metainfo.MemoryCost{Activation: metainfo.ActivationSize(input, output, indices)}
	bwdMemory := metainfo.MemoryCost{Activation: inputBytes - indicesBytes, Temporary: indicesBytes}
	totalMemory := metainfo.MemoryCost{
		Activation: fwdMemory.Activation + bwdMemory.Activation,
		Temporary:  bwdMemory.Temporary,
	}

	if klog.V(2).Enabled() {
		klog.Infof("MaxPool(%s -> %s, indices %s): flops=%v, memory fwd=%s bwd=%s",
			input, output, indices, compute, fwdMemory, bwdMemory)
	}
	return metainfo.Result{
		Compute:       compute,
		Memory:        metainfo.TrainCycleMemory{Forward: fwdMemory, Backward: bwdMemory, Total: totalMemory},
		ForwardInputs: []shapes.Shape{input},
	}, nil
}
