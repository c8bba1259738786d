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
	"slices"

	"github.com/autoshard/autoshard/types"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// OpKind identifies a kind of operator (a layer type) in the training graph.
type OpKind string

// Operator kinds with estimators provided by this module.
const (
	AdaptiveAvgPool1d OpKind = "AdaptiveAvgPool1d"
	AdaptiveAvgPool2d OpKind = "AdaptiveAvgPool2d"
	AdaptiveAvgPool3d OpKind = "AdaptiveAvgPool3d"
	MaxPool1d         OpKind = "MaxPool1d"
	MaxPool2d         OpKind = "MaxPool2d"
	MaxPool3d         OpKind = "MaxPool3d"
)

// Estimator returns the costs of one operator instance, given its tensors tagged by role.
//
// Implementations must be pure functions of the shapes given.
type Estimator func(items ...OperationData) (Result, error)

// Registry maps operator kinds to their Estimator.
//
// It should be populated at start-up with Register, after which it is only read,
// and it is safe for concurrent use by the solver. The zero value is an empty Registry.
type Registry struct {
	estimators map[OpKind]Estimator
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{estimators: make(map[OpKind]Estimator)}
}

// Register estimator for each of the given operator kinds.
//
// It returns an error, and registers nothing, if any of the kinds is already registered
// or is repeated in kinds.
func (r *Registry) Register(estimator Estimator, kinds ...OpKind) error {
	if estimator == nil {
		return errors.New("Registry.Register: nil estimator")
	}
	seen := types.MakeSet[OpKind](len(kinds))
	for _, kind := range kinds {
		if seen.Has(kind) {
			return errors.Errorf("Registry.Register: operator kind %q given more than once", kind)
		}
		seen.Insert(kind)
		if r.Has(kind) {
			return errors.Errorf("Registry.Register: operator kind %q already has an estimator", kind)
		}
	}
	if r.estimators == nil {
		r.estimators = make(map[OpKind]Estimator, len(kinds))
	}
	for _, kind := range kinds {
		r.estimators[kind] = estimator
	}
	return nil
}

// Has returns whether kind has a registered Estimator.
func (r *Registry) Has(kind OpKind) bool {
	_, found := r.estimators[kind]
	return found
}

// Kinds returns the registered operator kinds, sorted.
func (r *Registry) Kinds() []OpKind {
	kinds := make([]OpKind, 0, len(r.estimators))
	for kind := range r.estimators {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// Estimate dispatches to the Estimator registered for kind.
//
// Errors from the estimator are returned wrapped with the operator kind.
func (r *Registry) Estimate(kind OpKind, items ...OperationData) (Result, error) {
	estimator, found := r.estimators[kind]
	if !found {
		return Result{}, errors.WithStack(&UnregisteredOperatorError{Kind: kind})
	}
	klog.V(1).Infof("estimating costs of %s with %d operation data items", kind, len(items))
	result, err := estimator(items...)
	if err != nil {
		return Result{}, errors.WithMessagef(err, "estimating costs of %s", kind)
	}
	return result, nil
}
