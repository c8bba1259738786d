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
	"github.com/pkg/errors"
)

// CheckRank checks that the shape has the given rank.
func (s Shape) CheckRank(rank int) error {
	if s.Rank() != rank {
		return errors.Errorf("shape (%s) has incompatible rank %d -- wanted %d", s, s.Rank(), rank)
	}
	return nil
}

// CheckPoolable checks that the shape can be the input or output of a pooling over numSpatialDims
// spatial axes: it must be valid and have the spatial axes plus at most a batch and a channels axis.
func (s Shape) CheckPoolable(numSpatialDims int) error {
	if !s.Ok() {
		return errors.Errorf("invalid shape %s for pooling", s)
	}
	if s.Rank() < numSpatialDims || s.Rank() > numSpatialDims+2 {
		return errors.Errorf("shape %s has rank %d, pooling over %d spatial axes requires rank in [%d, %d]",
			s, s.Rank(), numSpatialDims, numSpatialDims, numSpatialDims+2)
	}
	return nil
}
