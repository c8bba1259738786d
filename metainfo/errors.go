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

	"github.com/pkg/errors"
)

// MissingOperandError is returned when an operation lacks an operand of a required role.
type MissingOperandError struct {
	Role     OperationDataType
	NumItems int
}

func newMissingOperandError(role OperationDataType, numItems int) error {
	return errors.WithStack(&MissingOperandError{Role: role, NumItems: numItems})
}

// Error implements error.
func (e *MissingOperandError) Error() string {
	return fmt.Sprintf("missing operand with role %s in the %d operation data items given", e.Role, e.NumItems)
}

// InvalidCostError is returned when a cost model would yield an impossible value, like a negative byte count.
type InvalidCostError struct {
	Reason string
}

// Error implements error.
func (e *InvalidCostError) Error() string {
	return "invalid cost: " + e.Reason
}

// NewInvalidCostError returns an InvalidCostError with a formatted reason, with a stack trace.
func NewInvalidCostError(format string, args ...any) error {
	return errors.WithStack(&InvalidCostError{Reason: fmt.Sprintf(format, args...)})
}

// UnregisteredOperatorError is returned by Registry.Estimate for an operator kind without Estimator.
type UnregisteredOperatorError struct {
	Kind OpKind
}

// Error implements error.
func (e *UnregisteredOperatorError) Error() string {
	return fmt.Sprintf("no cost estimator registered for operator kind %q", e.Kind)
}
