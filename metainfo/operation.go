package metainfo

import (
	"fmt"

	"github.com/autoshard/autoshard/types/shapes"
)

// OperationDataType is the role of a tensor in an operation.
type OperationDataType int

const (
	// Argument is an input of the operation, computed by a previous operation.
	Argument OperationDataType = iota

	// Parameter is an input of the operation that is a trainable variable (weights).
	Parameter

	// Output of the operation.
	Output
)

// String implements fmt.Stringer.
func (t OperationDataType) String() string {
	switch t {
	case Argument:
		return "Argument"
	case Parameter:
		return "Parameter"
	case Output:
		return "Output"
	default:
		return fmt.Sprintf("OperationDataType(%d)", int(t))
	}
}

// OperationData is one of the tensors of an operation, tagged with its role.
type OperationData struct {
	Type OperationDataType

	// Name of the tensor in the graph, informative only.
	Name string

	// Data is the shape-only description of the tensor.
	Data shapes.Shape
}

// NewArgument returns an Argument OperationData with the given shape.
func NewArgument(name string, shape shapes.Shape) OperationData {
	return OperationData{Type: Argument, Name: name, Data: shape}
}

// NewOutput returns an Output OperationData with the given shape.
func NewOutput(name string, shape shapes.Shape) OperationData {
	return OperationData{Type: Output, Name: name, Data: shape}
}

// FindFirst returns the shape of the first item with the given type.
//
// It returns a *MissingOperandError if there is none.
func FindFirst(items []OperationData, dataType OperationDataType) (shapes.Shape, error) {
	for _, item := range items {
		if item.Type == dataType {
			return item.Data, nil
		}
	}
	return shapes.Invalid(), newMissingOperandError(dataType, len(items))
}
