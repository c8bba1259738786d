// poolcost prints the compute and memory costs the planner estimates for a pooling layer.
//
// Example:
//
//	poolcost -op MaxPool2d -input 8,64,56,56 -output 8,64,28,28 -dtype float16
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/autoshard/autoshard/metainfo"
	"github.com/autoshard/autoshard/metainfo/pooling"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagOp = flag.String("op", string(metainfo.MaxPool2d), "Operator kind to estimate. "+
		"See -list for the available kinds.")
	flagInput      = flag.String("input", "", "Comma-separated dimensions of the pooled input, e.g. \"1,3,8,8\".")
	flagOutput     = flag.String("output", "", "Comma-separated dimensions of the pooled output, e.g. \"1,3,4,4\".")
	flagDType      = flag.String("dtype", "float32", "DType of the input and output.")
	flagIndexDType = flag.String("index_dtype", "int64", "DType of the indices saved by max pooling.")
	flagList       = flag.Bool("list", false, "Lists the operator kinds with a registered estimator and exits.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	cfg := pooling.DefaultConfig()
	cfg.IndexDType = must.M1(dtypes.DTypeString(*flagIndexDType))
	registry := must.M1(pooling.NewRegistry(cfg))

	if *flagList {
		for _, kind := range registry.Kinds() {
			fmt.Println(kind)
		}
		return
	}

	kind := metainfo.OpKind(*flagOp)
	if !registry.Has(kind) {
		klog.Errorf("Unknown operator kind %q, known kinds are %v.", kind, registry.Kinds())
		os.Exit(1)
	}
	if *flagInput == "" || *flagOutput == "" {
		klog.Errorf("Missing -input or -output dimensions. See 'poolcost -help'.")
		os.Exit(1)
	}
	dtype := must.M1(dtypes.DTypeString(*flagDType))
	input, err := parseShape(dtype, *flagInput)
	if err != nil {
		klog.Errorf("Invalid -input: %+v", err)
		os.Exit(1)
	}
	output, err := parseShape(dtype, *flagOutput)
	if err != nil {
		klog.Errorf("Invalid -output: %+v", err)
		os.Exit(1)
	}

	result, err := registry.Estimate(kind,
		metainfo.NewArgument("input", input),
		metainfo.NewOutput("output", output))
	if err != nil {
		klog.Errorf("Failed to estimate costs: %+v", err)
		os.Exit(1)
	}
	fmt.Println(report(kind, input, output, result))
}
