package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/umer200/ivy/internal/dispatch"
	"github.com/umer200/ivy/internal/ops"
	"github.com/umer200/ivy/internal/tensor"
)

var createFlags struct {
	shape    string
	dtype    string
	device   string
	fill     float64
	start    float64
	stop     float64
	step     float64
	num      int
	cols     int
	k        int
	endpoint bool
}

var createCmd = &cobra.Command{
	Use:   "create <zeros|ones|full|empty|eye|arange|linspace>",
	Short: "Run a creation operation and print the result",
	Long: `Create runs one creation operation through the normalization layer and
prints the resulting shape, dtype, device and values.

Example:
  ivy create zeros --shape 2,3
  ivy create arange --start 0 --stop 5
  ivy create linspace --start -0 --stop 1 --num 5
  ivy create eye --shape 3 --k 5 --device gpu:0`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	f := createCmd.Flags()
	f.StringVar(&createFlags.shape, "shape", "", "comma-separated shape (eye: rows)")
	f.StringVar(&createFlags.dtype, "dtype", "", "explicit dtype")
	f.StringVar(&createFlags.device, "device", "", "target device")
	f.Float64Var(&createFlags.fill, "fill", 0, "fill value for full")
	f.Float64Var(&createFlags.start, "start", 0, "range start")
	f.Float64Var(&createFlags.stop, "stop", 0, "range stop")
	f.Float64Var(&createFlags.step, "step", 1, "arange step")
	f.IntVar(&createFlags.num, "num", 50, "linspace sample count")
	f.IntVar(&createFlags.cols, "cols", ops.SameAsRows, "eye columns")
	f.IntVar(&createFlags.k, "k", 0, "eye diagonal offset")
	f.BoolVar(&createFlags.endpoint, "endpoint", true, "linspace includes stop")
}

func runCreate(cmd *cobra.Command, args []string) error {
	var opts []dispatch.Option
	if createFlags.dtype != "" {
		dt, native, err := ctx.ResolveToken(createFlags.dtype)
		if err != nil {
			return err
		}
		ctx.Logger().Debug("resolved dtype token", "token", createFlags.dtype, "dtype", dt, "native", native)
		opts = append(opts, dispatch.WithDType(dt))
	}
	if createFlags.device != "" {
		opts = append(opts, dispatch.OnDevice(tensor.Device(createFlags.device)))
	}
	shape, err := parseShape(createFlags.shape)
	if err != nil {
		return err
	}

	var res *tensor.RawTensor
	switch args[0] {
	case ops.OpZeros:
		res, err = ops.Zeros(ctx, shape, opts...)
	case ops.OpOnes:
		res, err = ops.Ones(ctx, shape, opts...)
	case ops.OpFull:
		res, err = ops.Full(ctx, shape, createFlags.fill, opts...)
	case ops.OpEmpty:
		res, err = ops.Empty(ctx, shape, opts...)
	case ops.OpEye:
		if len(shape) != 1 {
			return fmt.Errorf("eye: --shape must be the row count")
		}
		res, err = ops.Eye(ctx, shape[0], createFlags.cols, createFlags.k, opts...)
	case ops.OpArange:
		res, err = ops.Arange(ctx, number(createFlags.start), number(createFlags.stop), number(createFlags.step), opts...)
	case ops.OpLinspace:
		res, err = ops.Linspace(ctx, createFlags.start, createFlags.stop, createFlags.num, createFlags.endpoint, opts...)
	default:
		return fmt.Errorf("unknown creation operation %q", args[0])
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "shape=%v dtype=%s device=%s\n", []int(res.Shape()), res.DType(), res.Device())
	fmt.Fprintln(out, formatValues(res))
	return nil
}

// number keeps integral flag values integral so arange infers an integer range.
func number(v float64) any {
	if v == float64(int64(v)) {
		return int64(v)
	}
	return v
}

func parseShape(s string) (tensor.Shape, error) {
	if strings.TrimSpace(s) == "" {
		return tensor.Shape{}, nil
	}
	parts := strings.Split(s, ",")
	shape := make(tensor.Shape, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid shape %q: %w", s, err)
		}
		shape[i] = n
	}
	return shape, nil
}

func formatValues(r *tensor.RawTensor) string {
	n := r.NumElements()
	vals := make([]string, n)
	for i := 0; i < n; i++ {
		c := r.Complex128At(i)
		switch {
		case r.DType().IsComplex():
			vals[i] = strconv.FormatComplex(c, 'g', -1, 128)
		case r.DType().IsBool():
			vals[i] = strconv.FormatBool(c != 0)
		default:
			vals[i] = strconv.FormatFloat(real(c), 'g', -1, 64)
		}
	}
	return "[" + strings.Join(vals, " ") + "]"
}
