// Command rotcalc converts, composes and interpolates rotations.
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"orientation-kit/internal/mathutil"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rotcalc:", err)
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "rotcalc",
		Short:         "Convert, compose and interpolate rotations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log := logrus.New()
			log.SetOutput(cmd.ErrOrStderr())
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			mathutil.SetLogger(log)
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	for _, sub := range []*cobra.Command{
		eulerCommand(),
		quatCommand(),
		axisCommand(),
		betweenCommand(),
		combineCommand(),
		slerpCommand(),
	} {
		// Flags go before the numbers, so later negative values such as
		// -1 are not taken for shorthand flags. A leading negative value
		// needs "--" first.
		sub.Flags().SetInterspersed(false)
		root.AddCommand(sub)
	}
	root.Example = `  rotcalc euler 10 90 0
  rotcalc between 1 0 0 -1 0 0
  rotcalc combine -- -20 35 0 0 90 0`
	return root
}

func eulerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "euler PITCH YAW ROLL",
		Short: "Describe a rotator given in degrees",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			r := mathutil.NewRotator(v[0], v[1], v[2])
			describe(cmd.OutOrStdout(), r, r.Quaternion())
			return nil
		},
	}
}

func quatCommand() *cobra.Command {
	var normalize bool
	cmd := &cobra.Command{
		Use:   "quat W X Y Z",
		Short: "Describe a unit quaternion",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			q := mathutil.NewQuatWXYZ(v[0], v[1], v[2], v[3])
			if normalize {
				q.Normalize(mathutil.SmallNumber)
			}
			if !q.IsNormalized() {
				return fmt.Errorf("%v: %w (use --normalize)", q, mathutil.ErrNotNormalized)
			}
			describe(cmd.OutOrStdout(), q.Rotator(), q)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&normalize, "normalize", "n", false, "normalize the input first")
	return cmd
}

func axisCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "axis X Y Z DEGREES",
		Short: "Describe a rotation about an axis",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			axis := mathutil.SafeNormalize(mathutil.Vec3{v[0], v[1], v[2]}, mathutil.SmallNumber)
			if axis == (mathutil.Vec3{}) {
				return fmt.Errorf("axis must not be zero")
			}
			q := mathutil.QuatFromAxisAngle(axis, mathutil.Deg2Rad(v[3]))
			describe(cmd.OutOrStdout(), q.Rotator(), q)
			return nil
		},
	}
}

func betweenCommand() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "between X1 Y1 Z1 X2 Y2 Z2",
		Short: "Shortest rotation taking one direction onto another",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			from := mathutil.Vec3{v[0], v[1], v[2]}
			to := mathutil.Vec3{v[3], v[4], v[5]}

			q := mathutil.FindBetweenVectors(from, to)
			if strict {
				if q, err = mathutil.TryFindBetweenVectors(from, to); err != nil {
					return err
				}
			}
			describe(cmd.OutOrStdout(), q.Rotator(), q)
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on anti-parallel input instead of picking an axis")
	return cmd
}

func combineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "combine P1 Y1 R1 P2 Y2 R2",
		Short: "Apply the second rotator, then the first",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			a := mathutil.NewRotator(v[0], v[1], v[2])
			b := mathutil.NewRotator(v[3], v[4], v[5])
			r := mathutil.CombineRotators(a, b)
			describe(cmd.OutOrStdout(), r, a.Quaternion().Mul(b.Quaternion()))
			return nil
		},
	}
}

func slerpCommand() *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "slerp P1 Y1 R1 P2 Y2 R2 [T]",
		Short: "Interpolate between two rotators",
		Long: `Slerp prints the rotation at T (default 0.5) between two rotators, or
with --steps N a table of N+1 evenly spaced samples from 0 to 1.`,
		Args: cobra.RangeArgs(6, 7),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			a := mathutil.NewRotator(v[0], v[1], v[2]).Quaternion()
			b := mathutil.NewRotator(v[3], v[4], v[5]).Quaternion()
			w := cmd.OutOrStdout()

			if steps > 0 {
				for i := 0; i <= steps; i++ {
					t := float32(i) / float32(steps)
					q := mathutil.Slerp(a, b, t)
					fmt.Fprintf(w, "%.3f  %s  %s\n", t, fmtRotator(q.Rotator()), fmtQuat(q))
				}
				return nil
			}

			t := float32(0.5)
			if len(v) == 7 {
				t = v[6]
			}
			q := mathutil.Slerp(a, b, t)
			describe(w, q.Rotator(), q)
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "print N+1 samples instead of one")
	return cmd
}

func describe(w io.Writer, r mathutil.Rotator, q mathutil.Quat) {
	axis, angle := q.ToAxisAndAngle()
	fmt.Fprintf(w, "rotator: %s\n", fmtRotator(r))
	fmt.Fprintf(w, "quat:    %s\n", fmtQuat(q))
	fmt.Fprintf(w, "axis:    %s angle: %s\n", fmtVec(axis), fmtNum(mathutil.Rad2Deg(angle)))
	fmt.Fprintf(w, "forward: %s\n", fmtVec(q.ForwardVector()))
	fmt.Fprintf(w, "right:   %s\n", fmtVec(q.RightVector()))
	fmt.Fprintf(w, "up:      %s\n", fmtVec(q.UpVector()))
}

func parseFloats(args []string) ([]float32, error) {
	out := make([]float32, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// fmtNum prints 3 decimals without a "-0.000".
func fmtNum(f float32) string {
	if math.Abs(float64(f)) < 5e-4 {
		f = 0
	}
	return strconv.FormatFloat(float64(f), 'f', 3, 32)
}

func fmtRotator(r mathutil.Rotator) string {
	return fmt.Sprintf("pitch=%s yaw=%s roll=%s", fmtNum(r.Pitch), fmtNum(r.Yaw), fmtNum(r.Roll))
}

func fmtQuat(q mathutil.Quat) string {
	return fmt.Sprintf("w=%s x=%s y=%s z=%s", fmtNum(q.W), fmtNum(q.X), fmtNum(q.Y), fmtNum(q.Z))
}

func fmtVec(v mathutil.Vec3) string {
	return fmt.Sprintf("(%s, %s, %s)", fmtNum(v[0]), fmtNum(v[1]), fmtNum(v[2]))
}
