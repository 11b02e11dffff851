// Copyright 2025 go-slicearg Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command slicegen renders the slice argument headers and expands the
// slice accessors for a concrete Go function signature.
//
// Usage:
//
//	slicegen header --arch amd64 -o slicearg_amd64.h
//	slicegen layout --arch arm64 --sig 'func(a, b []float32, n int)'
//	slicegen expand --arch amd64 --sig 'func(a, b []complex64) int' --param b --op size --reg BX --probe
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajroetker/go-slicearg/slicearg"
)

type app struct {
	verbose bool
	arch    string
	lg      *zap.Logger

	// newLogger builds the logger used under --verbose.
	newLogger func() (*zap.Logger, error)
}

func (a *app) target() (slicearg.Target, error) {
	return slicearg.GetTarget(a.arch)
}

func newRootCmd(out io.Writer) *cobra.Command {
	return newApp(func() (*zap.Logger, error) {
		return zap.NewDevelopment(zap.WithCaller(false))
	}).command(out)
}

func newApp(newLogger func() (*zap.Logger, error)) *app {
	return &app{lg: zap.NewNop(), newLogger: newLogger}
}

func (a *app) command(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "slicegen",
		Short:         "Generate Go assembly accessors for slice arguments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !a.verbose {
				return nil
			}
			lg, err := a.newLogger()
			if err != nil {
				return errors.Wrap(err, "logger")
			}
			a.lg = lg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.lg.Sync()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log progress to stderr")
	root.PersistentFlags().StringVar(&a.arch, "arch", "amd64", "target architecture (amd64, arm64)")

	root.AddCommand(
		newHeaderCmd(a),
		newLayoutCmd(a),
		newExpandCmd(a),
	)
	return root
}

func newHeaderCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "header",
		Short: "Write the slice_addr, slice_len and slice_size header",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.target()
			if err != nil {
				return err
			}
			data, err := slicearg.Header(t)
			if err != nil {
				return err
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrapf(err, "write %s", output)
			}
			a.lg.Info("Wrote header",
				zap.String("arch", t.Arch),
				zap.String("path", output),
				zap.Int("bytes", len(data)),
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newLayoutCmd(a *app) *cobra.Command {
	var (
		sig string
		reg string
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show frame offsets and macro calls for the slice parameters of a signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.target()
			if err != nil {
				return err
			}
			l, err := ParseLayout(sig)
			if err != nil {
				return err
			}
			if reg == "" {
				reg = t.Registers[1]
			}
			a.lg.Debug("Parsed signature",
				zap.String("sig", sig),
				zap.Int("params", len(l.Params)),
				zap.Int("slices", len(l.SliceParams())),
				zap.Int("frame", l.FrameBytes),
			)
			data, err := RenderLayout(t, l, reg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&sig, "sig", "", `function type, e.g. "func(a, b []float32) int"`)
	cmd.Flags().StringVar(&reg, "reg", "", "destination register in the printed calls")
	_ = cmd.MarkFlagRequired("sig")
	return cmd
}

func newExpandCmd(a *app) *cobra.Command {
	var (
		sig   string
		op    string
		probe bool
		req   Request
	)
	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Expand one slice accessor into vet-clean instructions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.target()
			if err != nil {
				return err
			}
			l, err := ParseLayout(sig)
			if err != nil {
				return err
			}
			o, err := ParseOp(op)
			if err != nil {
				return err
			}
			req.Target, req.Layout, req.Op = t, l, o
			if probe && req.Func == "" {
				req.Func = ProbeName(o, req.Param)
			}
			data, err := Render(req)
			if err != nil {
				return errors.Wrapf(err, "expand %s(%s)", o.Macro(), req.Param)
			}
			a.lg.Debug("Expanded",
				zap.String("macro", o.Macro()),
				zap.String("param", req.Param),
				zap.String("reg", req.Reg),
				zap.String("func", req.Func),
			)
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&sig, "sig", "", "function type the expansion reads its argument from")
	f.StringVar(&req.Param, "param", "", "slice parameter")
	f.StringVar(&op, "op", "", "accessor: addr, len or size")
	f.StringVar(&req.Elem, "elem", "", "element size for size: $imm, register or parameter (default from the slice type)")
	f.StringVar(&req.Reg, "reg", "", "destination register")
	f.StringVar(&req.Func, "func", "", "wrap in a TEXT block with this name that returns the register")
	f.BoolVar(&probe, "probe", false, "wrap in a TEXT block named after the op and parameter")
	for _, name := range []string{"sig", "param", "op", "reg"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(2)
	}
}
