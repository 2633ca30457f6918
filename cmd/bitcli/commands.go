package bitcli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"github.com/spacemeshos/sha256-simd"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/psygate/bitvectors/bitstream"
	"github.com/psygate/bitvectors/bitvector"
	"github.com/psygate/bitvectors/config"
	"github.com/psygate/bitvectors/persistence"
)

// Header written in front of the bits of a vector file.
const vectorHeaderBytes = 8

func newPackCmd() *cobra.Command {
	var in, out string
	var raw bool

	cmd := &cobra.Command{
		Use:   "pack [bits]",
		Short: "pack a string of 0 and 1 characters into a file",
		Long: "Character i of the string becomes bit i of the file. Bits are packed " +
			"LSB first and the last byte is zero-padded.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			text, err := packInput(e, in, args)
			if err != nil {
				return err
			}
			v, err := bitvector.OfBinaryString(text)
			if err != nil {
				return err
			}

			name := e.path(out)
			if err := e.prepareWrite(name, uint64(len(v.ToBytes()))+vectorHeaderBytes); err != nil {
				return err
			}

			if raw {
				err = persistence.WithWriter(name, func(w *persistence.FileWriter) error {
					return w.WriteBytes(v.ToBytes(), v.Len())
				}, e.persistenceOpts()...)
			} else {
				err = persistence.WriteVector(name, v, e.persistenceOpts()...)
			}
			if err != nil {
				return err
			}

			e.logger.Info("packed", zap.String("file", name), zap.Int("bits", v.Len()), zap.Bool("raw", raw))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d bits written to %v\n", v.Len(), name)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "read the bits from this file instead of the argument")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	cmd.Flags().BoolVar(&raw, "raw", false, "write the bare bits without a length header")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func packInput(e *env, in string, args []string) (string, error) {
	var text string
	switch {
	case in != "":
		data, err := os.ReadFile(e.path(in))
		if err != nil {
			return "", err
		}
		text = string(data)
	case len(args) == 1:
		text = args[0]
	default:
		return "", errors.New("no bits given; pass them as an argument or with --in")
	}

	// Whitespace may group the digits.
	return strings.Join(strings.Fields(text), ""), nil
}

func newUnpackCmd() *cobra.Command {
	var raw bool
	var limit int

	cmd := &cobra.Command{
		Use:   "unpack <file>",
		Short: "print the bits of a file as 0 and 1 characters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			v, err := e.loadVector(e.path(args[0]), raw)
			if err != nil {
				return err
			}
			if limit >= 0 && limit < v.Len() {
				if v, err = v.SubVector(0, limit); err != nil {
					return err
				}
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), v.ToBinaryString())
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "the file holds bare bits without a length header")
	cmd.Flags().IntVar(&limit, "bits", -1, "print at most this many bits")
	return cmd
}

func newFieldsCmd() *cobra.Command {
	var raw bool
	var limit uint64

	cmd := &cobra.Command{
		Use:   "fields <file>",
		Short: "print consecutive LSB-first fields of --field-width bits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			name := e.path(args[0])

			var rows [][]string
			if raw {
				err = persistence.WithReader(name, func(r *persistence.FileReader) error {
					width, err := r.Width()
					if err != nil {
						return err
					}
					rows, err = readFields(r, config.DeriveFieldsLayout(*e.cfg.BitsCfg, width), limit)
					return err
				}, e.persistenceOpts()...)
			} else {
				var v *bitvector.BitVector
				if v, err = persistence.ReadVector(name, e.persistenceOpts()...); err == nil {
					layout := config.DeriveFieldsLayout(*e.cfg.BitsCfg, uint64(v.Len()))
					rows, err = readFields(bitstream.NewSliceReader(v.ToBytes()), layout, limit)
				}
			}
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"#", "position", "bits", "hex", "value"})
			table.SetBorder(true)
			table.AppendBulk(rows)
			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "the file holds bare bits without a length header")
	cmd.Flags().Uint64Var(&limit, "limit", 0, "print at most this many fields (0 for all)")
	return cmd
}

// readFields reads the fields described by layout from r. A trailing short
// field is read with its own width.
func readFields(r bitstream.Reader, layout config.FieldsLayout, limit uint64) ([][]string, error) {
	var rows [][]string
	for i := uint64(0); i < layout.NumFields; i++ {
		if limit > 0 && i >= limit {
			break
		}

		width := layout.FieldWidth
		if i >= layout.WholeFields() {
			width = layout.LastFieldBits
		}

		pos := r.Position()
		val, err := r.ReadBitsLong(width)
		if err != nil {
			return nil, fmt.Errorf("failed to read field %d at bit %d: %w", i, pos, err)
		}
		bits, err := bitvector.OfBits(val, width)
		if err != nil {
			return nil, err
		}

		rows = append(rows, []string{
			strconv.FormatUint(i, 10),
			strconv.FormatUint(pos, 10),
			bits.ToBinaryString(),
			fmt.Sprintf("%#x", val),
			strconv.FormatUint(val, 10),
		})
	}
	return rows, nil
}

func newReplaceCmd() *cobra.Command {
	var from int
	var out string

	cmd := &cobra.Command{
		Use:   "replace <file> <find> <replace>",
		Short: "replace the first occurrence of a bit pattern in a vector file",
		Long: "Patterns are strings of 0 and 1 characters. An empty find pattern " +
			"inserts the replacement at the front.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			name := e.path(args[0])
			v, err := persistence.ReadVector(name, e.persistenceOpts()...)
			if err != nil {
				return err
			}
			find, err := bitvector.OfBinaryString(args[1])
			if err != nil {
				return err
			}
			replace, err := bitvector.OfBinaryString(args[2])
			if err != nil {
				return err
			}

			result := v.ReplaceFirst(from, find, replace)

			target := name
			if out != "" {
				target = e.path(out)
			}
			if err := e.prepareWrite(target, uint64(len(result.ToBytes()))+vectorHeaderBytes); err != nil {
				return err
			}
			if err := persistence.WriteVector(target, result, e.persistenceOpts()...); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if idx := v.IndexOf(from, find); idx == -1 || v.IsEmpty() {
				_, _ = fmt.Fprintln(w, "pattern not found")
			} else {
				_, _ = fmt.Fprintf(w, "replaced %d bits at %d\n", find.Len(), idx)
			}
			_, _ = fmt.Fprintf(w, "%d bits written to %v\n", result.Len(), target)
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "start searching at this bit")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the result here instead of replacing the file")
	return cmd
}

func newInfoCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "print statistics and the sha256 digest of a bit file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			name := e.path(args[0])
			stat, err := os.Stat(name)
			if err != nil {
				return err
			}
			v, err := e.loadVector(name, raw)
			if err != nil {
				return err
			}
			digest := sha256.Sum256(v.ToBytes())

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "file:        %v\n", name)
			_, _ = fmt.Fprintf(w, "size:        %v\n", bytefmt.ByteSize(uint64(stat.Size())))
			_, _ = fmt.Fprintf(w, "bits:        %d\n", v.Len())
			_, _ = fmt.Fprintf(w, "set bits:    %d\n", v.Count())
			_, _ = fmt.Fprintf(w, "first set:   %d\n", v.NextSetBit(0))
			_, _ = fmt.Fprintf(w, "first unset: %d\n", v.NextUnsetBit(0))
			_, _ = fmt.Fprintf(w, "sha256:      %x\n", digest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "the file holds bare bits without a length header")
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			spew.Fdump(cmd.OutOrStdout(), e.cfg)
			return nil
		},
	}
}

func (e *env) loadVector(name string, raw bool) (*bitvector.BitVector, error) {
	if !raw {
		return persistence.ReadVector(name, e.persistenceOpts()...)
	}

	var v *bitvector.BitVector
	err := persistence.WithReader(name, func(r *persistence.FileReader) error {
		width, err := r.Width()
		if err != nil {
			return err
		}
		data, err := r.ReadBytes(int(width))
		if err != nil {
			return err
		}
		v = bitvector.OfBytes(data)
		return nil
	}, e.persistenceOpts()...)
	return v, err
}

// prepareWrite creates the directory of name and checks that size bytes fit
// while keeping the configured free space.
func (e *env) prepareWrite(name string, size uint64) error {
	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, persistence.OwnerReadWriteExec); err != nil {
		return fmt.Errorf("dir creation failure: %w", err)
	}
	return persistence.CheckSpace(dir, size+e.cfg.BitsCfg.MinFreeSpace)
}
