package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli"

	"github.com/baxromumarov/olist"
	"github.com/baxromumarov/olist/buffer"
	"github.com/baxromumarov/olist/order"
)

func runSort(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	values, err := readInts(c.Args(), m.in)
	if err != nil {
		return err
	}

	less := order.Less(order.Int64)
	if c.Bool("reverse") {
		less = order.Reverse(less)
	}

	mode := c.String("mode")
	var (
		fromList, fromArray []int64
		stats               order.Stats
	)
	opts := []order.Option{order.WithLogger(m.logger), order.WithStats(&stats)}

	switch mode {
	case "list", "array", "both":
	default:
		return errors.Newf("unknown mode %q", mode)
	}

	if mode != "array" {
		fromList, err = sortAsList(values, less, m, opts)
		if err != nil {
			return err
		}
		report(c, m, "list", stats)
		stats = order.Stats{}
	}
	if mode != "list" {
		fromArray, err = sortAsArray(values, less, m, opts)
		if err != nil {
			return err
		}
		report(c, m, "array", stats)
	}

	out := fromList
	if out == nil {
		out = fromArray
	}
	if mode == "both" {
		for i := range fromList {
			if fromList[i] != fromArray[i] {
				return errors.Newf("modes disagree at %d: list %d, array %d", i, fromList[i], fromArray[i])
			}
		}
	}
	return printInts(m.w, out)
}

func sortAsList(values []int64, less order.Less, m *metadata, opts []order.Option) ([]int64, error) {
	l, err := olist.New(8, olist.WithLogger(m.logger))
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if _, err := l.PushBack(encode(v)); err != nil {
			return nil, err
		}
	}
	if err := order.SortList(l, less, opts...); err != nil {
		return nil, errors.Wrap(err, "sort list")
	}
	return decodeList(l), nil
}

func sortAsArray(values []int64, less order.Less, m *metadata, opts []order.Option) ([]int64, error) {
	a, err := buffer.NewArray(8, buffer.WithLogger(m.logger))
	if err != nil {
		return nil, err
	}
	if err := a.Reserve(len(values)); err != nil {
		return nil, err
	}
	for _, v := range values {
		if _, err := a.Append(encode(v)); err != nil {
			return nil, err
		}
	}
	if err := order.SortArray(a, less, opts...); err != nil {
		return nil, errors.Wrap(err, "sort array")
	}

	out := make([]int64, 0, a.Len())
	data := a.Bytes()
	for i := 0; i < len(data); i += 8 {
		out = append(out, int64(binary.LittleEndian.Uint64(data[i:])))
	}
	return out, nil
}

func report(c *cli.Context, m *metadata, mode string, stats order.Stats) {
	if !c.Bool("stats") {
		return
	}
	fmt.Fprintf(m.e, "%s: comparisons=%d swaps=%d partitions=%d insertion-runs=%d\n",
		mode, stats.Comparisons, stats.Swaps, stats.Partitions, stats.InsertionRuns)
}

// readInts parses args, or whitespace separated integers from in when there
// are no args.
func readInts(args []string, in io.Reader) ([]int64, error) {
	if len(args) == 0 {
		scanner := bufio.NewScanner(in)
		scanner.Split(bufio.ScanWords)
		for scanner.Scan() {
			args = append(args, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrap(err, "read input")
		}
	}
	values := make([]int64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %q", arg)
		}
		values = append(values, v)
	}
	return values, nil
}

func printInts(w io.Writer, values []int64) error {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, " "))
	return err
}

func encode(v int64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(v))
	return b
}

func decodeList(l *olist.List) []int64 {
	out := make([]int64, 0, l.Len())
	for _, item := range l.All() {
		out = append(out, int64(binary.LittleEndian.Uint64(item)))
	}
	return out
}
