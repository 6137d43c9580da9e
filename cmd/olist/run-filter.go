package main

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli"

	"github.com/baxromumarov/olist"
)

func runFilter(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	divisor := int64(c.Int("divisor"))
	if divisor == 0 {
		return errors.New("divisor must not be zero")
	}
	values, err := readInts(c.Args(), m.in)
	if err != nil {
		return err
	}

	l, err := olist.New(8, olist.WithLogger(m.logger))
	if err != nil {
		return err
	}
	for _, v := range values {
		if _, err := l.PushBack(encode(v)); err != nil {
			return err
		}
	}

	for h := l.Head(); h != olist.Nil; {
		item, err := l.ItemAt(h)
		if err != nil {
			return err
		}
		if int64(binary.LittleEndian.Uint64(item))%divisor == 0 {
			h, err = l.Remove(h)
		} else {
			h, err = l.Next(h)
		}
		if err != nil {
			return err
		}
	}
	if err := l.Validate(); err != nil {
		return err
	}
	return printInts(m.w, decodeList(l))
}
