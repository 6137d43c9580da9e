package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli"

	"github.com/baxromumarov/olist/intmap"
)

func runMap(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	im := intmap.New(intmap.WithLogger(m.logger))
	for _, arg := range c.Args() {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return errors.Newf("expected KEY=VALUE, got %q", arg)
		}
		k, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "parse key %q", key)
		}
		if err := im.Put(k, []byte(value)); err != nil {
			return err
		}
	}

	for k, v := range im.All() {
		if _, err := fmt.Fprintf(m.w, "%d=%s\n", k, v); err != nil {
			return err
		}
	}
	return nil
}
