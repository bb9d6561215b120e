package main

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

type opKind int

const (
	opAlloc opKind = iota
	opFree
)

// op is one parsed command line operation: "alloc:<size>[:<align>]" or "free:#<n>"
type op struct {
	kind  opKind
	size  int
	align uint
	label int
}

const defaultAlign = 8

func parseOp(text string) (op, error) {
	parts := strings.Split(text, ":")

	switch parts[0] {
	case "alloc":
		if len(parts) < 2 || len(parts) > 3 {
			return op{}, errors.Newf("%q: expected alloc:<size>[:<align>]", text)
		}

		size, err := strconv.Atoi(parts[1])
		if err != nil {
			return op{}, errors.Wrapf(err, "%q: bad size", text)
		}

		align := uint64(defaultAlign)
		if len(parts) == 3 {
			align, err = strconv.ParseUint(parts[2], 10, 32)
			if err != nil {
				return op{}, errors.Wrapf(err, "%q: bad alignment", text)
			}
		}

		return op{kind: opAlloc, size: size, align: uint(align)}, nil
	case "free":
		if len(parts) != 2 || !strings.HasPrefix(parts[1], "#") {
			return op{}, errors.Newf("%q: expected free:#<n>", text)
		}

		label, err := strconv.Atoi(strings.TrimPrefix(parts[1], "#"))
		if err != nil || label < 1 {
			return op{}, errors.Newf("%q: bad allocation label", text)
		}

		return op{kind: opFree, label: label}, nil
	}

	return op{}, errors.Newf("%q: unknown operation %q", text, parts[0])
}
