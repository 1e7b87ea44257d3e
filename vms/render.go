package vms

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

const hiddenMark = "?"

// Render writes the problem as a table of attributes. Hidden attributes are
// shown as "?" unless showSolution is set, in which case they are marked
// with "*".
func Render(target io.Writer, p Problem, showSolution bool) error {
	tw := tabwriter.NewWriter(target, 0, 4, 2, ' ', 0)

	for _, attr := range AllAttributes {
		value := formatValue(p.Value(attr), attr.isSize())

		if p.IsHidden(attr) {
			if showSolution {
				value += " *"
			} else {
				value = hiddenMark
			}
		}

		_, err := fmt.Fprintf(tw, "%s\t%s\n", attr.Label(), value)
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}

func formatValue(v any, isSize bool) string {
	switch v := v.(type) {
	case *big.Int:
		return formatNumber(v, isSize)
	case []*big.Int:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = formatNumber(n, isSize)
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case []int:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = fmt.Sprint(n)
		}

		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(v)
	}
}

// formatNumber writes large sizes in a readable binary unit next to the exact
// number.
func formatNumber(n *big.Int, isSize bool) string {
	if !isSize || n.Cmp(big.NewInt(1024)) < 0 {
		return n.String()
	}

	return fmt.Sprintf("%s (%s)", n.String(), humanize.BigIBytes(n))
}
