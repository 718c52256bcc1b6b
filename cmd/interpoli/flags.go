package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

func bindFlag(f *pflag.Flag, key string) {
	if err := v.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", f.Name, err))
	}
}

// parseRegions reads "x0,y0,x1,y1;x0,y0,x1,y1;...".
func parseRegions(s string) ([]image.Rectangle, error) {
	var regions []image.Rectangle
	for i, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		fields := strings.Split(part, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("region %d: want x0,y0,x1,y1, got %q", i+1, part)
		}

		var c [4]int
		for j, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("region %d: %w", i+1, err)
			}
			c[j] = n
		}

		r := image.Rect(c[0], c[1], c[2], c[3])
		if r.Empty() {
			return nil, fmt.Errorf("region %d: %q is empty", i+1, part)
		}
		regions = append(regions, r)
	}

	if len(regions) == 0 {
		return nil, fmt.Errorf("no regions given")
	}
	return regions, nil
}
