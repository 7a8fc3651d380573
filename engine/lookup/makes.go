package lookup

import "github.com/WessleyAI/wessley-vin/engine/vin"

// MakeInfo describes one registered manufacturer.
type MakeInfo struct {
	Name   string   `json:"name"`
	WMIs   []string `json:"wmis"`
	Models []string `json:"models"`
}

// ListMakes lists every registry manufacturer in name order. Manufacturers
// without a model catalog report an empty, non-nil model list.
func ListMakes(c *vin.Catalog) []MakeInfo {
	names := c.Manufacturers()
	out := make([]MakeInfo, 0, len(names))
	for _, n := range names {
		models := c.Models(n)
		if models == nil {
			models = []string{}
		}
		out = append(out, MakeInfo{Name: n, WMIs: c.WMIs(n), Models: models})
	}
	return out
}
