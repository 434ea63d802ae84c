// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"ctrvis/bsp"
	"ctrvis/vis"
)

func newTable(buf *bytes.Buffer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	return table
}

// treeTable renders tree statistics.
func treeTable(name string, st bsp.Stats, bs bsp.Settings) string {
	var buf bytes.Buffer
	table := newTable(&buf, "Tree", name)
	table.Append([]string{"Quadblocks", fmt.Sprint(st.Quadblocks)})
	table.Append([]string{"Nodes", fmt.Sprint(st.Nodes)})
	table.Append([]string{"Leafs", fmt.Sprint(st.Leaves)})
	table.Append([]string{"Max depth", fmt.Sprint(st.MaxDepth)})
	table.Append([]string{"Largest leaf", fmt.Sprint(st.MaxLeafQuads)})
	table.Append([]string{" ", " "})
	table.Append([]string{"Max quadblocks per leaf", fmt.Sprint(bs.MaxQuadsPerLeaf)})
	table.Append([]string{"Max leaf axis length", fmt.Sprint(bs.MaxLeafAxisLength)})
	table.Render()
	return buf.String()
}

type visSummary struct {
	leaves  int
	visible int
	min     int
	max     int
}

func summarize(m *vis.BitMatrix) visSummary {
	s := visSummary{leaves: m.Height(), min: m.Width()}
	for y := 0; y < m.Height(); y++ {
		c := 0
		for _, v := range m.Row(y) {
			if v {
				c++
			}
		}
		s.visible += c
		if c < s.min {
			s.min = c
		}
		if c > s.max {
			s.max = c
		}
	}
	if s.leaves == 0 {
		s.min = 0
	}
	return s
}

// visTable renders the visibility settings and what the matrix holds.
func visTable(m *vis.BitMatrix, vs vis.Settings, extra [][]string) string {
	var buf bytes.Buffer
	table := newTable(&buf, "Visibility", "")
	table.Append([]string{"Far clip", fmt.Sprint(vs.FarClip)})
	table.Append([]string{"Near clip", fmt.Sprint(vs.NearClip)})
	table.Append([]string{"Commutative rays", fmt.Sprint(vs.CommutativeRays)})
	table.Append([]string{"Center only samples", fmt.Sprint(vs.CenterOnlySamples)})
	table.Append([]string{" ", " "})
	for _, row := range extra {
		table.Append(row)
	}
	s := summarize(m)
	table.Append([]string{"Visible cells", fmt.Sprintf("%d of %d", s.visible, s.leaves*s.leaves)})
	if s.leaves > 0 {
		table.Append([]string{"Visible per leaf", fmt.Sprintf("min %d, avg %.1f, max %d",
			s.min, float64(s.visible)/float64(s.leaves), s.max)})
	}
	table.Render()
	return buf.String()
}

func resultRows(res *vis.Result) [][]string {
	return [][]string{
		{"Run", res.RunID.String()},
		{"Sample pairs", fmt.Sprint(res.SamplePairs)},
		{"Rays", fmt.Sprint(res.Rays)},
		{"Time", res.Duration.String()},
	}
}
