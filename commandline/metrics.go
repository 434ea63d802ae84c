// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"ctrvis/conlog"
)

// dumpMetrics prints the bsp and vis metrics in the prometheus text format.
func dumpMetrics() error {
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	var buf bytes.Buffer
	for _, mf := range mfs {
		if !strings.HasPrefix(mf.GetName(), "bsp_") && !strings.HasPrefix(mf.GetName(), "vis_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return errors.Wrap(err, "format metrics")
		}
	}
	conlog.Printf("%s", buf.String())
	return nil
}
