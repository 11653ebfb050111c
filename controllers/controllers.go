package controllers

import (
	"github.com/naturalcap/geoviewer/config"
	"github.com/naturalcap/geoviewer/inspector"
	"github.com/naturalcap/geoviewer/metrics"
)

var (
	mx  *metrics.Metrics
	ins *inspector.Inspector
)

// Setup wires the shared collaborators. Called once from Set before any
// route is served.
func Setup(m *metrics.Metrics) {
	mx = m
	ins = inspector.New(config.Config.TitilerURL, nil, inspector.Options{AllMatches: true})
	ins.OnPointError = m.PointQueryErrorsTotal.Inc
}
