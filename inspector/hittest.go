package inspector

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// clickTolerancePx is the hit radius in screen pixels for point and line
// geometries; polygons use true containment.
const clickTolerancePx = 6.0

// clickTolerance converts the pixel radius into degrees at the given zoom
// level (256px tiles spanning 360 degrees at zoom 0).
func clickTolerance(zoom float64) float64 {
	if zoom < 0 {
		zoom = 0
	}
	return clickTolerancePx * 360.0 / (256.0 * math.Exp2(zoom))
}

// featureHit reports whether the clicked point hits the geometry.
func featureHit(g orb.Geometry, pt orb.Point, tolerance float64) bool {
	switch geom := g.(type) {
	case orb.Point:
		return planar.Distance(geom, pt) <= tolerance
	case orb.MultiPoint:
		for _, p := range geom {
			if planar.Distance(p, pt) <= tolerance {
				return true
			}
		}
	case orb.LineString:
		return planar.DistanceFrom(geom, pt) <= tolerance
	case orb.MultiLineString:
		return planar.DistanceFrom(geom, pt) <= tolerance
	case orb.Ring:
		return planar.RingContains(geom, pt)
	case orb.Polygon:
		return planar.PolygonContains(geom, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, pt)
	case orb.Collection:
		for _, sub := range geom {
			if featureHit(sub, pt, tolerance) {
				return true
			}
		}
	}
	return false
}
