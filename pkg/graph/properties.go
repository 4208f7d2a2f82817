package graph

import "github.com/paulmach/osm"

// FootAccessibility describes whether pedestrians may use an edge.
type FootAccessibility int

const (
	FootUnknown FootAccessibility = iota
	FootForbidden
	FootAllowed
)

func (f FootAccessibility) String() string {
	return [...]string{"Unknown", "Forbidden", "Allowed"}[f]
}

// CarAccessibility describes car access and road capacity in one direction.
// Variants are ordered by increasing capacity; the ordering is meaningful and
// must be preserved.
type CarAccessibility int

const (
	CarUnknown CarAccessibility = iota
	CarForbidden
	CarResidential
	CarTertiary
	CarSecondary
	CarPrimary
	CarTrunk
	CarMotorway
)

func (c CarAccessibility) String() string {
	return [...]string{
		"Unknown", "Forbidden", "Residential", "Tertiary",
		"Secondary", "Primary", "Trunk", "Motorway",
	}[c]
}

// BikeAccessibility describes bicycle access in one direction.
type BikeAccessibility int

const (
	BikeUnknown BikeAccessibility = iota
	BikeForbidden
	BikeAllowed // permitted but unmarked, traffic may be shared with cars
	BikeLane    // painted lane, no physical separation
	BikeBusway  // shared with the bus lane
	BikeTrack   // physically separated from other traffic
)

func (b BikeAccessibility) String() string {
	return [...]string{"Unknown", "Forbidden", "Allowed", "Lane", "Busway", "Track"}[b]
}

// TrainAccessibility describes rail access.
type TrainAccessibility int

const (
	TrainUnknown TrainAccessibility = iota
	TrainForbidden
	TrainAllowed
)

func (t TrainAccessibility) String() string {
	return [...]string{"Unknown", "Forbidden", "Allowed"}[t]
}

// EdgeProperties is the flat, directional accessibility record derived from
// an OSM way's tags.
type EdgeProperties struct {
	Foot         FootAccessibility
	CarForward   CarAccessibility
	CarBackward  CarAccessibility
	BikeForward  BikeAccessibility
	BikeBackward BikeAccessibility
	Train        TrainAccessibility
}

// Update folds a single OSM tag into the properties, following the tag table
// in order: later calls for the same field override earlier ones, matching
// OSM's own last-write-wins semantics over a way's tag list.
func (p *EdgeProperties) Update(key, val string) {
	switch key {
	case "highway":
		switch val {
		case "cycleway":
			p.BikeForward = BikeTrack
			p.Foot = FootAllowed
		case "path", "footway", "steps", "pedestrian":
			p.BikeForward = BikeAllowed
			p.Foot = FootAllowed
		case "primary", "primary_link":
			p.CarForward = CarPrimary
			p.Foot = FootAllowed
			p.BikeForward = BikeAllowed
		case "secondary":
			p.CarForward = CarSecondary
			p.Foot = FootAllowed
			p.BikeForward = BikeAllowed
		case "tertiary":
			p.CarForward = CarTertiary
			p.Foot = FootAllowed
			p.BikeForward = BikeAllowed
		case "unclassified", "residential", "living_street", "road", "service", "track":
			p.CarForward = CarResidential
			p.Foot = FootAllowed
			p.BikeForward = BikeAllowed
		case "motorway", "motorway_link":
			p.CarForward = CarMotorway
			p.Foot = FootForbidden
			p.BikeForward = BikeForbidden
		case "trunk", "trunk_link":
			p.CarForward = CarTrunk
			p.Foot = FootForbidden
			p.BikeForward = BikeForbidden
		}

	case "foot", "pedestrian":
		if val == "no" {
			p.Foot = FootForbidden
		} else {
			p.Foot = FootAllowed
		}

	case "cycleway":
		switch val {
		case "track":
			p.BikeForward = BikeTrack
		case "opposite_track":
			p.BikeBackward = BikeTrack
		case "opposite":
			p.BikeBackward = BikeAllowed
		case "share_busway":
			p.BikeForward = BikeBusway
		case "lane_left", "opposite_lane":
			p.BikeBackward = BikeLane
		default:
			p.BikeForward = BikeLane
		}

	case "bicycle":
		switch val {
		case "no", "false":
			p.BikeForward = BikeForbidden
		default:
			p.BikeForward = BikeAllowed
		}

	case "busway":
		switch val {
		case "opposite_lane", "opposite_track":
			p.BikeBackward = BikeBusway
		default:
			p.BikeForward = BikeBusway
		}

	case "oneway":
		switch val {
		case "yes", "true", "1":
			p.CarBackward = CarForbidden
			if p.BikeBackward == BikeUnknown {
				p.BikeBackward = BikeForbidden
			}
		}

	case "junction":
		if val == "roundabout" {
			p.CarBackward = CarForbidden
			if p.BikeBackward == BikeUnknown {
				p.BikeBackward = BikeForbidden
			}
		}

	case "railway":
		p.Train = TrainAllowed
	}
}

// UpdateTags feeds every tag of an OSM way's tag list through Update, in the
// order the PBF stream presents them. osm.Tags is a slice, not a map, so this
// order is already deterministic across runs.
func (p *EdgeProperties) UpdateTags(tags osm.Tags) {
	for _, tag := range tags {
		p.Update(tag.Key, tag.Value)
	}
}

// Normalize fills Unknown fields: backward direction defaults to the forward
// value first, then any field still Unknown becomes Forbidden.
func (p *EdgeProperties) Normalize() {
	if p.CarBackward == CarUnknown {
		p.CarBackward = p.CarForward
	}
	if p.BikeBackward == BikeUnknown {
		p.BikeBackward = p.BikeForward
	}
	if p.CarForward == CarUnknown {
		p.CarForward = CarForbidden
	}
	if p.BikeForward == BikeUnknown {
		p.BikeForward = BikeForbidden
	}
	if p.CarBackward == CarUnknown {
		p.CarBackward = CarForbidden
	}
	if p.BikeBackward == BikeUnknown {
		p.BikeBackward = BikeForbidden
	}
	if p.Foot == FootUnknown {
		p.Foot = FootForbidden
	}
	if p.Train == TrainUnknown {
		p.Train = TrainForbidden
	}
}

// Accessible reports whether at least one mode can use the edge in at least
// one direction.
func (p EdgeProperties) Accessible() bool {
	return p.BikeForward != BikeForbidden ||
		p.BikeBackward != BikeForbidden ||
		p.CarForward != CarForbidden ||
		p.CarBackward != CarForbidden ||
		p.Foot != FootForbidden ||
		p.Train != TrainForbidden
}
