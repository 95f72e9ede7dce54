package core

// RobotID is a unique robot identifier.
type RobotID int

// Robot is a single agent: a species membership, an initial configuration,
// and the robot-specific trait row used by the allocation-to-traits
// reduction (internal/tetaq). Bounding radius and speed are looked up from
// the robot's species (Species) rather than duplicated here.
type Robot struct {
	ID          RobotID
	SpeciesName string
	Initial     Configuration
	Traits      []float64 // this robot's row of the robot-traits matrix T
}

// BoundingRadius returns the robot's species bounding radius, or 0 if the
// species is unknown.
func (r *Robot) BoundingRadius(species map[string]*Species) float64 {
	if s, ok := species[r.SpeciesName]; ok {
		return s.BoundingRadius
	}
	return 0
}

// Speed returns the robot's species speed in meters/second, or 0 if the
// species is unknown.
func (r *Robot) Speed(species map[string]*Species) float64 {
	if s, ok := species[r.SpeciesName]; ok {
		return s.SpeedMPS
	}
	return 0
}
