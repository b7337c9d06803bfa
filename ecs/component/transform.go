package component

// Transform is the world position of an entity's center, in Y-up units.
// ScaleX carries facing: 1 faces right, -1 faces left.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

// SetFacing flips ScaleX to the sign of scaleX, keeping its magnitude.
func (t *Transform) SetFacing(scaleX float64) {
	mag := t.ScaleX
	if mag < 0 {
		mag = -mag
	}
	if mag == 0 {
		mag = 1
	}
	switch {
	case scaleX > 0:
		t.ScaleX = mag
	case scaleX < 0:
		t.ScaleX = -mag
	}
}

var TransformComponent = NewComponent[Transform]()
