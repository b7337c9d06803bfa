package component

import (
	"time"

	"github.com/milk9111/locomotion/animation"
)

type Animation struct {
	Animator *animation.Animator
	// Flash counts down after the animator's jump trigger fires.
	Flash time.Duration
}

var AnimationComponent = NewComponent[Animation]()
