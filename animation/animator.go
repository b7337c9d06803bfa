// Package animation is a small parameterised animator: named clips, timed
// crossfades between them, and trigger/float/bool parameters that gameplay
// code writes and renderers read.
package animation

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

var (
	ErrDuplicateClip = errors.New("animation: duplicate clip")
	ErrInvalidClip   = errors.New("animation: invalid clip")
)

// Clip is a frame sequence played at a fixed rate.
type Clip struct {
	Name   string
	Frames int
	FPS    float64
	Loop   bool
}

func (c Clip) validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidClip)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("%w: %s: frames must be positive", ErrInvalidClip, c.Name)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: %s: fps must be positive", ErrInvalidClip, c.Name)
	}
	return nil
}

// Playback is one clip's position.
type Playback struct {
	Clip  string
	Frame int
}

type layer struct {
	current  Playback
	previous Playback
	timer    float64
	prevTime float64

	blend  *gween.Tween
	weight float32
}

// Animator plays clips on numbered layers. The zero value is not usable;
// call New.
type Animator struct {
	clips  map[string]Clip
	layers map[int]*layer

	triggers map[string]bool
	floats   map[string]float64
	bools    map[string]bool
}

// New builds an animator that starts every layer on the first clip.
func New(clips ...Clip) (*Animator, error) {
	a := &Animator{
		clips:    make(map[string]Clip, len(clips)),
		layers:   make(map[int]*layer),
		triggers: make(map[string]bool),
		floats:   make(map[string]float64),
		bools:    make(map[string]bool),
	}
	var errs []error
	for _, c := range clips {
		if err := c.validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, ok := a.clips[c.Name]; ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateClip, c.Name))
			continue
		}
		a.clips[c.Name] = c
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if len(clips) > 0 {
		a.layer(0).current = Playback{Clip: clips[0].Name}
	}
	return a, nil
}

// CrossFade starts blending layer from its current clip into clip over d.
// Crossfading to the clip already playing with no blend in progress keeps
// its frame.
func (a *Animator) CrossFade(clip string, d time.Duration, layerIndex int) {
	l := a.layer(layerIndex)
	if l.current.Clip == clip && l.blend == nil {
		return
	}
	if d <= 0 {
		l.previous = Playback{}
		l.current = Playback{Clip: clip}
		l.timer = 0
		l.blend = nil
		l.weight = 1
		return
	}
	l.previous = l.current
	l.prevTime = l.timer
	l.current = Playback{Clip: clip}
	l.timer = 0
	l.blend = gween.New(0, 1, float32(d.Seconds()), ease.Linear)
	l.weight = 0
}

func (a *Animator) SetTrigger(name string) {
	a.triggers[name] = true
}

// ConsumeTrigger reports whether name was set and clears it.
func (a *Animator) ConsumeTrigger(name string) bool {
	set := a.triggers[name]
	delete(a.triggers, name)
	return set
}

func (a *Animator) SetFloat(name string, value float64) {
	a.floats[name] = value
}

func (a *Animator) Float(name string) float64 {
	return a.floats[name]
}

func (a *Animator) SetBool(name string, value bool) {
	a.bools[name] = value
}

func (a *Animator) Bool(name string) bool {
	return a.bools[name]
}

// Current returns the clip layer is playing or blending into.
func (a *Animator) Current(layerIndex int) Playback {
	return a.layer(layerIndex).current
}

// Blend returns the clip being faded out and the weight of the current clip
// in [0, 1]. ok is false when no blend is in progress.
func (a *Animator) Blend(layerIndex int) (from Playback, weight float32, ok bool) {
	l := a.layer(layerIndex)
	if l.blend == nil {
		return Playback{}, 1, false
	}
	return l.previous, l.weight, true
}

// Layers returns the indexes of every layer touched so far, ascending.
func (a *Animator) Layers() []int {
	out := make([]int, 0, len(a.layers))
	for i := range a.layers {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Update advances frames and blends by dt.
func (a *Animator) Update(dt time.Duration) {
	if dt <= 0 {
		return
	}
	sec := dt.Seconds()
	for _, l := range a.layers {
		l.timer = a.advance(&l.current, l.timer, sec)
		if l.blend == nil {
			continue
		}
		l.prevTime = a.advance(&l.previous, l.prevTime, sec)
		w, done := l.blend.Update(float32(sec))
		l.weight = w
		if done {
			l.blend = nil
			l.previous = Playback{}
			l.weight = 1
		}
	}
}

func (a *Animator) advance(p *Playback, timer, sec float64) float64 {
	c, ok := a.clips[p.Clip]
	if !ok {
		return 0
	}
	timer += sec
	frame := int(timer * c.FPS)
	if frame >= c.Frames {
		if c.Loop {
			frame %= c.Frames
		} else {
			frame = c.Frames - 1
		}
	}
	p.Frame = frame
	return timer
}

func (a *Animator) layer(i int) *layer {
	l, ok := a.layers[i]
	if !ok {
		l = &layer{weight: 1}
		a.layers[i] = l
	}
	return l
}
