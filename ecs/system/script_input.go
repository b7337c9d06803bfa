package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
)

// Script globals. Scripts assign them with `=`; tick is read-only input.
const (
	scriptVarTick = "tick"
	scriptVarAxis = "axis"
	scriptVarJump = "jump"
)

type inputScript struct {
	name     string
	revision int
	compiled *tengo.Compiled
}

// ScriptInputSystem drives Input from per-entity tengo scripts, one run per
// frame. A script that fails to compile or run is logged and disabled until
// its source is replaced.
type ScriptInputSystem struct {
	scripts map[ecs.Entity]*inputScript
	failed  map[ecs.Entity]int
}

func NewScriptInputSystem() *ScriptInputSystem {
	return &ScriptInputSystem{
		scripts: make(map[ecs.Entity]*inputScript),
		failed:  make(map[ecs.Entity]int),
	}
}

func (s *ScriptInputSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for e := range s.scripts {
		if !ecs.Has(w, e, component.ScriptInputComponent.Kind()) {
			delete(s.scripts, e)
		}
	}
	for e := range s.failed {
		if !ecs.Has(w, e, component.ScriptInputComponent.Kind()) {
			delete(s.failed, e)
		}
	}

	ecs.ForEach2(w, component.ScriptInputComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, si *component.ScriptInput, input *component.Input) {
		if rev, ok := s.failed[e]; ok && rev == si.Revision {
			return
		}
		delete(s.failed, e)
		rt, err := s.runtime(e, si)
		if err != nil {
			log.Printf("script input: entity=%s: %v", e, err)
			s.failed[e] = si.Revision
			return
		}

		axis, jump, err := rt.run(si.Tick)
		si.Tick++
		if err != nil {
			log.Printf("script input: entity=%s: %v", e, err)
			s.failed[e] = si.Revision
			return
		}
		input.Sample(axis, jump, jump)
	})
}

func (s *ScriptInputSystem) runtime(e ecs.Entity, si *component.ScriptInput) (*inputScript, error) {
	if rt, ok := s.scripts[e]; ok && rt.name == si.Name && rt.revision == si.Revision {
		return rt, nil
	}
	rt, err := compileInputScript(si.Name, si.Source)
	if err != nil {
		return nil, err
	}
	rt.revision = si.Revision
	s.scripts[e] = rt
	return rt, nil
}

func compileInputScript(name string, src []byte) (*inputScript, error) {
	script := tengo.NewScript(src)
	_ = script.Add(scriptVarTick, 0)
	_ = script.Add(scriptVarAxis, 0.0)
	_ = script.Add(scriptVarJump, false)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return &inputScript{name: name, compiled: compiled}, nil
}

func (rt *inputScript) run(tick int) (axis float64, jump bool, err error) {
	if err := rt.compiled.Set(scriptVarTick, tick); err != nil {
		return 0, false, err
	}
	if err := rt.compiled.Set(scriptVarAxis, 0.0); err != nil {
		return 0, false, err
	}
	if err := rt.compiled.Set(scriptVarJump, false); err != nil {
		return 0, false, err
	}
	if err := rt.compiled.Run(); err != nil {
		return 0, false, fmt.Errorf("run %s: %w", rt.name, err)
	}
	return rt.compiled.Get(scriptVarAxis).Float(), rt.compiled.Get(scriptVarJump).Bool(), nil
}
