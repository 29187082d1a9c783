package archetypes

import (
	"github.com/automoto/duelsync/components"
	cfg "github.com/automoto/duelsync/config"
	"github.com/automoto/duelsync/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Motion,
		components.Flags,
		components.Vitals,
		components.NetTrack,
		components.AttackWindow,
	)
	Session = newArchetype(
		tags.Session,
		components.Session,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
