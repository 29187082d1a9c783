package components

import (
	"image/color"

	"github.com/yohamta/donburi"
)

type VitalsData struct {
	Health    int
	MaxHealth int
	Score     int
	Radius    float64
	Color     color.RGBA
}

// SetHealth writes health clamped to [0, MaxHealth].
func (v *VitalsData) SetHealth(hp int) {
	if hp < 0 {
		hp = 0
	}
	if v.MaxHealth > 0 && hp > v.MaxHealth {
		hp = v.MaxHealth
	}
	v.Health = hp
}

// Damage subtracts amount and reports whether this hit took health from
// above zero to zero.
func (v *VitalsData) Damage(amount int) bool {
	if v.Health <= 0 {
		return false
	}
	v.SetHealth(v.Health - amount)
	return v.Health == 0
}

var Vitals = donburi.NewComponentType[VitalsData]()
