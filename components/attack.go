package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// AttackWindowData tracks the short window during which an entity shows as
// attacking. Remaining runs from 1 down to 0.
type AttackWindowData struct {
	Tween     *gween.Tween
	Remaining float32
}

// Active reports whether a window is running.
func (a *AttackWindowData) Active() bool {
	return a.Tween != nil
}

var AttackWindow = donburi.NewComponentType[AttackWindowData]()
