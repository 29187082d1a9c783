package config

import "github.com/yohamta/donburi/ecs"

// Default is the only ECS layer; nothing in the sync core is drawn.
const Default ecs.LayerID = iota
