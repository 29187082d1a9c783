package components

import (
	"github.com/automoto/duelsync/shared/netconfig"
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Role netconfig.Role
}

var Player = donburi.NewComponentType[PlayerData]()
