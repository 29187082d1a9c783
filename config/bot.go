package config

import "fmt"

// BotDifficulty affects reaction time and decision quality
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

// BotDifficultyConfig holds tuning values for bot behavior at a specific difficulty
type BotDifficultyConfig struct {
	ReactionDelay    int     // Ticks between decisions
	AttackRange      float64 // Centre distance to start attacking
	ChaseRange       float64 // Beyond this the bot wanders instead of chasing
	RetreatThreshold float64 // Health fraction to start retreating
	AttackCooldown   int     // Ticks between attack presses
}

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Difficulties map[BotDifficulty]BotDifficultyConfig
}

// Bot holds bot AI configuration
var Bot BotConfigData

func init() {
	Bot = BotConfigData{
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				ReactionDelay:    30, // 0.5 second reaction time
				AttackRange:      50.0,
				ChaseRange:       250.0,
				RetreatThreshold: 0.2, // Retreat at 20% health
				AttackCooldown:   45,
			},
			BotDifficultyNormal: {
				ReactionDelay:    15, // 0.25 second reaction time
				AttackRange:      60.0,
				ChaseRange:       400.0,
				RetreatThreshold: 0.3, // Retreat at 30% health
				AttackCooldown:   25,
			},
			BotDifficultyHard: {
				ReactionDelay:    5, // Near-instant reaction
				AttackRange:      65.0,
				ChaseRange:       800.0,
				RetreatThreshold: 0.15, // Retreat at 15% health
				AttackCooldown:   15,
			},
		},
	}
}

// ParseBotDifficulty accepts "easy", "normal" and "hard".
func ParseBotDifficulty(s string) (BotDifficulty, error) {
	switch s {
	case "easy":
		return BotDifficultyEasy, nil
	case "normal", "":
		return BotDifficultyNormal, nil
	case "hard":
		return BotDifficultyHard, nil
	}
	return 0, fmt.Errorf("unknown bot difficulty %q", s)
}
