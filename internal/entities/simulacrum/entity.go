package simulacrum

import "github.com/KirkDiggler/rpg-toolkit/core"

// Compile-time check that documents can travel as rpg-toolkit entities
var (
	_ core.Entity = (*Actor)(nil)
	_ core.Entity = (*Item)(nil)
)
