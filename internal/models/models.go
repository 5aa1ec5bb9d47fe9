package model

// All lists every model the schema migration creates.
func All() []any {
	return []any{&User{}, &Task{}, &TaskActivity{}, &SavedPrompt{}}
}
