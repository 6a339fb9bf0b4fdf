package component

// Script attaches a tengo script to an entity. Params are exposed to the
// script through engine.param(name).
type Script struct {
	Path   string
	Params map[string]any
}

var ScriptComponent = NewComponent[Script]()
