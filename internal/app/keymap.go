package app

// Key binding constants used in handleKey and the dialog handlers.
const (
	KeyCtrlC       = "ctrl+c"
	KeyTab         = "tab"
	KeyShiftTab    = "shift+tab"
	KeyRecord      = "ctrl+r"
	KeySave        = "ctrl+s"
	KeyPrint       = "ctrl+p"
	KeyCopy        = "ctrl+y"
	KeyTemplates   = "ctrl+t"
	KeyNewTemplate = "ctrl+n"
	KeyApply       = "ctrl+a"
	KeyEsc         = "esc"
	KeyUp          = "up"
	KeyDown        = "down"
	KeyJ           = "j"
	KeyK           = "k"
	KeyEnter       = "enter"
)
