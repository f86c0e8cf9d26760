package models

// AppState holds the top-level application state. Event handlers read and
// write this struct through the App model; there are no ambient globals.
type AppState struct {
	Width          int
	Height         int
	LeftPanelWidth int // percentage of the window given to the tree panel
	FocusedPanel   PanelType
	ViewMode       ViewMode
	ThemeName      string
	LastDir        string // directory of the most recently opened file
}

// PanelType identifies which panel is focused
type PanelType int

const (
	TreePanel PanelType = iota
	EditorPanel
)

// ViewMode identifies the current interaction mode
type ViewMode int

const (
	NormalMode ViewMode = iota
	HelpMode
	SearchMode
	PromptMode  // open/save-as path entry
	ConfirmMode // unsaved-changes gate
)

// NewAppState creates a new AppState with defaults
func NewAppState() AppState {
	return AppState{
		Width:          80,
		Height:         24,
		LeftPanelWidth: 35,
		FocusedPanel:   EditorPanel,
		ViewMode:       NormalMode,
		ThemeName:      "default",
	}
}
