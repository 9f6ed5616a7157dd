package keymap

// Binding contexts. Global and playback bindings are always active; queue
// and dances follow the focused panel.
const (
	ContextGlobal   = "global"
	ContextPlayback = "playback"
	ContextQueue    = "queue"
	ContextDances   = "dances"
)

// Binding describes a key binding for an action.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// Bindings lists every key binding. The help box shows them in this order.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit application", ContextGlobal},
	{ActionSwitchFocus, []string{"tab"}, "Switch focus", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},
	{ActionToggleAutoQueue, []string{"A"}, "Toggle auto-queue", ContextGlobal},
	{ActionToggleDuplicates, []string{"D"}, "Toggle duplicate tracks", ContextGlobal},
	{ActionRescan, []string{"R"}, "Rescan music directory", ContextGlobal},
	{ActionDismissNotification, []string{"ctrl+x"}, "Dismiss notification", ContextGlobal},

	// Playback
	{ActionAdvance, []string{"n"}, "Play next / skip", ContextPlayback},
	{ActionPlayPause, []string{" "}, "Pause/resume", ContextPlayback},
	{ActionStop, []string{"s"}, "Stop", ContextPlayback},
	{ActionCancelCountdown, []string{"esc"}, "Cancel countdown", ContextPlayback},
	{ActionRefreshSuggestion, []string{"f"}, "New suggestion", ContextPlayback},
	{ActionPinSuggestion, []string{"p"}, "Keep suggestion", ContextPlayback},

	// Queue panel
	{ActionDelete, []string{"d", "delete"}, "Remove item", ContextQueue},
	{ActionClear, []string{"C"}, "Clear queue", ContextQueue},
	{ActionMoveItemDown, []string{"shift+down", "J"}, "Move item down", ContextQueue},
	{ActionMoveItemUp, []string{"shift+up", "K"}, "Move item up", ContextQueue},
	{ActionAddStop, []string{"S"}, "Add stop marker", ContextQueue},
	{ActionAddDelay, []string{"w"}, "Add pause", ContextQueue},
	{ActionAddMessage, []string{"m"}, "Add message", ContextQueue},

	// Dance tree
	{ActionAddRandom, []string{"a", "enter"}, "Queue a random track", ContextDances},
	{ActionWeightUp, []string{"+", "="}, "Increase weight", ContextDances},
	{ActionWeightDown, []string{"-"}, "Decrease weight", ContextDances},
	{ActionMute, []string{"0"}, "Set weight to zero", ContextDances},
	{ActionUndo, []string{"u"}, "Undo tree edit", ContextDances},
	{ActionRedo, []string{"ctrl+r"}, "Redo tree edit", ContextDances},
	{ActionAddDance, []string{"i"}, "Add dance", ContextDances},
	{ActionAddCategory, []string{"c"}, "Add subcategory", ContextDances},
	{ActionAddTopCategory, []string{"C"}, "Add top-level category", ContextDances},
	{ActionRename, []string{"r"}, "Rename", ContextDances},
	{ActionRemoveNode, []string{"d", "delete"}, "Delete dance or category", ContextDances},
}

// ByContext returns the bindings of one context in declaration order.
func ByContext(context string) []Binding {
	var result []Binding
	for _, b := range Bindings {
		if b.Context == context {
			result = append(result, b)
		}
	}
	return result
}
