package editor

// Action names dispatched by the default context menu. They are opaque
// identifiers to this package; handler registration lives with the
// dispatcher.
const (
	ActionRenameSymbol        = "editor.renameSymbol"
	ActionGoToDefinition      = "editor.goToDefinition"
	ActionGoToTypeDefinition  = "editor.goToTypeDefinition"
	ActionGoToImplementation  = "editor.goToImplementation"
	ActionFindAllReferences   = "editor.findAllReferences"
	ActionCodeActions         = "editor.toggleCodeActions"
	ActionCut                 = "editor.cut"
	ActionCopy                = "editor.copy"
	ActionPaste               = "editor.paste"
	ActionRevealInFileManager = "file.revealInFileManager"
	ActionOpenInTerminal      = "workspace.openInTerminal"
	ActionCopyPermalink       = "git.copyPermalink"
	ActionCopyFileLine        = "editor.copyFileLine"
)
