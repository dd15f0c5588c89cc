// Package platform resolves host-specific UI wording and commands.
package platform

import "runtime"

// isDarwin is fixed at init; the reveal entry never changes at runtime.
var isDarwin = runtime.GOOS == "darwin"

// RevealLabel returns the label for the file-manager reveal menu entry:
// "Reveal in Finder" on macOS, "Reveal in File Manager" elsewhere.
func RevealLabel() string {
	return revealLabel(isDarwin)
}

func revealLabel(darwin bool) string {
	if darwin {
		return "Reveal in Finder"
	}
	return "Reveal in File Manager"
}
