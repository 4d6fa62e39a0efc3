// Package ui provides semantic text formatting for ssh-keys output.
//
// Formatters render with color when the terminal supports it. When NO_COLOR
// is set or the output is not a color terminal, a few formatters fall back
// to text decorations instead:
//
//	ui.Code.Sprint("ssh-keys get ~/.ssh")  // `ssh-keys get ~/.ssh`
//	ui.Highlight.Sprint("ssh-keys")        // 'ssh-keys'
//	ui.Muted.Sprint("no files")            // (no files)
//
// Path, Flag, Success, Error, Warning and Info are left undecorated.
package ui
