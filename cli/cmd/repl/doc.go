// Package repl implements an interactive evaluator of ad-hoc expressions
// against the namespace of a model at a movable probe point.
//
// Input is evaluated in one of two modes, toggled with Esc. In eval mode a
// line is compiled as an expression over the coordinate axes and the model
// names and evaluated at the probe point. In command mode a line is one of
// the commands listed by help, such as "at 0.5,0.5" to move the probe or
// "set f x*y" to bind a new name.
//
// Names, builtins and commands complete with fuzzy matching as you type.
// History persists across sessions in the cache directory.
package repl
