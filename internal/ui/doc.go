// package ui styles terminal output of the spx commands with [lipgloss]
package ui
