// Package host provides implementations of the widget's host capability:
// the receiver of value and frame-height reports.
//
// Recorder keeps every report in memory and is what tests and the terminal
// binding use. JSONLines streams reports as one JSON object per line,
// optionally reshaping each value with a jq or JSONPath filter:
//
//	{"type":"value","value":[["name","notes"],["alice","hi"]]}
//	{"type":"frameHeight","height":154}
//
// Multi fans reports out to several hosts, Logged logs them before passing
// them on, and Funcs adapts a pair of functions.
//
// Recorder and JSONLines are safe for concurrent use.
package host
