package spvmsl

import "strings"

// resultLog is the human-readable diagnostic log of one conversion.
// Entries are separated by blank lines.
type resultLog struct {
	b strings.Builder
}

func (l *resultLog) reset() {
	l.b.Reset()
}

func (l *resultLog) String() string {
	return l.b.String()
}

// message appends msg trimmed of surrounding white space. Empty messages
// are dropped.
func (l *resultLog) message(msg string) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return
	}
	l.b.WriteString(msg)
	l.b.WriteString("\n\n")
}

// source appends a source dump bracketed by "<op> <lang>:" and "End <lang>".
func (l *resultLog) source(op, lang, src string) {
	l.b.WriteString(op)
	l.b.WriteString(" ")
	l.b.WriteString(lang)
	l.b.WriteString(":\n")
	l.b.WriteString(src)
	l.b.WriteString("\nEnd ")
	l.b.WriteString(lang)
	l.b.WriteString("\n\n")
}
