package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Summary renders a read-only snapshot of the processed, reported, and
// masked step codes plus the waiting queue for the current selection.
func (o *Orchestrator) Summary(ctx context.Context) (string, error) {
	if o.title == "" {
		return "No pipeline package selected.", nil
	}
	if err := o.iface.Update(ctx); err != nil {
		return "", err
	}

	var s strings.Builder
	fmt.Fprintf(&s, "** List of existing steps in selected package [%s]:\n", o.title)
	writeCodeSection(&s, "- Processed steps:", o.iface.Executed())
	writeCodeSection(&s, "- Reported steps:", o.iface.Reported())
	writeCodeSection(&s, "- Mask data:", o.iface.Masked())

	if waiting := o.iface.WaitingList(); len(waiting) > 0 {
		s.WriteString("- Queue:\n")
		fmt.Fprintf(&s, "\t%s\n", strings.Join(waiting, ", "))
	}
	return strings.TrimRight(s.String(), "\n"), nil
}

func writeCodeSection(s *strings.Builder, header string, codes map[string]string) {
	if len(codes) == 0 {
		return
	}
	keys := make([]string, 0, len(codes))
	for code := range codes {
		keys = append(keys, code)
	}
	sort.Strings(keys)

	s.WriteString(header)
	s.WriteByte('\n')
	for _, code := range keys {
		fmt.Fprintf(s, "\t%s: %s\n", code, codes[code])
	}
}
