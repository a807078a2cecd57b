package tools

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/agentgate/agentgate/internal/events"
)

// AskUser puts question to the operator and returns the chosen option. In
// a non-interactive session, or when stdin is not a terminal, it answers
// itself with the first option (or "yes") and records that it did, so
// unattended runs never hang on a prompt.
func (s *Session) AskUser(question string, options []string) string {
	fallback := "yes"
	if len(options) > 0 {
		fallback = options[0]
	}

	if !s.interactive || !stdinIsTerminal(s.stdin) {
		s.emitter.Emit(events.KindAutoAnswer, fmt.Sprintf("%s -> %s", question, fallback))
		return fallback
	}

	s.emitter.Emit(events.KindAsk, question)
	fmt.Fprintln(os.Stderr, question)
	for i, opt := range options {
		fmt.Fprintf(os.Stderr, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(os.Stderr, "> ")

	line, err := bufio.NewReader(s.stdin).ReadString('\n')
	if err != nil {
		s.emitter.Emit(events.KindAutoAnswer, fmt.Sprintf("%s -> %s (input closed)", question, fallback))
		return fallback
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return fallback
	}
	// A bare number selects from the options list.
	if n, nerr := strconv.Atoi(answer); nerr == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return answer
}

func stdinIsTerminal(r interface{ Read([]byte) (int, error) }) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true // injected reader (tests) counts as interactive input
	}
	return term.IsTerminal(int(f.Fd()))
}
