package shell

import "strings"

// ParsedCommand is one input line split into its parts.
type ParsedCommand struct {
	Command string
	Args    []string
	Flags   map[string]bool
}

// Has reports whether flag was given.
func (p ParsedCommand) Has(flag string) bool {
	return p.Flags[flag]
}

// Parse splits input on whitespace. The first word, lowercased, is the
// command. A word starting with "--" sets the flag named by the rest of it; a
// word starting with a single "-" sets one flag per character, so "-la" sets
// "l" and "a". Everything else is a positional argument. There is no quoting.
func Parse(input string) ParsedCommand {
	parsed := ParsedCommand{Flags: map[string]bool{}}
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return parsed
	}

	parsed.Command = strings.ToLower(parts[0])
	for _, part := range parts[1:] {
		switch {
		case strings.HasPrefix(part, "--"):
			parsed.Flags[part[2:]] = true
		case strings.HasPrefix(part, "-"):
			for _, c := range part[1:] {
				parsed.Flags[string(c)] = true
			}
		default:
			parsed.Args = append(parsed.Args, part)
		}
	}
	return parsed
}
