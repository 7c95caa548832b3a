package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
)

type access int

const (
	anyone access = iota
	guestOnly
	loggedIn
	adminOnly
)

// command is one REPL verb. run receives the words after the verb.
type command struct {
	name   string
	alias  []string
	usage  string
	help   string
	access access
	run    func(ctx context.Context, args []string) error
}

// registry resolves verbs and knows the caller's state for help and
// login gating. Admin commands are listed only to admins but are not
// blocked; the server decides.
type registry struct {
	cmds     []command
	byName   map[string]int
	loggedIn func() bool
	admin    func() bool
	onError  func(err error)
}

func newRegistry(loggedIn, admin func() bool, onError func(error)) *registry {
	return &registry{byName: map[string]int{}, loggedIn: loggedIn, admin: admin, onError: onError}
}

func (r *registry) add(c command) {
	r.cmds = append(r.cmds, c)
	idx := len(r.cmds) - 1
	r.byName[c.name] = idx
	for _, a := range c.alias {
		r.byName[a] = idx
	}
}

func (r *registry) lookup(name string) (command, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return command{}, false
	}
	return r.cmds[idx], true
}

func (r *registry) visible(c command) bool {
	switch c.access {
	case guestOnly:
		return !r.loggedIn()
	case loggedIn:
		return r.loggedIn()
	case adminOnly:
		return r.loggedIn() && r.admin()
	}
	return true
}

func (r *registry) writeHelp(w io.Writer) {
	lines := make([]string, 0, len(r.cmds))
	for _, c := range r.cmds {
		if !r.visible(c) {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %-22s %s", c.usage, c.help))
	}
	sort.Strings(lines)
	fmt.Fprintln(w, "Available commands:")
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintf(w, "  %-22s %s\n", "exit | quit", "leave the program")
}

// runREPL reads one command per line from reader until EOF, "exit" or
// "quit". Command errors go to the registry's onError and never stop the
// loop.
func runREPL(ctx context.Context, reg *registry, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "portfolio %s> ", statusFn())

		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := strings.ToLower(parts[0]), parts[1:]

		switch name {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "help", "?":
			reg.writeHelp(w)
			continue
		}

		c, ok := reg.lookup(name)
		if !ok {
			fmt.Fprintln(w, "Unknown command:", name, "(type 'help')")
			continue
		}
		if (c.access == loggedIn || c.access == adminOnly) && !reg.loggedIn() {
			fmt.Fprintln(w, "Please log in first.")
			continue
		}
		if c.access == guestOnly && reg.loggedIn() {
			fmt.Fprintln(w, "You are already logged in. Log out first.")
			continue
		}

		if err := c.run(ctx, args); err != nil {
			reg.onError(err)
		}
	}
}
