package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Makepad-fr/stock/internal/inventory"
	"github.com/Makepad-fr/stock/internal/log"
	"github.com/Makepad-fr/stock/internal/session"
	"github.com/Makepad-fr/stock/internal/ui"
)

// shell reads one command per line. Every successful mutation is followed
// by a fresh render of the inventory and its summary.
type shell struct {
	sess   *session.Session
	in     io.Reader
	out    io.Writer
	debug  bool
	logger log.Logger
}

const shellHelp = `Commands:
  add <name...>   Add an item (name can be multiple words)
  rm <name...>    Remove the first item with this name
  rmi <index>     Remove the item at 1-based index
  ls              Show items and summary
  sum             Show the summary only
  help            This text
  quit            End the session
`

func (sh *shell) run() error {
	sc := bufio.NewScanner(sh.in)
	ui.Render(sh.out, sh.sess.Inventory().Items(), sh.sess.Inventory().Entries())
	for {
		fmt.Fprint(sh.out, ui.C(ui.Current().Accent, "> "))
		if !sc.Scan() {
			break
		}
		if done := sh.exec(sc.Text()); done {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	fmt.Fprintln(sh.out)
	return nil
}

// exec handles a single line and reports whether the session should end.
func (sh *shell) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, rest := fields[0], strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprint(sh.out, shellHelp)
	case "ls":
		sh.render()
	case "sum":
		inv := sh.sess.Inventory()
		ui.Panel(sh.out, ui.SummaryLines(inv.Entries(), inv.Len()))
	case "add":
		sh.mutate("add", func(inv *inventory.Inventory) (string, error) {
			name, err := inv.Add(rest)
			return "added " + name, err
		})
	case "rm":
		if rest == "" {
			ui.Fail(sh.out, "usage: rm <name...>")
			return false
		}
		sh.mutate("rm", func(inv *inventory.Inventory) (string, error) {
			name, err := inv.RemoveOne(rest)
			return "removed " + name, err
		})
	case "rmi":
		n, err := strconv.Atoi(rest)
		if err != nil {
			ui.Fail(sh.out, "rmi: not a number: "+rest)
			return false
		}
		sh.mutate("rmi", func(inv *inventory.Inventory) (string, error) {
			name, err := inv.RemoveAt(n - 1)
			if errors.Is(err, inventory.ErrIndexOutOfRange) {
				return "", fmt.Errorf("%w: have %d, got %d", inventory.ErrIndexOutOfRange, inv.Len(), n)
			}
			return "removed " + name, err
		})
	default:
		ui.Fail(sh.out, "unknown command: "+cmd+` (try "help")`)
	}
	return false
}

func (sh *shell) mutate(op string, fn func(inv *inventory.Inventory) (string, error)) {
	var msg string
	err := sh.sess.Do(func(inv *inventory.Inventory) error {
		var err error
		msg, err = fn(inv)
		return err
	})
	if err != nil {
		ui.Fail(sh.out, op+": "+describe(err))
		if errors.Is(err, inventory.ErrIndexOutOfRange) {
			ui.Hint(sh.out, "Hint: run `ls` to see valid indexes")
		}
		return
	}
	ui.OK(sh.out, msg)
	sh.render()
}

func (sh *shell) render() {
	inv := sh.sess.Inventory()
	ui.Render(sh.out, inv.Items(), inv.Entries())
	if sh.debug {
		log.Dump(sh.logger, "state", inv.Summarize())
	}
}

// describe turns inventory errors into the text shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, inventory.ErrEmptyName):
		return "item name cannot be empty"
	case errors.Is(err, session.ErrUnknown):
		return "session has ended"
	}
	return err.Error()
}
