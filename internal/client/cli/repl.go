package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives. *App satisfies it.
type execIface interface {
	Show(ctx context.Context, name string) error
	Add(ctx context.Context, list, item string) error
	Delete(ctx context.Context, list, id string) error
	Lists(ctx context.Context) error
	Backup(ctx context.Context) error
}

const replHelp = `Available commands:
  show [list]          show a list (Today when omitted)
  add <list> <item>    add an item
  delete <list> <id>   delete an item
  lists                list custom lists
  backup               store a backup
  exit | quit          leave`

// runREPL reads one command per line from scanner until EOF or exit.
// Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, promptFn func() string, scanner *bufio.Scanner, w io.Writer) {
	for {
		fmt.Fprint(w, promptFn())
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help", "?":
			fmt.Fprintln(w, replHelp)

		case "show", "s":
			err = a.Show(ctx, strings.Join(args, " "))

		case "add", "a":
			if len(args) < 2 {
				fmt.Fprintln(w, "Usage: add <list> <item>")
				continue
			}
			err = a.Add(ctx, args[0], strings.Join(args[1:], " "))

		case "delete", "del", "d":
			if len(args) != 2 {
				fmt.Fprintln(w, "Usage: delete <list> <id>")
				continue
			}
			err = a.Delete(ctx, args[0], args[1])

		case "lists", "l":
			err = a.Lists(ctx)

		case "backup":
			err = a.Backup(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(w, "Error:", err)
		}
	}
}
