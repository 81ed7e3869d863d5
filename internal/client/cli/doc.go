// Package cli provides the todolist command-line client.
//
// Commands map one to one onto server calls:
//
//	todo show [list]          show a list (Today when omitted)
//	todo add <list> <item>    add an item
//	todo delete <list> <id>   delete an item by id
//	todo lists                names of all custom lists
//	todo backup               store a backup and print its key
//	todo repl                 interactive shell with the same commands
//
// Run without arguments on a terminal, the client starts the shell.
package cli
