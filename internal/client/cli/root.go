package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	if email, ok := a.session.Current(); ok {
		return fmt.Sprintf("(%s)", email)
	}
	return ""
}

// Root runs the read–eval–print loop. It reads a line, parses the first
// token as the command, and dispatches to methods on the App. The loop
// exits on EOF or when the user types "exit" or "quit".
func (a *App) Root(ctx context.Context) {
	fmt.Println("Bienvenue dans Carnet (tape 'help' pour les commandes)")

	for {
		fmt.Printf("carnet %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isSignedIn() {
				fmt.Println("Commandes : (l)ist, add, edit <id>, delete <id>, whoami, logout, exit")
			} else {
				fmt.Println("Commandes : register, login, exit")
			}

		case "register":
			a.register(ctx)

		case "login":
			a.login(ctx)

		case "logout":
			a.logout()

		case "whoami":
			a.whoami()

		case "l", "list":
			a.list(ctx)

		case "add":
			a.addContact(ctx)

		case "edit":
			if len(args) == 0 {
				fmt.Println("Usage : edit <id>")
				continue
			}
			a.editContact(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				fmt.Println("Usage : delete <id>")
				continue
			}
			a.deleteContact(ctx, args[0])

		case "exit", "quit":
			fmt.Println("À bientôt !")
			return

		default:
			fmt.Println("Commande inconnue :", cmd)
		}
	}
}
