package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/carnetapp/carnet/internal/client/contacts"
	"github.com/carnetapp/carnet/internal/common"
)

const msgReconnect = "Aucun utilisateur connecté. Merci de vous reconnecter."

func (a *App) list(ctx context.Context) {
	items, err := a.contacts.List(ctx)
	if err != nil {
		a.printContactError(err)
		return
	}

	if len(items) == 0 {
		fmt.Println("Aucun contact.")
		return
	}

	for _, c := range items {
		line := fmt.Sprintf("%s %s  %s", strings.ToUpper(c.LastName), c.FirstName, c.Phone)
		if c.Email != "" {
			line += "  · " + c.Email
		}
		fmt.Printf("%s  (id: %s)\n", line, c.ID)
	}
}

func (a *App) addContact(ctx context.Context) {
	in, err := a.promptContact(contacts.Input{})
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	created, err := a.contacts.Create(ctx, in)
	if err != nil {
		a.printContactError(err)
		return
	}
	fmt.Println("Contact ajouté (id:", created.ID+")")
}

func (a *App) editContact(ctx context.Context, id string) {
	current, err := a.contacts.Get(ctx, id)
	if err != nil {
		a.printContactError(err)
		return
	}

	in, err := a.promptContact(contacts.Input{
		FirstName: current.FirstName,
		LastName:  current.LastName,
		Phone:     current.Phone,
		Email:     current.Email,
	})
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	if err := a.contacts.Update(ctx, id, in); err != nil {
		a.printContactError(err)
		return
	}
	fmt.Println("Contact mis à jour.")
}

func (a *App) deleteContact(ctx context.Context, id string) {
	answer, err := GetSimpleText(a.reader, "Confirmer la suppression de ce contact ? (o/N)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if !strings.EqualFold(answer, "o") {
		fmt.Println("Annulé.")
		return
	}

	if err := a.contacts.Delete(ctx, id); err != nil {
		a.printContactError(err)
		return
	}
	fmt.Println("Contact supprimé.")
}

// promptContact collects the contact form. When defaults are present (edit),
// an empty answer keeps the current value.
func (a *App) promptContact(defaults contacts.Input) (contacts.Input, error) {
	in := contacts.Input{}
	var err error

	if in.FirstName, err = a.promptField("Prénom", defaults.FirstName); err != nil {
		return in, err
	}
	if in.LastName, err = a.promptField("Nom", defaults.LastName); err != nil {
		return in, err
	}
	if in.Phone, err = a.promptField("Téléphone", defaults.Phone); err != nil {
		return in, err
	}
	if in.Email, err = a.promptField("Email (optionnel)", defaults.Email); err != nil {
		return in, err
	}
	return in, nil
}

func (a *App) promptField(label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	value, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return "", err
	}
	if value == "" {
		return current, nil
	}
	return value, nil
}

func (a *App) printContactError(err error) {
	switch {
	case errors.Is(err, common.ErrNoSession):
		fmt.Println(msgReconnect)
	case errors.Is(err, contacts.ErrRequiredFields):
		fmt.Println("Champs requis : Nom, Prénom et Téléphone sont obligatoires.")
	case errors.Is(err, common.ErrorNotFound):
		fmt.Println("Contact introuvable.")
	default:
		fmt.Println("Erreur :", err.Error())
	}
}
