package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/carnetapp/carnet/internal/client/authflow"
	"github.com/carnetapp/carnet/internal/client/validation"
)

// register drives the sign-up flow: collect the form, submit, and map the
// navigation intent back to the REPL.
func (a *App) register(ctx context.Context) {
	firstName, err := GetSimpleText(a.reader, "Prénom", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	lastName, err := GetSimpleText(a.reader, "Nom", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	phone, err := GetSimpleText(a.reader, "Téléphone", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	pw, err := GetPassword("Mot de passe", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	res := a.flow.SignUp(ctx, validation.SignUpInput{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Password:  pw,
	})
	defer a.flow.Acknowledge()

	if !a.report(res) {
		return
	}

	if res.Nav == authflow.NavSignIn {
		fmt.Println("Compte créé.", res.Message)
	}
}

// login drives the sign-in flow.
func (a *App) login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	pw, err := GetPassword("Mot de passe", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	res := a.flow.SignIn(ctx, validation.SignInInput{Email: email, Password: pw})
	defer a.flow.Acknowledge()

	// NavHome needs no action here: the prompt already shows the session.
	a.report(res)
}

func (a *App) logout() {
	if !a.isSignedIn() {
		fmt.Println("Aucun utilisateur connecté.")
		return
	}
	a.flow.SignOut()
}

func (a *App) whoami() {
	if email, ok := a.session.Current(); ok {
		fmt.Println(email)
		return
	}
	fmt.Println("Aucun utilisateur connecté.")
}

// report prints a flow result and returns true when the flow succeeded.
func (a *App) report(res authflow.Result) bool {
	if errors.Is(res.Err, authflow.ErrBusy) {
		fmt.Println("Une requête est déjà en cours.")
		return false
	}

	if len(res.FieldErrors) > 0 {
		fields := make([]string, 0, len(res.FieldErrors))
		for f := range res.FieldErrors {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Printf("  %s : %s\n", f, res.FieldErrors[f])
		}
		return false
	}

	if res.Err != nil {
		if res.Message != "" {
			fmt.Println(res.Message)
		} else {
			fmt.Println("Erreur :", res.Err.Error())
		}
		return false
	}

	return true
}
