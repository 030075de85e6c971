package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dmitrijs2005/banksim/internal/common"
	"github.com/dmitrijs2005/banksim/internal/httpapi"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the new customer's details and password and creates
// an account. The assigned account number is printed; the customer also
// receives it over the delivery channel on the server side.
func (a *App) Register(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}
	phoneNumber, err := getSimpleText(a.reader, "Enter phone number", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	accountID, err := a.api.Register(ctx, httpapi.RegisterRequest{
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phoneNumber,
		Password:    string(password),
	})
	if err != nil {
		log.Printf("Registration unsuccessfull: %s", err.Error())
		return err
	}

	fmt.Printf("Success! Your account number is %d\n", accountID)
	return nil
}

// Login performs the two-step flow: account number and password first, then
// the one-time code delivered out of band. Failed codes can be retried; the
// server sends a fresh code after each miss.
func (a *App) Login(ctx context.Context) error {
	accountStr, err := getSimpleText(a.reader, "Enter account number", os.Stdout)
	if err != nil {
		return err
	}
	accountID, err := strconv.ParseInt(accountStr, 10, 64)
	if err != nil {
		log.Printf("Invalid account number: %s", accountStr)
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	err = a.api.PasswordLogin(ctx, accountID, string(password))
	common.WipeByteArray(password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			log.Printf("Login unsuccessfull: wrong account number or password")
		} else {
			log.Printf("Login unsuccessfull: %s", err.Error())
		}
		return err
	}

	fmt.Println("Password accepted. A one-time code has been sent to your phone.")

	for {
		code, err := getSimpleText(a.reader, "Enter one-time code (empty line to cancel)", os.Stdout)
		if err != nil {
			return err
		}
		if code == "" {
			return nil
		}

		accessToken, err := a.api.OtacLogin(ctx, code)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				log.Printf("Wrong code; a fresh one has been sent")
				continue
			}
			log.Printf("Login unsuccessfull: %s", err.Error())
			return err
		}

		a.accessToken = accessToken
		a.accountID = accountID
		fmt.Println("Login successfull")
		return nil
	}
}

// Status prints the server-side view of the current session.
func (a *App) Status(ctx context.Context) error {
	session, err := a.api.Session(ctx)
	if err != nil {
		log.Printf("Status unsuccessfull: %s", err.Error())
		return err
	}
	if session.AccountID != 0 {
		fmt.Printf("Session: %s (account %d)\n", session.Level, session.AccountID)
	} else {
		fmt.Printf("Session: %s\n", session.Level)
	}
	return nil
}

// Whoami calls the protected endpoint using the access JWT.
func (a *App) Whoami(ctx context.Context) error {
	accountID, err := a.api.Account(ctx, a.accessToken)
	if err != nil {
		log.Printf("Request unsuccessfull: %s", err.Error())
		return err
	}
	fmt.Printf("Account number: %d\n", accountID)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		log.Printf("Logout unsuccessfull: %s", err.Error())
		return err
	}
	a.accessToken = ""
	a.accountID = 0
	fmt.Println("Logged out")
	return nil
}
